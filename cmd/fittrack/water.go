package fittrack

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track glasses of water",
}

var waterDate string

func printWater(w io.Writer, date string, ws aggregate.WaterSummary) {
	fmt.Fprintf(w, "Water %s: %d/%d glasses (%.0f%%)\n", date, ws.Glasses, ws.Goal, ws.Percent)
}

// runWaterChange applies a water step. Reaching the goal or zero is
// reported, not treated as a failure.
func runWaterChange(cmd *cobra.Command, change func(svc *service.Service, user, date string) (aggregate.WaterSummary, error)) error {
	return withService(func(svc *service.Service, user string) error {
		date := dateOr(svc, waterDate)
		ws, err := change(svc, user, date)
		out := cmd.OutOrStdout()
		switch {
		case errors.Is(err, aggregate.ErrGoalReached):
			fmt.Fprintln(out, "Daily goal already reached!")
		case errors.Is(err, aggregate.ErrNegativeIntake):
			fmt.Fprintln(out, "Water intake cannot be negative")
		case err != nil:
			return err
		}
		printWater(out, date, ws)
		return nil
	})
}

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a glass",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWaterChange(cmd, func(svc *service.Service, user, date string) (aggregate.WaterSummary, error) {
			return svc.AddGlass(cmd.Context(), user, date)
		})
	},
}

var waterRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a glass",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWaterChange(cmd, func(svc *service.Service, user, date string) (aggregate.WaterSummary, error) {
			return svc.RemoveGlass(cmd.Context(), user, date)
		})
	},
}

var waterResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the day's count to zero",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWaterChange(cmd, func(svc *service.Service, user, date string) (aggregate.WaterSummary, error) {
			return svc.ResetWater(cmd.Context(), user, date)
		})
	},
}

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the day's water intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			date := dateOr(svc, waterDate)
			ws, err := svc.Water(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			printWater(cmd.OutOrStdout(), date, ws)
			return nil
		})
	},
}

var waterHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent recorded days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			days, err := svc.WaterHistory(cmd.Context(), user)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tGLASSES\tPERCENT\tUPDATED")
			for _, d := range days {
				fmt.Fprintf(out, "%s\t%d\t%.0f%%\t%s\n", d.Date, d.Glasses, d.Percent, orPlaceholder(d.LastUpdated))
			}
			return nil
		})
	},
}

var waterDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the day's water record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			date := dateOr(svc, waterDate)
			if err := svc.DeleteWater(cmd.Context(), user, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted water record for %s\n", date)
			return nil
		})
	},
}

var waterGoalCmd = &cobra.Command{
	Use:   "goal [glasses]",
	Short: "Show or set the daily water goal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid water goal %q", args[0])
				}
				if err := svc.SetWaterGoal(cmd.Context(), user, n); err != nil {
					return err
				}
			}
			goal, err := svc.WaterGoal(cmd.Context(), user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water goal: %d glasses\n", goal)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterRemoveCmd, waterResetCmd, waterShowCmd, waterHistoryCmd, waterDeleteCmd, waterGoalCmd)
	waterCmd.PersistentFlags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
}
