package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/service"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Manage body measurements (weight and body-fat)",
}

var (
	bodyWeight  float64
	bodyUnit    string
	bodyFat     float64
	bodyDate    string
	bodyOutUnit string
)

var bodyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record the day's measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.MeasurementInput{Date: bodyDate, Weight: bodyWeight, Unit: bodyUnit}
		if cmd.Flags().Changed("body-fat") {
			in.BodyFat = &bodyFat
		}
		return withService(func(svc *service.Service, user string) error {
			m, err := svc.AddMeasurement(cmd.Context(), user, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.2f kg on %s\n", m.Weight, m.Date)
			return nil
		})
	},
}

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent measurements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := bodyOutUnit
		if unit == "" {
			unit = "kg"
		}
		return withService(func(svc *service.Service, user string) error {
			items, err := svc.ListMeasurements(cmd.Context(), user)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tWEIGHT\tUNIT\tBODY_FAT%")
			for _, m := range items {
				w, err := service.WeightFromKg(m.Weight, unit)
				if err != nil {
					return err
				}
				bf := ""
				if m.BodyFat != nil {
					bf = fmt.Sprintf("%.1f", *m.BodyFat)
				}
				fmt.Fprintf(out, "%s\t%.2f\t%s\t%s\n", m.Date, w, unit, bf)
			}
			return nil
		})
	},
}

var bodyDeleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete the measurement for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			if err := svc.DeleteMeasurement(cmd.Context(), user, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted measurement for %s\n", args[0])
			return nil
		})
	},
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the weight goal",
}

var (
	goalTarget  float64
	goalType    string
	goalUnit    string
	goalInitial float64
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the target weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.WeightGoalInput{TargetWeight: goalTarget, Unit: goalUnit, GoalType: goalType}
		if cmd.Flags().Changed("initial") {
			in.InitialWeight = &goalInitial
		}
		return withService(func(svc *service.Service, user string) error {
			g, err := svc.SetWeightGoal(cmd.Context(), user, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight goal: %s to %.2f kg\n", g.GoalType, g.TargetWeight)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the weight goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			g, err := svc.WeightGoal(cmd.Context(), user)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Goal: %s\n", g.GoalType)
			fmt.Fprintf(out, "Target: %.2f kg\n", g.TargetWeight)
			fmt.Fprintf(out, "Initial: %s\n", optFloat(g.InitialWeight, "kg"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bodyCmd, goalCmd)
	bodyCmd.AddCommand(bodyAddCmd, bodyListCmd, bodyDeleteCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	bodyAddCmd.Flags().Float64Var(&bodyWeight, "weight", 0, "Body weight")
	bodyAddCmd.Flags().StringVar(&bodyUnit, "unit", "kg", "Weight unit: kg or lb")
	bodyAddCmd.Flags().Float64Var(&bodyFat, "body-fat", 0, "Body-fat percentage")
	bodyAddCmd.Flags().StringVar(&bodyDate, "date", "", "Date YYYY-MM-DD (default today)")
	_ = bodyAddCmd.MarkFlagRequired("weight")
	bodyListCmd.Flags().StringVar(&bodyOutUnit, "unit", "kg", "Display unit: kg or lb")

	goalSetCmd.Flags().Float64Var(&goalTarget, "target", 0, "Target weight")
	goalSetCmd.Flags().StringVar(&goalType, "type", "", "Goal type: lose, gain or maintain")
	goalSetCmd.Flags().StringVar(&goalUnit, "unit", "kg", "Weight unit: kg or lb")
	goalSetCmd.Flags().Float64Var(&goalInitial, "initial", 0, "Starting weight (default first measurement)")
	_ = goalSetCmd.MarkFlagRequired("target")
	_ = goalSetCmd.MarkFlagRequired("type")
}
