package fittrack

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/service"
)

var dashboardDate string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the day's totals, goals, exercise and water",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			date := dateOr(svc, dashboardDate)
			d, err := svc.Dashboard(cmd.Context(), user, date)
			out := cmd.OutOrStdout()
			if err != nil {
				printDashboardPlaceholders(out, date)
				return err
			}
			n := d.Nutrition
			fmt.Fprintf(out, "Date: %s\n", d.Date)
			fmt.Fprintf(out, "Calories: %.0f / %.0f kcal (%d%%, %s) | Remaining %.0f\n", n.Consumed.Calories, n.Goal.Calories, n.Calories.Percent, n.CalorieBand, n.Remaining.Calories)
			fmt.Fprintf(out, "Protein: %.1f / %.1fg (%d%%) | Remaining %.1f\n", n.Consumed.Protein, n.Goal.Protein, n.Protein.Percent, n.Remaining.Protein)
			fmt.Fprintf(out, "Carbs: %.1f / %.1fg (%d%%) | Remaining %.1f\n", n.Consumed.Carbs, n.Goal.Carbs, n.Carbs.Percent, n.Remaining.Carbs)
			fmt.Fprintf(out, "Fat: %.1f / %.1fg (%d%%) | Remaining %.1f\n", n.Consumed.Fat, n.Goal.Fat, n.Fat.Percent, n.Remaining.Fat)
			ex := d.Exercise
			recent := placeholder
			if ex.MostRecent != nil {
				recent = ex.MostRecent.Value.Name
			}
			fmt.Fprintf(out, "Exercise: %d min | ~%.0f kcal burned | Latest: %s\n", ex.TotalDurationMinutes, ex.EstimatedCaloriesBurned, recent)
			fmt.Fprintf(out, "Water: %d/%d glasses (%.0f%%)\n", d.Water.Glasses, d.Water.Goal, d.Water.Percent)
			fmt.Fprint(out, "Progress:")
			for _, p := range d.Progress {
				fmt.Fprintf(out, " %s %d%%", p.Label, p.Percent)
			}
			fmt.Fprintln(out)
			return nil
		})
	},
}

func printDashboardPlaceholders(w io.Writer, date string) {
	fmt.Fprintf(w, "Date: %s\n", date)
	for _, label := range []string{"Calories", "Protein", "Carbs", "Fat", "Exercise", "Water", "Progress"} {
		fmt.Fprintf(w, "%s: %s\n", label, placeholder)
	}
}

var weeklyDays int

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show the trailing daily rollup, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			points, err := svc.Weekly(cmd.Context(), user, weeklyDays)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tDAY\tKCAL\tP\tC\tF\tWATER")
			if err != nil {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", placeholder, placeholder, placeholder, placeholder, placeholder, placeholder, placeholder)
				return err
			}
			for _, p := range points {
				fmt.Fprintf(out, "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%d\n", p.Date, p.Label, p.Calories, p.Protein, p.Carbs, p.Fat, p.Water)
			}
			return nil
		})
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List unlocked achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			r, err := svc.Achievements(cmd.Context(), user)
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(out, "Achievements: %s\n", placeholder)
				return err
			}
			fmt.Fprintf(out, "Workouts logged: %d\n", r.ExerciseCount)
			if len(r.Achievements) == 0 {
				fmt.Fprintln(out, "No achievements yet")
			}
			for _, a := range r.Achievements {
				fmt.Fprintf(out, "[%s] %s: %s\n", a.Icon, a.Title, a.Description)
			}
			return nil
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show progress toward the weight goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			wp, err := svc.WeightProgress(cmd.Context(), user)
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(out, "Weight progress: %s\n", placeholder)
				return err
			}
			if !wp.Available {
				fmt.Fprintf(out, "Weight progress: %s (needs a profile weight, a weight goal and a measurement)\n", placeholder)
				return nil
			}
			fmt.Fprintf(out, "Initial: %.2f kg\nCurrent: %.2f kg\nTarget: %.2f kg\n", wp.Initial, wp.Current, wp.Target)
			fmt.Fprintf(out, "Progress: %d%%\n", wp.Percent)
			return nil
		})
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent weight updates and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			feed, err := svc.RecentActivity(cmd.Context(), user)
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(out, "Recent activity: %s\n", placeholder)
				return err
			}
			if len(feed) == 0 {
				fmt.Fprintln(out, "No recent activity")
			}
			for _, a := range feed {
				fmt.Fprintf(out, "%s\t%s\t%s\n", a.Date, a.Type, a.Description)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd, weeklyCmd, achievementsCmd, progressCmd, activityCmd)
	dashboardCmd.Flags().StringVar(&dashboardDate, "date", "", "Date YYYY-MM-DD (default today)")
	weeklyCmd.Flags().IntVar(&weeklyDays, "days", 7, "Number of trailing days")
}
