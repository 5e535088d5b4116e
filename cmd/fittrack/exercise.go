package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/model"
	"github.com/saadjs/fittrack/internal/service"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log exercise and browse the exercise catalog",
}

var (
	exDate         string
	exCategory     string
	exDuration     int
	exNotes        string
	exDistance     float64
	exDistanceUnit string
	exIntensity    string
	exMET          float64
	exSets         int
	exReps         int
	exWeight       float64
	exWeightUnit   string
	exMuscleGroup  string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ExerciseInput{
			Name:         args[0],
			Category:     exCategory,
			Duration:     exDuration,
			Notes:        exNotes,
			DistanceUnit: exDistanceUnit,
			Intensity:    exIntensity,
			WeightUnit:   exWeightUnit,
		}
		f := cmd.Flags()
		if f.Changed("distance") {
			in.Distance = &exDistance
		}
		if f.Changed("met") {
			in.MetValue = &exMET
		}
		if f.Changed("sets") {
			in.Sets = &exSets
		}
		if f.Changed("reps") {
			in.Reps = &exReps
		}
		if f.Changed("weight") {
			in.Weight = &exWeight
		}
		return withService(func(svc *service.Service, user string) error {
			date := dateOr(svc, exDate)
			id, err := svc.AddExercise(cmd.Context(), user, date, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s: %s\n", args[0], date, id)
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a day's exercise with the calorie estimate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			date := dateOr(svc, exDate)
			entries, err := svc.ExerciseDay(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			summary, err := svc.ExerciseSummary(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tNAME\tCATEGORY\tMIN\tDETAILS")
			for _, id := range sortedKeys(entries) {
				e := entries[id]
				fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%s\n", id, e.Name, e.Category, e.Duration, exerciseDetails(e))
			}
			fmt.Fprintf(out, "Total: %d min | ~%.0f kcal burned\n", summary.TotalDurationMinutes, summary.EstimatedCaloriesBurned)
			return nil
		})
	},
}

func exerciseDetails(e model.ExerciseEntry) string {
	switch e.Category {
	case model.CategoryCardio:
		s := ""
		if e.Distance != nil {
			s = fmt.Sprintf("%g %s ", e.Distance.Value, e.Distance.Unit)
		}
		if e.Intensity != nil {
			s += *e.Intensity
		}
		return s
	case model.CategoryStrength:
		s := fmt.Sprintf("%sx%s", optInt(e.Sets), optInt(e.Reps))
		if e.Weight != nil {
			s += fmt.Sprintf(" @ %g %s", e.Weight.Value, e.Weight.Unit)
		}
		return s
	}
	return ""
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			if err := svc.DeleteExercise(cmd.Context(), user, dateOr(svc, exDate), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %s\n", args[0])
			return nil
		})
	},
}

var exerciseCatalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "Browse built-in and custom exercises",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return withService(func(svc *service.Service, user string) error {
			list, err := svc.ExerciseCatalog(cmd.Context(), user, query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "NAME\tCATEGORY\tMET\tMUSCLE_GROUP\tCUSTOM")
			for _, c := range list {
				met := placeholder
				if c.MetValue != nil {
					met = fmt.Sprintf("%.1f", *c.MetValue)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%t\n", c.Name, c.Category, met, c.MuscleGroup, c.IsCustom)
			}
			return nil
		})
	},
}

var exerciseCustomCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage custom exercises",
}

var exerciseCustomAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.CustomExerciseInput{Name: args[0], Category: exCategory, MuscleGroup: exMuscleGroup}
		if cmd.Flags().Changed("met") {
			in.MetValue = &exMET
		}
		return withService(func(svc *service.Service, user string) error {
			id, err := svc.AddCustomExercise(cmd.Context(), user, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added custom exercise %s: %s\n", args[0], id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseDeleteCmd, exerciseCatalogCmd, exerciseCustomCmd)
	exerciseCustomCmd.AddCommand(exerciseCustomAddCmd)

	exerciseCmd.PersistentFlags().StringVar(&exDate, "date", "", "Date YYYY-MM-DD (default today)")
	for _, c := range []*cobra.Command{exerciseAddCmd, exerciseCustomAddCmd} {
		c.Flags().StringVar(&exCategory, "category", "", "Category: cardio or strength")
		c.Flags().Float64Var(&exMET, "met", 0, "MET value (cardio)")
		_ = c.MarkFlagRequired("category")
	}
	f := exerciseAddCmd.Flags()
	f.IntVar(&exDuration, "duration", 0, "Duration in minutes")
	f.StringVar(&exNotes, "notes", "", "Notes")
	f.Float64Var(&exDistance, "distance", 0, "Distance (cardio)")
	f.StringVar(&exDistanceUnit, "distance-unit", "", "Distance unit: km or mi (default km)")
	f.StringVar(&exIntensity, "intensity", "", "Intensity: low, moderate or high (default moderate)")
	f.IntVar(&exSets, "sets", 0, "Sets (strength)")
	f.IntVar(&exReps, "reps", 0, "Reps per set (strength)")
	f.Float64Var(&exWeight, "weight", 0, "Weight lifted (strength)")
	f.StringVar(&exWeightUnit, "weight-unit", "", "Weight unit: kg or lb (default kg)")
	exerciseCustomAddCmd.Flags().StringVar(&exMuscleGroup, "muscle-group", "", "Muscle group (strength)")
}
