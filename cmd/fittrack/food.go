package fittrack

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/model"
	"github.com/saadjs/fittrack/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food diary",
}

var (
	foodDate     string
	foodMeal     string
	foodServing  float64
	foodUnit     string
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64
	foodLookup   string
	foodGrams    float64
)

func foodInputFromFlags(name string) service.FoodInput {
	return service.FoodInput{
		Name:        name,
		ServingSize: foodServing,
		ServingUnit: foodUnit,
		Calories:    foodCalories,
		Protein:     foodProtein,
		Carbs:       foodCarbs,
		Fat:         foodFat,
	}
}

var foodAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Log a food entry (or the first external result of --lookup)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return withService(func(svc *service.Service, user string) error {
			in := foodInputFromFlags(name)
			if q := strings.TrimSpace(foodLookup); q != "" {
				res, err := svc.SearchFoods(cmd.Context(), user, q)
				if err != nil {
					return err
				}
				if len(res.External) == 0 {
					return fmt.Errorf("no external results for %q", q)
				}
				in = service.FoodFromFacts(res.External[0], foodGrams)
				if name != "" {
					in.Name = name
				}
			}
			date := dateOr(svc, foodDate)
			id, err := svc.AddFood(cmd.Context(), user, date, foodMeal, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s on %s (%.0f kcal): %s\n", in.Name, strings.ToLower(foodMeal), date, in.Calories, id)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a day's food entries by meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			date := dateOr(svc, foodDate)
			meals, err := svc.FoodDay(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "MEAL\tID\tNAME\tSERVING\tKCAL\tP\tC\tF")
			for _, meal := range model.Meals {
				for _, id := range sortedKeys(meals[meal]) {
					e := meals[meal][id]
					serving := ""
					if e.ServingSize > 0 {
						serving = fmt.Sprintf("%g%s", e.ServingSize, e.ServingUnit)
					}
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", meal, id, e.Name, serving, e.Calories, e.Protein, e.Carbs, e.Fat)
				}
			}
			printMacros(out, "Total", aggregate.AggregateDay(meals))
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <meal> <id>",
	Short: "Delete a food entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			if err := svc.DeleteFood(cmd.Context(), user, dateOr(svc, foodDate), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food entry %s\n", args[1])
			return nil
		})
	},
}

var foodCustomCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage saved custom foods",
}

var foodCustomAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a custom food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			id, err := svc.AddCustomFood(cmd.Context(), user, foodInputFromFlags(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved custom food %s: %s\n", args[0], id)
			return nil
		})
	},
}

var foodCustomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			foods, err := svc.CustomFoods(cmd.Context(), user)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tNAME\tKCAL\tP\tC\tF")
			for _, f := range foods {
				fmt.Fprintf(out, "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", f.ID, f.Value.Name, f.Value.Calories, f.Value.Protein, f.Value.Carbs, f.Value.Fat)
			}
			return nil
		})
	},
}

var foodCustomDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			if err := svc.DeleteCustomFood(cmd.Context(), user, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted custom food %s\n", args[0])
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search custom foods and the external nutrition provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withService(func(svc *service.Service, user string) error {
			res, err := svc.SearchFoods(cmd.Context(), user, query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Custom foods:")
			if len(res.Custom) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, f := range res.Custom {
				fmt.Fprintf(out, "  %s\t%s\t%.0f kcal\n", f.ID, f.Value.Name, f.Value.Calories)
			}
			fmt.Fprintln(out, "External (per 100 g):")
			switch {
			case res.Degraded:
				fmt.Fprintln(out, "  (lookup unavailable)")
			case len(res.External) == 0:
				fmt.Fprintln(out, "  (none)")
			}
			for _, f := range res.External {
				fmt.Fprintf(out, "  %s\t%s\t%.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", f.Name, orPlaceholder(f.Brand), f.CaloriesPer100g, f.ProteinPer100g, f.CarbsPer100g, f.FatPer100g)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodDeleteCmd, foodCustomCmd, foodSearchCmd)
	foodCustomCmd.AddCommand(foodCustomAddCmd, foodCustomListCmd, foodCustomDeleteCmd)

	foodCmd.PersistentFlags().StringVar(&foodDate, "date", "", "Date YYYY-MM-DD (default today)")
	for _, c := range []*cobra.Command{foodAddCmd, foodCustomAddCmd} {
		c.Flags().Float64Var(&foodServing, "serving", 0, "Serving size")
		c.Flags().StringVar(&foodUnit, "unit", "", "Serving unit (default g)")
		c.Flags().Float64Var(&foodCalories, "calories", 0, "Calories (kcal)")
		c.Flags().Float64Var(&foodProtein, "protein", 0, "Protein (g)")
		c.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbs (g)")
		c.Flags().Float64Var(&foodFat, "fat", 0, "Fat (g)")
	}
	foodAddCmd.Flags().StringVar(&foodMeal, "meal", "", "Meal: breakfast, lunch, dinner or snacks")
	foodAddCmd.Flags().StringVar(&foodLookup, "lookup", "", "Fill nutrition from the first external search result")
	foodAddCmd.Flags().Float64Var(&foodGrams, "grams", 100, "Grams eaten when using --lookup")
	_ = foodAddCmd.MarkFlagRequired("meal")
}
