package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fittrack/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, user string) error {
			p, err := svc.Profile(cmd.Context(), user)
			if err != nil {
				return err
			}
			goals, err := svc.NutritionalGoals(cmd.Context(), user)
			if err != nil {
				return err
			}
			water, err := svc.WaterGoal(cmd.Context(), user)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Username: %s\n", p.Username)
			fmt.Fprintf(out, "Email: %s\n", orPlaceholder(p.Email))
			fmt.Fprintf(out, "Age: %s\n", optInt(p.Age))
			fmt.Fprintf(out, "Weight: %s\n", optFloat(p.Weight, "kg"))
			fmt.Fprintf(out, "Height: %s\n", optFloat(p.Height, "cm"))
			printMacros(out, "Goals", goals)
			fmt.Fprintf(out, "Water goal: %d glasses\n", water)
			return nil
		})
	},
}

var (
	profUsername string
	profEmail    string
	profAge      int
	profWeight   float64
	profHeight   float64
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		var in service.ProfileUpdate
		f := cmd.Flags()
		if f.Changed("username") {
			in.Username = &profUsername
		}
		if f.Changed("email") {
			in.Email = &profEmail
		}
		if f.Changed("age") {
			in.Age = &profAge
		}
		if f.Changed("weight") {
			in.Weight = &profWeight
		}
		if f.Changed("height") {
			in.Height = &profHeight
		}
		return withService(func(svc *service.Service, user string) error {
			if _, err := svc.UpdateProfile(cmd.Context(), user, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated profile")
			return nil
		})
	},
}

var (
	goalsCalories float64
	goalsProtein  float64
	goalsCarbs    float64
	goalsFat      float64
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage daily nutritional goals",
}

var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set daily calorie and macro goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.NutritionalGoalsInput{Calories: goalsCalories, Protein: goalsProtein, Carbs: goalsCarbs, Fat: goalsFat}
		return withService(func(svc *service.Service, user string) error {
			if _, err := svc.SetNutritionalGoals(cmd.Context(), user, in); err != nil {
				return err
			}
			goals, err := svc.NutritionalGoals(cmd.Context(), user)
			if err != nil {
				return err
			}
			printMacros(cmd.OutOrStdout(), "Goals", goals)
			return nil
		})
	},
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func optInt(v *int) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprintf("%d", *v)
}

func optFloat(v *float64, unit string) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprintf("%g %s", *v, unit)
}

func init() {
	rootCmd.AddCommand(profileCmd, goalsCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	goalsCmd.AddCommand(goalsSetCmd)

	profileSetCmd.Flags().StringVar(&profUsername, "username", "", "Display name")
	profileSetCmd.Flags().StringVar(&profEmail, "email", "", "Email address")
	profileSetCmd.Flags().IntVar(&profAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profHeight, "height", 0, "Height in cm")

	goalsSetCmd.Flags().Float64Var(&goalsCalories, "calories", 0, "Daily calories (kcal)")
	goalsSetCmd.Flags().Float64Var(&goalsProtein, "protein", 0, "Daily protein (g)")
	goalsSetCmd.Flags().Float64Var(&goalsCarbs, "carbs", 0, "Daily carbs (g)")
	goalsSetCmd.Flags().Float64Var(&goalsFat, "fat", 0, "Daily fat (g)")
	_ = goalsSetCmd.MarkFlagRequired("calories")
}
