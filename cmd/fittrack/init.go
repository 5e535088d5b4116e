package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	initUsername string
	initEmail    string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local store and create your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *cliEnv) error {
			created, err := rt.svc.InitProfile(cmd.Context(), rt.user, initUsername, initEmail)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized fittrack %s store at %s\n", rt.cfg.Store.Backend, rt.storePath)
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created profile for %s\n", rt.user)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Profile for %s already exists\n", rt.user)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initUsername, "username", "", "Display name (default the user id)")
	initCmd.Flags().StringVar(&initEmail, "email", "", "Email address")
}
