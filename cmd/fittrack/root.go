package fittrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
	storeKind  string
	userFlag   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "fittrack",
	Short:         "fittrack tracks food, exercise, water and body weight from your terminal",
	Long:          "fittrack is a local-first health tracker: a food diary with macro goals, exercise logging with MET calorie estimates, water intake, body measurements, weight goals and achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to config file (default <user config dir>/fittrack/config.yaml)")
	pf.StringVar(&dbPath, "db", "", "Path to the sqlite file or badger directory")
	pf.StringVar(&storeKind, "store", "", "Store backend: sqlite, badger or memory")
	pf.StringVar(&userFlag, "user", "", "User id records are filed under")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}
