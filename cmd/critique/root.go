package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	profile  string
	apiURL   string
	logLevel string
}

var rootCmd = &cobra.Command{
	Use:   "critique",
	Short: "The Food Critique web service and terminal client",
	Long: "critique serves the Food Critique pages to browsers (serve) and drives the\n" +
		"same session from a terminal: log in once, then browse restaurants,\n" +
		"moderate reviews and manage users from the command line.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.profile, "profile", "default", "Credential profile to use")
	f.StringVar(&rootFlags.apiURL, "api", "", "Override API_BASE_URL")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Override LOG_LEVEL")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(restaurantsCmd)
	rootCmd.AddCommand(restaurantCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
