package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "btstackd",
	Short: "Run the layered protocol stack daemon",
	Long: `btstackd boots the layered protocol stack: it selects the module
set from the configured feature toggles, starts the modules in
dependency order on the stack's serial execution context, and tears
everything down in reverse order on shutdown.`,
	// SilenceUsage prevents printing the usage message on errors we
	// already report ourselves.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "btstackd version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
}
