// Command ffigen reads C headers and prints the declarations a binding
// generator needs: records, enums, functions, callbacks and constants.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of ffigen
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configPath string
	cflags     []string
	includes   []string
)

var rootCmd = &cobra.Command{
	Use:   "ffigen",
	Short: "Read C headers into a binding-ready declaration index",
	Long: `ffigen parses C headers with libclang and resolves every exported
declaration into a language neutral model: structs and unions with their
fields, enums with their constants, functions grouped as methods of the
records they operate on, callback typedefs and constant macros.

Examples:
  ffigen dump include/widget.h --module Widget --prefix wgt_
  ffigen dump --config ffigen.yaml --format json
  ffigen dump --config ffigen.yaml --query '.functions[].name'`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// clangFlags holds the options forwarded to the C front end.
func clangFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("clang", pflag.ContinueOnError)
	fs.StringArrayVar(&cflags, "cflag", nil, "Extra argument passed to clang (repeatable)")
	fs.StringArrayVarP(&includes, "include-dir", "I", nil, "Add a directory to the include search path")
	return fs
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ffigen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ffigen %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped declarations and clang diagnostics")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().AddFlagSet(clangFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
