package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ffigen/config"
	"ffigen/dump"
	"ffigen/frontend/clangfe"
	"ffigen/logging"
	"ffigen/reader"
)

var (
	dumpModule   string
	dumpLibrary  string
	dumpPrefixes []string
	dumpBlocking []string
	dumpReserved []string
	dumpFormat   string
	dumpQuery    string
	dumpOutput   string
)

var dumpCmd = &cobra.Command{
	Use:   "dump [headers...]",
	Short: "Print the declaration index of one or more headers",
	Long: `Parse the headers, resolve every declaration they contain and print the
result as YAML or JSON. Headers given as arguments are added to the ones
listed in the config file. A jq query filters the output.`,
	Example: `  ffigen dump widget.h --module Widget --prefix wgt_
  ffigen dump --config ffigen.yaml --format json
  ffigen dump widget.h --query '.records[] | select(.methods) | .name'`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpModule, "module", "", "Module name of the generated binding")
	dumpCmd.Flags().StringVar(&dumpLibrary, "library", "", "Shared library name (default: lower-cased module)")
	dumpCmd.Flags().StringSliceVar(&dumpPrefixes, "prefix", nil, "Prefix stripped from declaration names")
	dumpCmd.Flags().StringSliceVar(&dumpBlocking, "blocking", nil, "Function that may block")
	dumpCmd.Flags().StringSliceVar(&dumpReserved, "reserved", nil, "Word that gets a trailing underscore in identifiers")
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "", "Output format (yaml|json)")
	dumpCmd.Flags().StringVarP(&dumpQuery, "query", "q", "", "jq filter applied to the output")
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(dumpCmd)
}

// loadConfig combines the config file, the flags and the header arguments.
// Flags override file values; headers are appended.
func loadConfig(cmd *cobra.Command, headers []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	for _, h := range headers {
		cfg.Headers = append(cfg.Headers, filepath.Clean(h))
	}
	for _, dir := range includes {
		cfg.CFlags = append(cfg.CFlags, "-I"+dir)
	}
	cfg.CFlags = append(cfg.CFlags, cflags...)

	flags := cmd.Flags()
	if flags.Changed("module") {
		cfg.Module = dumpModule
	}
	if flags.Changed("library") {
		cfg.Library = dumpLibrary
	}
	if flags.Changed("prefix") {
		cfg.Prefixes = dumpPrefixes
	}
	if flags.Changed("blocking") {
		cfg.Blocking = dumpBlocking
	}
	if flags.Changed("reserved") {
		cfg.ReservedWords = dumpReserved
	}
	if flags.Changed("format") {
		cfg.Output.Format = dumpFormat
	}
	if flags.Changed("query") {
		cfg.Output.Query = dumpQuery
	}

	cfg = config.Merge(cfg, config.DefaultConfig())
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(cmd.ErrOrStderr(), level)

	unit, err := clangfe.Parse(cfg.Headers, cfg.CFlags)
	if err != nil {
		return err
	}
	defer unit.Close()

	idx, err := reader.New(unit, cfg, logger).Read()
	if err != nil {
		return fmt.Errorf("reading headers: %w", err)
	}

	doc := dump.Build(idx, dump.Options{
		Module:   cfg.Module,
		Library:  cfg.Library,
		Reserved: cfg.ReservedWords,
	})

	var out io.Writer = cmd.OutOrStdout()
	if dumpOutput != "" {
		f, err := os.Create(dumpOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if cfg.Output.Query == "" {
		return dump.Write(out, doc, cfg.Output.Format)
	}
	results, err := dump.Query(doc, cfg.Output.Query)
	if err != nil {
		return err
	}
	for _, v := range results {
		if err := dump.Write(out, v, cfg.Output.Format); err != nil {
			return err
		}
	}
	return nil
}
