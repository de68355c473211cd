// Package main provides the htc-opil binary entry point.
// htc-opil writes the OPIL protocol interface of the Aquarium
// high-throughput culturing workflow as an RDF document.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aquariumbio/aquarium-opil/config"
	"github.com/aquariumbio/aquarium-opil/export"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "htc-opil"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the root command flags.
type flags struct {
	configPath string
	output     string
	format     string
	dated      bool
	logLevel   string
	watch      bool

	// Set when the flag was given explicitly.
	formatSet bool
	datedSet  bool
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate the Aquarium HTC protocol interface as OPIL/SBOL3 RDF",
		Long: `htc-opil builds the OPIL protocol interface for the Aquarium
high-throughput culturing workflow and writes it as an RDF document.

With no flags and no aquarium-opil.yaml it writes jellyfish_htc.ttl in the
working directory. Set nats.url (or AQUARIUM_OPIL_NATS_URL) to also publish
the document to the semstreams graph.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.formatSet = cmd.Flags().Changed("format")
			f.datedSet = cmd.Flags().Changed("dated")

			logger := newLogger(cmd.ErrOrStderr(), f.logLevel)
			slog.SetDefault(logger)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return run(ctx, f, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (overrides output.dir and output.name)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (turtle, ntriples, jsonld, rdfxml)")
	cmd.Flags().BoolVar(&f.dated, "dated", false, "Append _YYYYMMDD to the output file name")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Regenerate whenever the config file changes")

	cmd.AddCommand(formatsCmd(), initCmd(), versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		Run: func(cmd *cobra.Command, args []string) {
			printFormats(cmd.OutOrStdout())
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ProjectConfigFile + " in the working directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(newLogger(cmd.ErrOrStderr(), "warn"))
			path, err := loader.EnsureProjectConfig()
			if err != nil {
				return fmt.Errorf("init config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func printFormats(w io.Writer) {
	names := make([]string, 0, len(export.FormatRegistry))
	for format := range export.FormatRegistry {
		names = append(names, string(format))
	}
	sort.Strings(names)

	for _, name := range names {
		info := export.FormatRegistry[export.Format(name)]
		fmt.Fprintf(w, "%-9s %-7s %-22s %s\n", info.Name, info.Extension, info.MIMEType, info.Description)
	}
}

func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run generates once, then keeps regenerating on config changes in watch
// mode until ctx is cancelled.
func run(ctx context.Context, f flags, stdout io.Writer, logger *slog.Logger) error {
	loader := config.NewLoader(logger)
	cfg, projectPath, err := loader.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	r, err := newRunner(ctx, cfg, f, stdout, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err := r.Once(ctx); err != nil {
		return err
	}

	if !f.watch {
		return nil
	}

	if projectPath == "" {
		if projectPath, err = loader.EnsureProjectConfig(); err != nil {
			return fmt.Errorf("create config to watch: %w", err)
		}
	}
	return r.Watch(ctx, loader, projectPath)
}
