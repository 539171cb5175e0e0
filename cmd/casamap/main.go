// Command casamap is a demonstration CLI for the column mapping
// planner and group-sort/merge engine: it plans a ColumnMapping against
// a YAML table fixture, and sorts/merges YAML-described row shards.
// It is not a casacore client — see pkg/casastore's package doc.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ratt-ru/casa-arrow/pkg/config"
	"github.com/ratt-ru/casa-arrow/pkg/logger"
	"github.com/ratt-ru/casa-arrow/pkg/observability"
)

var version = "0.1.0"

var (
	cfgFile  string
	logLevel string
	trace    bool
)

func main() {
	root := &cobra.Command{
		Use:   "casamap",
		Short: "Plan column mappings and sort/merge row shards over Arrow arrays",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initGlobal()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "emit OpenTelemetry spans to stdout")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newSortCmd())
	root.AddCommand(newMergeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initGlobal builds pkg/config's CLIConfig, layering --config's YAML
// file (via pkg/config.Load, with ${VAR}-style env substitution) over
// config.Default(), then lets viper's CASAMAP_* environment variables
// and the --log-level flag override the result. It then initializes
// the logger and, if --trace is set, a stdout tracer.
func initGlobal() error {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile, cfg)
		if err != nil {
			return fmt.Errorf("loading config file: %w", err)
		}
		cfg = loaded
	}

	v := viper.New()
	v.SetEnvPrefix("CASAMAP")
	v.AutomaticEnv()

	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if logLevel != "info" {
		cfg.LogLevel = logLevel
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Encoding: "console"}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	if trace {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("creating stdout trace exporter: %w", err)
		}
		observability.InitTracer(sdktrace.NewSimpleSpanProcessor(exporter))
	}

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("casamap v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
