/*
main.go - Application entry point

PURPOSE:
  Command-line front end of the vacation pay calculator. Runs the HTTP
  server, computes one-off amounts, and manages stored holidays.

COMMANDS:
  serve                                        Start the HTTP API
  calculate --salary 15000 --days 14           Day-count calculation
  calculate --salary 40000 --from D --to D     Date-range calculation
  holidays list [--year 2026]                  Print the active calendar
  holidays import <file.yaml>                  Store holidays from a YAML file
  holidays defaults                            Store the built-in 2026 holidays

CONFIGURATION:
  --config points at a YAML file (see config/config.go for keys). Every key
  can be overridden with VACATIONPAY_<SECTION>_<KEY>, for example
  VACATIONPAY_SERVER_PORT=9090 or VACATIONPAY_STORAGE_DRIVER=memory.

LOGGING:
  JSON through zap. With log.file set, output goes to a rotated file
  (lumberjack) instead of stderr.

SEE ALSO:
  - serve.go: Server startup and graceful shutdown
  - api/server.go: Router configuration
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/vacation-pay/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vacationpay",
		Short:         "Vacation pay calculator",
		Long:          "Computes vacation pay from average monthly salary and vacation days, skipping public holidays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err = newLogger(cfg.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")

	root.AddCommand(serveCmd(), calculateCmd(), holidaysCmd())
	return root
}

// newLogger builds a JSON logger on stderr, or on a rotated file when
// lc.File is set.
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if lc.File == "" {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return l, nil
	}

	logWriter := &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		level,
	)
	return zap.New(core), nil
}
