package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/business-calendar/internal/config"
	"github.com/username/business-calendar/internal/server"
	"github.com/username/business-calendar/pkg/calendar"
	"github.com/username/business-calendar/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	calendarPath string
	logger       *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "business-calendar",
		Short: "Business day calculations",
		Long:  "Check business days and do business-day arithmetic over a YAML calendar definition",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&calendarPath, "calendar", "c", "calendar.yaml", "Calendar definition file path")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(rollCmd("roll-forward", "Roll a date forward to the nearest business day",
		func(cal *calendar.Calendar, d time.Time) time.Time { return cal.RollForward(d) }))
	rootCmd.AddCommand(rollCmd("roll-backward", "Roll a date backward to the nearest business day",
		func(cal *calendar.Calendar, d time.Time) time.Time { return cal.RollBackward(d) }))
	rootCmd.AddCommand(rollCmd("next", "Print the business day strictly after a date",
		func(cal *calendar.Calendar, d time.Time) time.Time { return cal.NextBusinessDay(d) }))
	rootCmd.AddCommand(rollCmd("previous", "Print the business day strictly before a date",
		func(cal *calendar.Calendar, d time.Time) time.Time { return cal.PreviousBusinessDay(d) }))
	rootCmd.AddCommand(offsetCmd("add", "Add business days to a date",
		func(cal *calendar.Calendar, d time.Time, n int) time.Time { return cal.AddBusinessDays(d, n) }))
	rootCmd.AddCommand(offsetCmd("subtract", "Subtract business days from a date",
		func(cal *calendar.Calendar, d time.Time, n int) time.Time { return cal.SubtractBusinessDays(d, n) }))
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [date]",
		Short: "Check whether a date is a business day (exit code 1 when not)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := loadCalendar()
			if err != nil {
				return err
			}

			date, err := dateArg(args)
			if err != nil {
				return err
			}

			if !cal.IsBusinessDay(date) {
				fmt.Printf("%s is not a business day\n", dateutil.FormatISODate(date))
				os.Exit(1)
			}
			fmt.Printf("%s is a business day\n", dateutil.FormatISODate(date))
			return nil
		},
	}
}

func rollCmd(use, short string, op func(*calendar.Calendar, time.Time) time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [date]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := loadCalendar()
			if err != nil {
				return err
			}

			date, err := dateArg(args)
			if err != nil {
				return err
			}

			if err := requireBusinessDays(cal); err != nil {
				return err
			}

			fmt.Println(dateutil.FormatISODate(op(cal, date)))
			return nil
		},
	}
}

func offsetCmd(use, short string, op func(*calendar.Calendar, time.Time, int) time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <days> [date]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil || days < 0 {
				return fmt.Errorf("days must be a non-negative integer, got %q", args[0])
			}

			cal, err := loadCalendar()
			if err != nil {
				return err
			}

			date, err := dateArg(args[1:])
			if err != nil {
				return err
			}

			if err := requireBusinessDays(cal); err != nil {
				return err
			}

			fmt.Println(dateutil.FormatISODate(op(cal, date, days)))
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve business-day queries over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				fileLogger, err := initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					return fmt.Errorf("failed to initialize file logger: %w", err)
				}
				logger = fileLogger
			}

			cal, err := config.LoadCalendar(cfg.Calendar.File, logger)
			if err != nil {
				return fmt.Errorf("failed to load calendar: %w", err)
			}

			srv := server.New(cal, server.Options{
				ListenAddr:      cfg.Server.GetListenAddr(),
				ReadTimeout:     cfg.Server.GetReadTimeout(),
				ShutdownTimeout: cfg.Server.GetShutdownTimeout(),
			}, logger)

			return srv.Start()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "config.yaml", "Config file path")

	return cmd
}

func loadCalendar() (*calendar.Calendar, error) {
	cal, err := config.LoadCalendar(calendarPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar: %w", err)
	}
	return cal, nil
}

// dateArg parses the optional positional date argument, defaulting to
// today.
func dateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		return dateutil.Today(), nil
	}
	return dateutil.ParseISODate(args[0])
}

// requireBusinessDays refuses to start a rolling operation that cannot
// terminate.
func requireBusinessDays(cal *calendar.Calendar) error {
	if !cal.HasBusinessDays() {
		return fmt.Errorf("calendar %q has no business days", calendarPath)
	}
	return nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
