package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nethesap/nethesap/internal/app"
	"github.com/nethesap/nethesap/internal/config"
	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/export"
	"github.com/nethesap/nethesap/internal/logging"
)

// runtime holds what PersistentPreRunE resolves for every command.
type runtime struct {
	configPath string
	logLevel   string
	exam       string

	path   string // resolved config file path
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "nethesap",
		Short: "YKS net calculator",
		Long:  "nethesap: TYT ve AYT doğru/yanlış sayılarından net ve yüzde hesaplayan terminal uygulaması.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so its logs only go to a file.
			var fallback io.Writer
			if cmd.Parent() != nil {
				fallback = cmd.ErrOrStderr()
			}
			return rt.init(fallback, toleratesBadConfig(cmd))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, rt)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/nethesap/config.yaml)")
	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&rt.exam, "exam", "", "Exam variant: tyt or ayt (default from config)")

	root.AddCommand(newCalcCmd(rt))
	root.AddCommand(newExamsCmd())
	root.AddCommand(newConfigCmd(rt))
	root.AddCommand(versionCmd)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// toleratesBadConfigKey marks commands that must run even when the config
// file does not load, so a broken file can be replaced.
const toleratesBadConfigKey = "nethesap/tolerates-bad-config"

func toleratesBadConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[toleratesBadConfigKey] == "true" {
			return true
		}
	}
	return false
}

// init resolves the config path, loads the config and builds the logger.
// With lenient set, a config that fails to load is replaced by the defaults
// and the failure is logged instead of returned.
func (rt *runtime) init(fallback io.Writer, lenient bool) error {
	path := rt.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, loadErr := config.Load(path)
	if loadErr != nil {
		if !lenient {
			return fmt.Errorf("load config: %w", loadErr)
		}
		cfg = config.DefaultConfig()
	}
	if rt.logLevel != "" {
		cfg.Logging.Level = rt.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Logging, fallback)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	rt.path = path
	rt.cfg = cfg
	rt.logger = logger
	if loadErr != nil {
		logger.Warn("config ignored, using defaults", zap.String("path", path), zap.Error(loadErr))
	} else {
		logger.Debug("config loaded", zap.String("path", path))
	}
	return nil
}

// examID returns the --exam flag or the configured default, validated.
func (rt *runtime) examID() (string, error) {
	id := rt.exam
	if id == "" {
		id = rt.cfg.DefaultExam
	}
	if _, err := exam.Load(id); err != nil {
		return "", err
	}
	return id, nil
}

func runTUI(cmd *cobra.Command, rt *runtime) error {
	opts := app.Options{
		Config:   rt.cfg,
		Logger:   rt.logger,
		Exporter: export.New(rt.cfg.Export.Dir, export.WithLogger(rt.logger.Named("export"))),
	}
	if rt.exam != "" {
		id, err := rt.examID()
		if err != nil {
			return err
		}
		opts.Exam = id
	}
	return app.Run(cmd.Context(), opts)
}
