package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/ownership/config"
	"github.com/wippyai/ownership/ptr"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "smartptr",
		Short: "Trace construction, transfer and destruction under four ownership strategies",
		Long: `smartptr walks a fixed sequence of scenarios that create values under raw,
exclusive, unique and shared ownership and prints every construction, copy,
move and destruction, including what happens on early exit and on panic.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/smartptr/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: "+strings.Join(config.ValidLogLevels(), ", "))
	_ = a.v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		a.newRunCmd(),
		a.newListCmd(),
		a.newInteractiveCmd(),
	)
	return root
}

// load resolves configuration from defaults, file, environment and
// flags, then builds the logger.
func (a *app) load() error {
	config.SetDefaults(a.v)

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(config.ConfigDir())
		a.v.AddConfigPath(".")
	}

	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || a.v.GetString("config") != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := cfg.Logging.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	ptr.SetLogger(logger.Named("ptr"))
	return nil
}
