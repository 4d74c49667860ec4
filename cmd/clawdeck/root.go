package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bhandras/clawdeck/pkg/logger"
)

const envPrefix = "CLAWDECK"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "clawdeck",
		Short:        "Browser control panel for Claw assistants",
		Long:         "Clawdeck serves the assistant's web UI, session history and bootstrap config over plain HTTP.",
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().String("config", "", "config file (default is ~/.clawdeck/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn or error")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if raw := strings.TrimSpace(viper.GetString("log_level")); raw != "" {
		level, err := logger.ParseLevel(raw)
		if err != nil {
			logger.Warnf("Ignoring log level: %v", err)
			return
		}
		logger.SetLevel(level)
	}
}
