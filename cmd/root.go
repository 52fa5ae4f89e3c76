package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AdminBXVentures/embedbroker/internal/buildinfo"
	"github.com/AdminBXVentures/embedbroker/internal/config"
	"github.com/AdminBXVentures/embedbroker/internal/logging"
)

// global flags
var (
	cfgFile    string
	serverAddr string
)

const (
	LogLevelKey   = "log.level"
	LogFormatKey  = "log.format"
	LogNoColorKey = "log.no_color"

	ServerAddrKey = "server"
)

var rootCmd = &cobra.Command{
	Use:   "embedbroker",
	Short: fmt.Sprintf("embedbroker (version: %s, commit: %s)", buildinfo.Version, buildinfo.CommitHash),
	Long: `embedbroker hands out short-lived credentials for embedded ChatKit and Tableau
views to browsers, while the long-lived secrets never leave the server.`,
	Version: buildinfo.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, configErr := initConfig()
		if err := logging.Init(logging.Options{
			Level:   viper.GetString(LogLevelKey),
			Format:  viper.GetString(LogFormatKey),
			NoColor: viper.GetBool(LogNoColorKey),
		}); err != nil {
			return err
		}
		if configErr != nil { // handle error after logging is initialized
			return configErr
		}
		if configPath != "" {
			log.Debug().Msgf("using config file: %s", configPath)
		}
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("execution failed")
		os.Exit(1)
	}
}

func init() {
	// setup pre-flag logger
	logging.InitDefault()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Optional YAML config file; environment variables take precedence")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(LogLevelKey, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindEnv(LogLevelKey, "LOG_LEVEL")

	rootCmd.PersistentFlags().String("log-format", logging.FormatConsole, "Log format (console, json)")
	_ = viper.BindPFlag(LogFormatKey, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindEnv(LogFormatKey, "LOG_FORMAT")

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	_ = viper.BindPFlag(LogNoColorKey, rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "",
		"Address of a running embedbroker server (env: EMBEDBROKER_SERVER)")
	_ = viper.BindPFlag(ServerAddrKey, rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindEnv(ServerAddrKey, "EMBEDBROKER_SERVER")

	config.BindEnv(viper.GetViper())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func initConfig() (string, error) {
	if cfgFile == "" {
		return "", nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundError) {
			return "", fmt.Errorf("config file %s not found", cfgFile)
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return viper.ConfigFileUsed(), nil
}
