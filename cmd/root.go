package cmd

import (
	"os"

	"monopoly/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "monopoly",
	Short: "Monopoly episode simulator",
	Long: `Plays full Monopoly games between rule-based and learned agents,
producing episode records and training transitions.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// loadConfig reads the settings and sets up logging. The command's flags are
// mapped onto config keys so that they win over the environment and the
// config file.
func loadConfig(cmd *cobra.Command, keys map[string]string) (config.Config, error) {
	v := viper.GetViper()
	for flag, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return config.Config{}, err
		}
	}
	if err := config.Bind(v, cfgFile); err != nil {
		return config.Config{}, err
	}
	c, err := config.Load(v)
	if err != nil {
		return c, err
	}
	zerolog.SetGlobalLevel(c.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return c, nil
}
