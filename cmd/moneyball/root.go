package main

import (
	"github.com/spf13/cobra"

	"github.com/aristath/moneyball/internal/config"
)

// options carries flag values that override the loaded configuration.
type options struct {
	apiURL   string
	port     int
	logLevel string
	cfg      *config.Config
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(&options{})
}

func newRootCommandWith(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "moneyball",
		Short:         "Football match predictions in the browser or the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Backend base URL including /api (overrides MONEYBALL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		opts.apply(cmd, cfg)
		opts.cfg = cfg
		return cfg.Validate()
	}

	rootCmd.AddCommand(
		newServeCommand(opts),
		newTUICommand(opts),
	)
	return rootCmd
}

// apply lets explicitly set flags win over environment values.
func (o *options) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = o.apiURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = o.port
	}
}
