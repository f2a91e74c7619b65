// cmd/boostpay/main.go
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitwit/boostpay"
	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/utils"
)

// cliOptions holds the persistent flags shared by every command.
type cliOptions struct {
	configPath string
	logLevel   string
	offline    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "boostpay",
		Short:         "Boost payment CLI",
		Long:          `boostpay prices listing boosts and donations in native coins and prints scannable payment requests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "use fallback prices instead of fetching live ones")

	rootCmd.AddCommand(
		newNetworksCmd(opts),
		newPacksCmd(),
		newQuoteCmd(opts),
		newRequestCmd(opts),
		newQRCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func (o *cliOptions) loadConfig() (*types.Config, error) {
	if o.configPath == "" {
		return types.DefaultConfig(), nil
	}
	return utils.LoadConfig(o.configPath)
}

// engine builds an engine and, unless offline, refreshes prices once. A
// failed refresh is reported and the fallback prices are used.
func (o *cliOptions) engine(cmd *cobra.Command) (*boostpay.Engine, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	e, err := boostpay.New(cfg, boostpay.WithLogger(logger.NewZapLogger(o.logLevel)))
	if err != nil {
		return nil, err
	}
	if o.offline {
		return e, nil
	}
	if err := e.Refresh(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("Warning: %s", types.Notice(err)))
	}
	return e, nil
}
