// cmd/boostpay/networks.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vitwit/boostpay"
	"github.com/vitwit/boostpay/types"
)

func newNetworksCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the payable networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSYMBOL\tFAMILY\tCHAIN ID\tRECIPIENT")
			for _, p := range cfg.Networks {
				chainID := "-"
				if p.IsEVM() {
					chainID = fmt.Sprintf("%d", p.ChainID)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.DisplayName, p.NativeSymbol, p.ChainFamily, chainID, p.RecipientAddress)
			}
			return w.Flush()
		},
	}
}

func newPacksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: "List boost packs and donation presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PACK\tDURATION\tPRICE")
			for _, p := range types.BoostPacks {
				fmt.Fprintf(w, "%s\t%s\t$%s\n", p.Multiplier, p.Duration, p.Price.String())
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "DONATIONS\t%v\t(default $%d)\n", types.DonationAmounts, types.DefaultDonationAmount)
			return w.Flush()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "boostpay %s\n", boostpay.Version)
		},
	}
}
