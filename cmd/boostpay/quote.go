// cmd/boostpay/quote.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/vitwit/boostpay"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/types"
)

// amountFlags selects the fiat amount of a quote.
type amountFlags struct {
	pack     string
	donation bool
}

func (a *amountFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.pack, "pack", "", "boost pack multiplier (e.g. 30x) instead of an amount")
	cmd.Flags().BoolVar(&a.donation, "donation", false, "build a charity donation request")
}

// fiat resolves the amount from args[1] or the pack flag. Donations default
// to the preset amount.
func (a *amountFlags) fiat(args []string) (decimal.Decimal, error) {
	if a.pack != "" {
		if len(args) > 1 {
			return decimal.Zero, fmt.Errorf("use either an amount or --pack, not both")
		}
		p, ok := types.FindBoostPack(a.pack)
		if !ok {
			return decimal.Zero, fmt.Errorf("unknown boost pack %q", a.pack)
		}
		return p.Price, nil
	}
	if len(args) < 2 {
		if a.donation {
			return decimal.NewFromInt(types.DefaultDonationAmount), nil
		}
		return decimal.Zero, fmt.Errorf("an amount or --pack is required")
	}
	return conversion.ParseFiat(args[1])
}

func (a *amountFlags) quote(e *boostpay.Engine, args []string) (*boostpay.Quote, error) {
	fiat, err := a.fiat(args)
	if err != nil {
		return nil, err
	}
	id := types.NetworkID(args[0])
	if a.donation {
		return e.DonationRequest(id, fiat)
	}
	return e.Quote(id, fiat)
}

func newQuoteCmd(opts *cliOptions) *cobra.Command {
	var amount amountFlags

	cmd := &cobra.Command{
		Use:   "quote <network> [amount]",
		Short: "Convert a fiat amount to the network's native coin",
		Long: `Convert a fiat amount to the native coin of a network at the current price.

Examples:
  # Quote $99 in SOL
  boostpay quote solana 99

  # Quote the 30x boost pack on Base
  boostpay quote base --pack 30x`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.engine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			q, err := amount.quote(e, args)
			if err != nil {
				return err
			}

			snap := e.Prices()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "NETWORK\t%s\n", q.Intent.Network.DisplayName)
			fmt.Fprintf(w, "FIAT\t%s\n", q.Intent.FiatAmount.StringFixed(2))
			fmt.Fprintf(w, "PRICE\t%s\n", q.Intent.PriceAtCreation.String())
			fmt.Fprintf(w, "AMOUNT\t%s %s\n", q.NativeAmount, q.Intent.Network.NativeSymbol)
			fmt.Fprintf(w, "SMALLEST UNIT\t%s\n", q.SmallestUnit.String())
			fmt.Fprintf(w, "RECIPIENT\t%s\n", q.Intent.Network.RecipientAddress)
			if snap.Stale {
				fmt.Fprintf(w, "PRICES\tfallback\n")
			}
			return w.Flush()
		},
	}
	amount.register(cmd)
	return cmd
}
