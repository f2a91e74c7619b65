// cmd/boostpay/request.go
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitwit/boostpay/payreq"
)

func newRequestCmd(opts *cliOptions) *cobra.Command {
	var amount amountFlags

	cmd := &cobra.Command{
		Use:   "request <network> [amount]",
		Short: "Print a scannable payment request",
		Long: `Print the Solana Pay or EIP-681 payment request for a fiat amount.

Examples:
  boostpay request solana 249
  boostpay request ethereum --donation`,
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
			fmt.Fprintln(cmd.OutOrStdout(), q.Request)
			return nil
		},
	}
	amount.register(cmd)
	return cmd
}

func newQRCmd(opts *cliOptions) *cobra.Command {
	var (
		amount amountFlags
		output string
		size   int
	)

	cmd := &cobra.Command{
		Use:   "qr <network> [amount]",
		Short: "Write a payment request as a QR code PNG",
		Args:  cobra.RangeArgs(1, 2),
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
			png, err := payreq.RenderPNG(q.Request, size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Wrote %s", output))
			fmt.Fprintln(cmd.OutOrStdout(), q.Request)
			return nil
		},
	}
	amount.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "payment.png", "output PNG path")
	cmd.Flags().IntVar(&size, "size", 256, "image size in pixels")
	return cmd
}
