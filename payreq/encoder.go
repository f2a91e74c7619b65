// Package payreq builds and parses scannable payment-request strings:
// Solana Pay transfer requests and EIP-681 native transfer URIs.
package payreq

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/types"
)

const (
	SchemeSolana   = "solana"
	SchemeEthereum = "ethereum"
)

// Options carries the human-readable metadata of a request.
type Options struct {
	// Label and Message are only used by Solana requests.
	Label   string
	Message string

	// Note is attached as a memo on Solana and as hex calldata on EVM.
	Note string
}

// BoostOptions returns the metadata used for boost purchases.
func BoostOptions(label, message, note string) Options {
	return Options{Label: label, Message: message, Note: note}
}

// DonationOptions returns the metadata used for charity donations. The
// EVM request carries no calldata.
func DonationOptions() Options {
	return Options{Label: "Charity Donation", Message: "Donation to charity"}
}

// Encode builds the payment-request string for profile and a native
// amount produced by conversion.ToNativeAmount. It is a pure function.
func Encode(profile types.NetworkProfile, native string, opts Options) (string, error) {
	if _, err := decimal.NewFromString(native); err != nil {
		return "", types.NewError(types.ErrInvalidPaymentRequest, fmt.Sprintf("invalid native amount %q", native), err)
	}

	switch profile.ChainFamily {
	case types.ChainSolana:
		return encodeSolana(profile, native, opts), nil
	case types.ChainEVM:
		return encodeEVM(profile, native, opts)
	default:
		return "", &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported chain family %q for %s", profile.ChainFamily, profile.ID),
		}
	}
}

// solana:<recipient>?amount=<decimal>&label=<label>&message=<message>[&memo=<note>]
func encodeSolana(profile types.NetworkProfile, native string, opts Options) string {
	var b strings.Builder
	b.WriteString(SchemeSolana)
	b.WriteByte(':')
	b.WriteString(profile.RecipientAddress)
	b.WriteString("?amount=")
	b.WriteString(native)
	b.WriteString("&label=")
	b.WriteString(encodeComponent(opts.Label))
	b.WriteString("&message=")
	b.WriteString(encodeComponent(opts.Message))
	if opts.Note != "" {
		b.WriteString("&memo=")
		b.WriteString(encodeComponent(opts.Note))
	}
	return b.String()
}

// ethereum:<recipient>@<chainId>?value=<wei>[&data=0x<hex>]
func encodeEVM(profile types.NetworkProfile, native string, opts Options) (string, error) {
	wei, err := conversion.ToSmallestUnit(native, profile.DecimalPlaces)
	if err != nil {
		return "", types.NewError(types.ErrInvalidPaymentRequest, "cannot scale amount", err)
	}

	var b strings.Builder
	b.WriteString(SchemeEthereum)
	b.WriteByte(':')
	b.WriteString(profile.RecipientAddress)
	b.WriteByte('@')
	b.WriteString(strconv.FormatUint(profile.ChainID, 10))
	b.WriteString("?value=")
	b.WriteString(wei.String())
	if opts.Note != "" {
		b.WriteString("&data=")
		b.WriteString(hexutil.Encode([]byte(opts.Note)))
	}
	return b.String(), nil
}

// encodeComponent percent-encodes s the way wallets expect query values,
// with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
