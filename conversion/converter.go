// Package conversion turns fiat amounts into chain-native amounts and
// smallest-unit integers.
package conversion

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vitwit/boostpay/types"
)

// NativePrecision is the number of decimal places of every native amount
// shown to the user or encoded into a request.
const NativePrecision int32 = 6

// DefaultPriceFloor replaces a non-positive price when the caller has no
// network-specific fallback.
var DefaultPriceFloor = decimal.NewFromInt(1)

// ToNativeAmount returns fiat/price rounded to NativePrecision places as a
// fixed-point string. A non-positive price is replaced by DefaultPriceFloor.
func ToNativeAmount(fiat, price decimal.Decimal) string {
	return ToNativeAmountWithFloor(fiat, price, DefaultPriceFloor)
}

// ToNativeAmountWithFloor is ToNativeAmount with an explicit floor price.
func ToNativeAmountWithFloor(fiat, price, floor decimal.Decimal) string {
	if !price.IsPositive() {
		price = floor
	}
	if !price.IsPositive() {
		price = DefaultPriceFloor
	}
	if !fiat.IsPositive() {
		return decimal.Zero.StringFixed(NativePrecision)
	}
	return fiat.DivRound(price, NativePrecision).StringFixed(NativePrecision)
}

// ToSmallestUnit parses a native decimal string and scales it by
// 10^decimals, truncating any remainder.
func ToSmallestUnit(native string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(native))
	if err != nil {
		return nil, types.NewError(types.ErrConversionFailed, fmt.Sprintf("invalid native amount %q", native), err)
	}
	if d.IsNegative() {
		return nil, types.NewError(types.ErrConversionFailed, fmt.Sprintf("negative native amount %q", native), nil)
	}
	if decimals < 0 {
		return nil, types.NewError(types.ErrConversionFailed, fmt.Sprintf("invalid decimal places %d", decimals), nil)
	}
	return d.Shift(decimals).Floor().BigInt(), nil
}

// FromSmallestUnit formats a smallest-unit integer as a native decimal.
func FromSmallestUnit(amount *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// ParseFiat parses a user-facing fiat string such as "$3,999" or "99.5".
// Malformed or non-positive input yields zero together with a
// CONVERSION_FAILED error that callers treat as a warning.
func ParseFiat(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, types.NewError(types.ErrConversionFailed, fmt.Sprintf("invalid fiat amount %q", s), err)
	}
	if !d.IsPositive() {
		return decimal.Zero, types.NewError(types.ErrConversionFailed, fmt.Sprintf("fiat amount must be positive, got %q", s), nil)
	}
	return d, nil
}

// NewIntent freezes a fiat amount and price for one network. A
// non-positive price is replaced by the network's fallback price.
func NewIntent(fiat decimal.Decimal, network types.NetworkProfile, price decimal.Decimal, now time.Time) types.PaymentIntent {
	if !price.IsPositive() {
		price = network.Fallback()
	}
	if !price.IsPositive() {
		price = DefaultPriceFloor
	}
	return types.PaymentIntent{
		FiatAmount:      fiat,
		Network:         network,
		PriceAtCreation: price,
		CreatedAt:       now,
	}
}

// NativeAmount derives the displayed and encoded amount of an intent.
func NativeAmount(intent types.PaymentIntent) string {
	return ToNativeAmountWithFloor(intent.FiatAmount, intent.PriceAtCreation, intent.Network.Fallback())
}

// SmallestUnit derives the smallest-unit integer of an intent.
func SmallestUnit(intent types.PaymentIntent) (*big.Int, error) {
	return ToSmallestUnit(NativeAmount(intent), intent.Network.DecimalPlaces)
}
