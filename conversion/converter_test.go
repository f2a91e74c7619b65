package conversion

import (
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/boostpay/types"
)

func TestToNativeAmount(t *testing.T) {
	tests := []struct {
		name  string
		fiat  string
		price string
		want  string
	}{
		{"exact division", "99", "9.9", "10.000000"},
		{"rounds to six places", "10", "3", "3.333333"},
		{"rounds half up", "2", "3", "0.666667"},
		{"large pack", "3999", "126.38", "31.642665"},
		{"tiny price", "5", "0.25", "20.000000"},
		{"zero fiat", "0", "10", "0.000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToNativeAmount(decimal.RequireFromString(tt.fiat), decimal.RequireFromString(tt.price))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToNativeAmount_NonPositivePriceUsesFloor(t *testing.T) {
	fiat := decimal.NewFromInt(99)

	assert.Equal(t, "99.000000", ToNativeAmount(fiat, decimal.Zero))
	assert.Equal(t, "99.000000", ToNativeAmount(fiat, decimal.NewFromInt(-3)))
	assert.Equal(t, "0.792000", ToNativeAmountWithFloor(fiat, decimal.Zero, decimal.NewFromInt(125)))
}

func TestToNativeAmount_NeverScientific(t *testing.T) {
	got := ToNativeAmount(decimal.NewFromInt(1), decimal.NewFromInt(100000000))
	assert.Equal(t, "0.000000", got)

	got = ToNativeAmount(decimal.NewFromInt(1000000000), decimal.RequireFromString("0.0001"))
	assert.Equal(t, "10000000000000.000000", got)
}

func TestToSmallestUnit(t *testing.T) {
	wei, err := ToSmallestUnit("10.000000", 18)
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("10000000000000000000", 10)
	assert.Equal(t, 0, want.Cmp(wei))

	lamports, err := ToSmallestUnit("0.792000", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(792000000), lamports.Int64())

	truncated, err := ToSmallestUnit("1.2345678919", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1234567891), truncated.Int64())
}

func TestToSmallestUnit_Errors(t *testing.T) {
	_, err := ToSmallestUnit("abc", 18)
	require.Error(t, err)
	assert.Equal(t, types.ErrConversionFailed, types.ErrorCode(err))

	_, err = ToSmallestUnit("-1", 18)
	require.Error(t, err)

	_, err = ToSmallestUnit("1", -1)
	require.Error(t, err)
}

func TestSmallestUnitDeterministic(t *testing.T) {
	fiats := []string{"99", "249", "399", "899", "3999", "5", "10.01"}
	prices := []string{"9.9", "126.38", "0.2517", "3021.77", "601.3", "0.000042"}

	for _, f := range fiats {
		for _, p := range prices {
			native := ToNativeAmount(decimal.RequireFromString(f), decimal.RequireFromString(p))
			first, err := ToSmallestUnit(native, 18)
			require.NoError(t, err)
			again, err := ToSmallestUnit(ToNativeAmount(decimal.RequireFromString(f), decimal.RequireFromString(p)), 18)
			require.NoError(t, err)
			assert.Equal(t, 0, first.Cmp(again), "fiat=%s price=%s", f, p)
			back := decimal.RequireFromString(FromSmallestUnit(first, 18))
			assert.True(t, back.Equal(decimal.RequireFromString(native)), "fiat=%s price=%s", f, p)
		}
	}
}

func TestParseFiat(t *testing.T) {
	d, err := ParseFiat("$3,999")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(3999)))

	d, err = ParseFiat(" 99.50 ")
	require.NoError(t, err)
	assert.Equal(t, "99.5", d.String())

	d, err = ParseFiat("ninety")
	require.Error(t, err)
	assert.True(t, d.IsZero())
	assert.Equal(t, types.ErrConversionFailed, types.ErrorCode(err))

	_, err = ParseFiat("-4")
	require.Error(t, err)
}

func TestIntentDerivation(t *testing.T) {
	profile, ok := types.DefaultNetworks().Lookup(types.NetworkEthereum)
	require.True(t, ok)

	intent := NewIntent(decimal.NewFromInt(99), profile, decimal.RequireFromString("9.9"), time.Now())
	assert.Equal(t, "10.000000", NativeAmount(intent))

	wei, err := SmallestUnit(intent)
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", wei.String())

	seeded := NewIntent(decimal.NewFromInt(99), profile, decimal.Zero, time.Now())
	assert.True(t, seeded.PriceAtCreation.Equal(decimal.NewFromInt(3000)))
}
