package payreq

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/types"
)

func profile(t *testing.T, id types.NetworkID) types.NetworkProfile {
	t.Helper()
	p, ok := types.DefaultNetworks().Lookup(id)
	require.True(t, ok)
	return p
}

func TestEncodeEVM(t *testing.T) {
	uri, err := Encode(profile(t, types.NetworkEthereum), "10.000000", Options{Note: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@1?value=10000000000000000000&data=0x6869", uri)

	uri, err = Encode(profile(t, types.NetworkBNB), "0.5", Options{})
	require.NoError(t, err)
	assert.Equal(t, "ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@56?value=500000000000000000", uri)
}

func TestEncodeSolana(t *testing.T) {
	uri, err := Encode(profile(t, types.NetworkSolana), "0.792000", BoostOptions("Boost Payment", "What is your name?", ""))
	require.NoError(t, err)
	assert.Equal(t, "solana:z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD?amount=0.792000&label=Boost%20Payment&message=What%20is%20your%20name%3F", uri)

	uri, err = Encode(profile(t, types.NetworkSolana), "1.000000", BoostOptions("Boost Payment", "thanks", "order #7"))
	require.NoError(t, err)
	assert.Contains(t, uri, "&memo=order%20%237")
}

func TestEncodeDonation(t *testing.T) {
	uri, err := Encode(profile(t, types.NetworkPolygon), "40.000000", DonationOptions())
	require.NoError(t, err)
	assert.NotContains(t, uri, "data=")

	uri, err = Encode(profile(t, types.NetworkSolana), "0.080000", DonationOptions())
	require.NoError(t, err)
	assert.Contains(t, uri, "label=Charity%20Donation&message=Donation%20to%20charity")
}

func TestEncodeRejectsBadInput(t *testing.T) {
	_, err := Encode(profile(t, types.NetworkEthereum), "1e", Options{})
	require.Error(t, err)
	assert.Equal(t, types.ErrInvalidPaymentRequest, types.ErrorCode(err))

	odd := profile(t, types.NetworkEthereum)
	odd.ChainFamily = "utxo"
	_, err = Encode(odd, "1", Options{})
	require.Error(t, err)
	assert.Equal(t, types.ErrUnsupportedNetwork, types.ErrorCode(err))
}

func TestEncodeIsDeterministic(t *testing.T) {
	p := profile(t, types.NetworkBase)
	a, err := Encode(p, "0.032761", Options{Note: "ack"})
	require.NoError(t, err)
	b, err := Encode(p, "0.032761", Options{Note: "ack"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRoundTrip(t *testing.T) {
	fiats := []int64{5, 99, 249, 3999}
	prices := []string{"9.9", "142.17", "0.2517", "3021.77"}

	for _, table := range types.DefaultNetworks() {
		for _, f := range fiats {
			for _, p := range prices {
				native := conversion.ToNativeAmount(decimal.NewFromInt(f), decimal.RequireFromString(p))
				uri, err := Encode(table, native, BoostOptions("Boost Payment", "msg & more", "note"))
				require.NoError(t, err)

				req, err := Decode(uri)
				require.NoError(t, err)
				assert.Equal(t, table.RecipientAddress, req.Recipient)

				if table.IsEVM() {
					want, err := conversion.ToSmallestUnit(native, table.DecimalPlaces)
					require.NoError(t, err)
					assert.Equal(t, 0, want.Cmp(req.Value), uri)
					assert.Equal(t, table.ChainID, req.ChainID)
					assert.Equal(t, []byte("note"), req.Data)
				} else {
					assert.Equal(t, native, req.Amount)
					assert.Equal(t, "msg & more", req.Message)
					assert.Equal(t, "note", req.Memo)
				}
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []string{
		"bitcoin:1abc?amount=1",
		"ethereum:0x123@1?value=1",
		"ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@one?value=1",
		"ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@1?value=0x10",
		"solana:not-base58-0OIl?amount=1",
		"solana:",
	}
	for _, c := range cases {
		_, err := Decode(c)
		assert.Error(t, err, c)
	}
}

func TestRenderPNG(t *testing.T) {
	uri, err := Encode(profile(t, types.NetworkSolana), "0.792000", BoostOptions("Boost Payment", "m", ""))
	require.NoError(t, err)

	png, err := RenderPNG(uri, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	dataURL, err := DataURL(uri, 128)
	require.NoError(t, err)
	assert.Contains(t, dataURL, "data:image/png;base64,")
}
