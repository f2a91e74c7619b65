package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--offline", "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCmd(t *testing.T) {
	out, err := runCLI(t, "quote", "solana", "$99")
	require.NoError(t, err)
	assert.Contains(t, out, "0.792000 SOL")
	assert.Contains(t, out, "792000000")
	assert.Contains(t, out, "fallback")
}

func TestQuoteCmdPack(t *testing.T) {
	out, err := runCLI(t, "quote", "base", "--pack", "30x")
	require.NoError(t, err)
	assert.Contains(t, out, "0.083000 ETH")

	_, err = runCLI(t, "quote", "base", "--pack", "7x")
	assert.ErrorContains(t, err, "unknown boost pack")

	_, err = runCLI(t, "quote", "base", "99", "--pack", "30x")
	assert.Error(t, err)

	_, err = runCLI(t, "quote", "cosmoshub-4", "99")
	assert.Error(t, err)
}

func TestRequestCmd(t *testing.T) {
	out, err := runCLI(t, "request", "base", "99")
	require.NoError(t, err)
	assert.Equal(t,
		"ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@8453?value=33000000000000000&data=0x4920636f6e6669726d207468697320626f6f7374207061796d656e742e",
		strings.TrimSpace(out))

	out, err = runCLI(t, "request", "solana", "--donation")
	require.NoError(t, err)
	assert.Equal(t,
		"solana:z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD?amount=0.080000&label=Charity%20Donation&message=Donation%20to%20charity",
		strings.TrimSpace(out))
}

func TestQRCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boost.png")
	out, err := runCLI(t, "qr", "solana", "--pack", "10x", "-o", path, "--size", "128")
	require.NoError(t, err)
	assert.Contains(t, out, "solana:z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD?amount=0.792000")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestNetworksCmdWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boostpay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
networks:
  - id: solana
    displayName: Solana Devnet
    nativeSymbol: SOL
    chainFamily: account-based-solana
    decimalPlaces: 9
    recipientAddress: z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD
    priceFeedId: solana
    fallbackPrice: "125"
`), 0o644))

	out, err := runCLI(t, "networks", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Solana Devnet")
	assert.NotContains(t, out, "Ethereum")
}

func TestPacksCmd(t *testing.T) {
	out, err := runCLI(t, "packs")
	require.NoError(t, err)
	assert.Contains(t, out, "500x")
	assert.Contains(t, out, "$3999")
}
