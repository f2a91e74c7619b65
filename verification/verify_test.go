package verification_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/payreq"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/utils"
	"github.com/vitwit/boostpay/verification"
)

func intent(t *testing.T, id types.NetworkID, fiat, price string) types.PaymentIntent {
	t.Helper()
	p, ok := types.DefaultNetworks().Lookup(id)
	require.True(t, ok)
	return conversion.NewIntent(decimal.RequireFromString(fiat), p, decimal.RequireFromString(price), time.Now())
}

func TestRequestMatchesIntent(t *testing.T) {
	for _, p := range types.DefaultNetworks() {
		t.Run(string(p.ID), func(t *testing.T) {
			in := intent(t, p.ID, "3999", "126.38")
			uri, err := payreq.Encode(p, conversion.NativeAmount(in), payreq.BoostOptions("Boost Payment", "Boost payment", "note"))
			require.NoError(t, err)

			req, err := verification.Request(uri, in)
			require.NoError(t, err)
			assert.Equal(t, p.RecipientAddress, req.Recipient)
		})
	}
}

func TestRequestMismatch(t *testing.T) {
	base := intent(t, types.NetworkBase, "99", "9.9")
	sol := intent(t, types.NetworkSolana, "99", "9.9")

	tests := []struct {
		name   string
		uri    string
		intent types.PaymentIntent
	}{
		{"evm wrong value", "ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@8453?value=1", base},
		{"evm wrong chain", "ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@1?value=10000000000000000000", base},
		{"evm wrong recipient", "ethereum:0x000000000000000000000000000000000000dEaD@8453?value=10000000000000000000", base},
		{"evm as solana", "solana:z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD?amount=10.000000", base},
		{"solana wrong amount", "solana:z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD?amount=10", sol},
		{"solana wrong recipient", "solana:11111111111111111111111111111111?amount=10.000000", sol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verification.Request(tt.uri, tt.intent)
			require.Error(t, err)
			assert.Equal(t, types.ErrInvalidPaymentRequest, types.ErrorCode(err))
		})
	}

	// Addresses compare case-insensitively on EVM.
	lower := "ethereum:" + strings.ToLower("0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095") + "@8453?value=10000000000000000000"
	_, err := verification.Request(lower, base)
	assert.NoError(t, err)
}

func TestAdvisorySignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := utils.AddressFromPrivateKey(key).Hex()

	sig, err := utils.SignPersonalMessage("I confirm this boost payment.", key)
	require.NoError(t, err)

	assert.NoError(t, verification.AdvisorySignature("I confirm this boost payment.", sig, addr))
	assert.Error(t, verification.AdvisorySignature("something else", sig, addr))
	assert.Error(t, verification.AdvisorySignature("I confirm this boost payment.", sig, "0x000000000000000000000000000000000000dEaD"))
	assert.Error(t, verification.AdvisorySignature("I confirm this boost payment.", "0x00", addr))
	assert.Error(t, verification.AdvisorySignature("I confirm this boost payment.", sig, "nope"))
}

func TestSolanaTransfer(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()

	build := func(t *testing.T, insts ...solana.Instruction) *solana.Transaction {
		t.Helper()
		tx, err := solana.NewTransaction(insts, solana.Hash{}, solana.TransactionPayer(payer))
		require.NoError(t, err)
		return tx
	}

	memo := solana.NewInstruction(solana.MemoProgramID, solana.AccountMetaSlice{solana.Meta(payer).SIGNER()}, []byte("hello"))
	transfer := system.NewTransferInstruction(1_500, payer, recipient).Build()

	check, err := verification.SolanaTransfer(build(t, memo, transfer), recipient, 1_500)
	require.NoError(t, err)
	assert.Equal(t, payer, check.From)
	assert.Equal(t, recipient, check.To)
	assert.Equal(t, "hello", check.Memo)

	_, err = verification.SolanaTransfer(build(t, transfer), recipient, 1_501)
	assert.ErrorContains(t, err, "amount mismatch")

	_, err = verification.SolanaTransfer(build(t, memo), recipient, 1_500)
	assert.ErrorContains(t, err, "no SOL transfer")

	other := system.NewTransferInstruction(1_500, payer, solana.NewWallet().PublicKey()).Build()
	_, err = verification.SolanaTransfer(build(t, other), recipient, 1_500)
	assert.Error(t, err)

	_, err = verification.SolanaTransfer(nil, recipient, 1)
	assert.Error(t, err)
}
