package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/wallet"
)

// EVMTransfer is an unsigned native transfer for an EIP-1193 wallet.
type EVMTransfer struct {
	From         common.Address
	To           common.Address
	Value        *big.Int
	ChainID      uint64
	NativeAmount string
}

// TxParams returns the eth_sendTransaction parameter object. Value is hex
// encoded as the JSON-RPC quantity format requires.
func (t *EVMTransfer) TxParams() map[string]string {
	return map[string]string{
		"from":  t.From.Hex(),
		"to":    t.To.Hex(),
		"value": hexutil.EncodeBig(t.Value),
	}
}

// EVMClient submits native transfers through a bound EIP-1193 connector.
type EVMClient struct {
	base
}

var _ Submitter = (*EVMClient)(nil)

func NewEVMClient(opts ...Option) *EVMClient {
	c := &EVMClient{base: newBase()}
	for _, opt := range opts {
		opt(&c.base)
	}
	return c
}

func (c *EVMClient) Family() types.ChainFamily { return types.ChainEVM }

// BuildTransfer derives the transfer for intent, sent from the given
// address.
func (c *EVMClient) BuildTransfer(intent types.PaymentIntent, from string) (*EVMTransfer, error) {
	network := intent.Network
	if !network.IsEVM() {
		return nil, &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("network %s is not an EVM network", network.ID),
		}
	}
	if !common.IsHexAddress(from) {
		return nil, walletUnavailable(ReasonBadSender, types.ChainEVM)
	}
	if !common.IsHexAddress(network.RecipientAddress) {
		return nil, &types.BoostError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("%s: %q", ReasonBadRecipient, network.RecipientAddress),
		}
	}

	native := conversion.NativeAmount(intent)
	value, err := conversion.ToSmallestUnit(native, network.DecimalPlaces)
	if err != nil {
		return nil, err
	}
	if value.Sign() == 0 {
		return nil, types.NewError(types.ErrConversionFailed, ReasonZeroAmount, nil)
	}

	return &EVMTransfer{
		From:         common.HexToAddress(from),
		To:           common.HexToAddress(network.RecipientAddress),
		Value:        value,
		ChainID:      network.ChainID,
		NativeAmount: native,
	}, nil
}

// SwitchChain asks the connector to select chainID. Callers treat a failure
// as advisory.
func (c *EVMClient) SwitchChain(ctx context.Context, conn wallet.EVMConnector, chainID uint64) error {
	params := []any{map[string]string{"chainId": hexutil.EncodeUint64(chainID)}}
	if _, err := conn.Request(ctx, wallet.MethodSwitchChain, params); err != nil {
		return walletError("chain switch", err)
	}
	return nil
}

// Submit switches the connector to the intent's chain on a best-effort
// basis, then sends the transfer and returns its hash.
func (c *EVMClient) Submit(ctx context.Context, intent types.PaymentIntent, binding wallet.Binding) (sub *Submission, err error) {
	start := time.Now()
	defer func() { c.observe(start, types.ChainEVM, err) }()

	conn, ok := binding.EVM()
	if !ok {
		return nil, walletUnavailable(ReasonWrongFamily, types.ChainEVM)
	}

	transfer, err := c.BuildTransfer(intent, conn.Address())
	if err != nil {
		return nil, err
	}

	log := c.logger.With(map[string]any{
		"network": intent.Network.ID,
		"from":    transfer.From.Hex(),
	})

	if err := c.SwitchChain(ctx, conn, transfer.ChainID); err != nil {
		log.Warn("chain switch failed, sending anyway", map[string]any{
			"chainId": transfer.ChainID,
			"error":   err,
		})
	}

	raw, err := conn.Request(ctx, wallet.MethodSendTransaction, []any{transfer.TxParams()})
	if err != nil {
		err = walletError("transfer", err)
		log.Error("transfer not submitted", map[string]any{"error": err})
		return nil, err
	}

	hash, err := decodeString(raw)
	if err != nil || !isTxHash(hash) {
		err = submissionError(ReasonWalletResponse, fmt.Errorf("unexpected transaction hash %s", string(raw)))
		log.Error("transfer not submitted", map[string]any{"error": err})
		return nil, err
	}

	log.Info("transfer submitted", map[string]any{
		"txHash": hash,
		"value":  transfer.Value.String(),
	})

	return &Submission{
		TxID:         hash,
		From:         transfer.From.Hex(),
		Recipient:    transfer.To.Hex(),
		NativeAmount: transfer.NativeAmount,
		SmallestUnit: transfer.Value,
		SubmittedAt:  c.now(),
	}, nil
}

// RequestAdvisorySignature asks the wallet to personal_sign note and
// returns the 0x-prefixed signature.
func (c *EVMClient) RequestAdvisorySignature(ctx context.Context, binding wallet.Binding, note string) (string, error) {
	conn, ok := binding.EVM()
	if !ok {
		return "", walletUnavailable(ReasonWrongFamily, types.ChainEVM)
	}

	params := []any{hexutil.Encode([]byte(note)), conn.Address()}
	raw, err := conn.Request(ctx, wallet.MethodPersonalSign, params)
	if err != nil {
		return "", walletError("advisory signature", err)
	}

	sig, err := decodeString(raw)
	if err != nil {
		return "", submissionError(ReasonWalletResponse, err)
	}
	if _, err := hexutil.Decode(sig); err != nil {
		return "", submissionError(ReasonWalletResponse, fmt.Errorf("signature is not hex: %w", err))
	}
	return sig, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("decode wallet response: %w", err)
	}
	return s, nil
}

func isTxHash(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	_, err := hexutil.Decode(s)
	return err == nil
}
