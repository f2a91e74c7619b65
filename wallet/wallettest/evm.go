// Package wallettest provides in-memory wallet connectors backed by real
// keys, for use in tests.
package wallettest

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vitwit/boostpay/utils"
	"github.com/vitwit/boostpay/wallet"
)

// SentTx is an eth_sendTransaction request accepted by an EVMWallet.
type SentTx struct {
	ChainID uint64
	From    common.Address
	To      common.Address
	Value   *big.Int
	Hash    string
}

// EVMWallet is an EIP-1193 connector with a local secp256k1 key.
type EVMWallet struct {
	key     *ecdsa.PrivateKey
	address common.Address

	mu      sync.Mutex
	chainID uint64
	methods []string
	sent    []SentTx
	nonce   uint64

	// RejectSwitch makes wallet_switchEthereumChain fail with 4902.
	RejectSwitch bool
	// RejectSend makes eth_sendTransaction fail with 4001.
	RejectSend bool
	// SendErr is returned by eth_sendTransaction when set.
	SendErr error
	// DeclineSignatures is the number of personal_sign requests declined
	// before one is signed. Negative declines all of them.
	DeclineSignatures int
	// Gate, when set, blocks eth_sendTransaction until it is closed.
	Gate chan struct{}
	// Entered, when set, receives a value as eth_sendTransaction starts.
	Entered chan struct{}
}

var _ wallet.EVMConnector = (*EVMWallet)(nil)

func NewEVMWallet() (*EVMWallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &EVMWallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

func (w *EVMWallet) Address() string { return w.address.Hex() }

// ChainID returns the chain the wallet is currently switched to.
func (w *EVMWallet) ChainID() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chainID
}

// Methods returns the request methods received so far, in order.
func (w *EVMWallet) Methods() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.methods...)
}

// Sent returns the accepted transfers.
func (w *EVMWallet) Sent() []SentTx {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]SentTx(nil), w.sent...)
}

func (w *EVMWallet) Request(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	w.mu.Lock()
	w.methods = append(w.methods, method)
	w.mu.Unlock()

	switch method {
	case wallet.MethodSwitchChain:
		return w.switchChain(params)
	case wallet.MethodSendTransaction:
		return w.sendTransaction(ctx, params)
	case wallet.MethodPersonalSign:
		return w.personalSign(params)
	default:
		return nil, &wallet.ProviderError{Code: wallet.CodeUnsupportedMethod, Message: method}
	}
}

func (w *EVMWallet) switchChain(params []any) (json.RawMessage, error) {
	if w.RejectSwitch {
		return nil, &wallet.ProviderError{Code: wallet.CodeUnrecognizedChain, Message: "unrecognized chain"}
	}
	arg, ok := firstParam(params).(map[string]string)
	if !ok {
		return nil, fmt.Errorf("switch chain: unexpected params %v", params)
	}
	id, err := hexutil.DecodeUint64(arg["chainId"])
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.chainID = id
	w.mu.Unlock()
	return json.RawMessage("null"), nil
}

func (w *EVMWallet) sendTransaction(ctx context.Context, params []any) (json.RawMessage, error) {
	if w.Entered != nil {
		w.Entered <- struct{}{}
	}
	if w.Gate != nil {
		select {
		case <-w.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if w.RejectSend {
		return nil, &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "User rejected the request."}
	}
	if w.SendErr != nil {
		return nil, w.SendErr
	}

	arg, ok := firstParam(params).(map[string]string)
	if !ok {
		return nil, fmt.Errorf("send transaction: unexpected params %v", params)
	}
	value, err := hexutil.DecodeBig(arg["value"])
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.nonce++
	tx := SentTx{
		ChainID: w.chainID,
		From:    common.HexToAddress(arg["from"]),
		To:      common.HexToAddress(arg["to"]),
		Value:   value,
	}
	tx.Hash = crypto.Keccak256Hash(
		tx.From.Bytes(), tx.To.Bytes(), value.Bytes(), new(big.Int).SetUint64(w.nonce).Bytes(),
	).Hex()
	w.sent = append(w.sent, tx)
	return json.Marshal(tx.Hash)
}

func (w *EVMWallet) personalSign(params []any) (json.RawMessage, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("personal_sign: want 2 params, got %d", len(params))
	}
	msgHex, _ := params[0].(string)
	msg, err := hexutil.Decode(msgHex)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	decline := w.DeclineSignatures != 0
	if w.DeclineSignatures > 0 {
		w.DeclineSignatures--
	}
	w.mu.Unlock()
	if decline {
		return nil, &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "User denied message signature."}
	}

	sig, err := utils.SignPersonalMessage(string(msg), w.key)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sig)
}

func firstParam(params []any) any {
	if len(params) == 0 {
		return nil
	}
	return params[0]
}
