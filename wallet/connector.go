// Package wallet describes the capabilities the engine consumes from an
// external wallet connector and tracks which connector is bound per chain
// family.
package wallet

import (
	"context"
	"encoding/json"

	"github.com/vitwit/boostpay/types"
)

// EIP-1193 request methods used by the engine.
const (
	MethodSwitchChain     = "wallet_switchEthereumChain"
	MethodSendTransaction = "eth_sendTransaction"
	MethodPersonalSign    = "personal_sign"
)

// Connector is the minimal capability every bound wallet exposes.
type Connector interface {
	Address() string
}

// EVMConnector is an EIP-1193 provider. Request blocks until the wallet
// answers; a declined prompt is reported as a ProviderError with code 4001
// or an error wrapping ErrUserRejected.
type EVMConnector interface {
	Connector
	Request(ctx context.Context, method string, params []any) (json.RawMessage, error)
}

// SolanaConnector signs serialized transactions. It never broadcasts; the
// advisory note travels inside the transaction as a memo.
type SolanaConnector interface {
	Connector
	SignTransaction(ctx context.Context, tx []byte) ([]byte, error)
}

// Binding associates a connector with the chain family it serves. The
// connector is owned by the external collaborator and is never copied
// beyond the current flow run.
type Binding struct {
	Family    types.ChainFamily
	Connector Connector
}

func (b Binding) Address() string {
	if b.Connector == nil {
		return ""
	}
	return b.Connector.Address()
}

func (b Binding) EVM() (EVMConnector, bool) {
	if b.Family != types.ChainEVM {
		return nil, false
	}
	c, ok := b.Connector.(EVMConnector)
	return c, ok
}

func (b Binding) Solana() (SolanaConnector, bool) {
	if b.Family != types.ChainSolana {
		return nil, false
	}
	c, ok := b.Connector.(SolanaConnector)
	return c, ok
}
