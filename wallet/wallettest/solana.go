package wallettest

import (
	"context"
	"fmt"
	"sync"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/vitwit/boostpay/wallet"
)

// SolanaWallet signs transactions with a local ed25519 key.
type SolanaWallet struct {
	key solana.PrivateKey

	mu     sync.Mutex
	signed int

	// Reject makes SignTransaction fail as a user decline.
	Reject bool
	// Tamper, when set, may rewrite the transaction before it is signed.
	Tamper func(tx *solana.Transaction)
}

var _ wallet.SolanaConnector = (*SolanaWallet)(nil)

func NewSolanaWallet() (*SolanaWallet, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}
	return &SolanaWallet{key: key}, nil
}

func (w *SolanaWallet) Address() string { return w.key.PublicKey().String() }

// Signed returns how many transactions the wallet has signed.
func (w *SolanaWallet) Signed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.signed
}

func (w *SolanaWallet) SignTransaction(_ context.Context, raw []byte) ([]byte, error) {
	if w.Reject {
		return nil, fmt.Errorf("phantom: %w", wallet.ErrUserRejected)
	}
	tx, err := solana.TransactionFromDecoder(binary.NewBinDecoder(raw))
	if err != nil {
		return nil, err
	}
	if w.Tamper != nil {
		w.Tamper(tx)
	}

	pub := w.key.PublicKey()
	if _, err := tx.PartialSign(func(k solana.PublicKey) *solana.PrivateKey {
		if k.Equals(pub) {
			return &w.key
		}
		return nil
	}); err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.signed++
	w.mu.Unlock()
	return tx.MarshalBinary()
}

// Ledger records raw transactions instead of broadcasting them.
type Ledger struct {
	mu   sync.Mutex
	sent []*solana.Transaction

	Blockhash    solana.Hash
	BlockhashErr error
	SendErr      error
}

func (l *Ledger) GetLatestBlockhash(context.Context, rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	if l.BlockhashErr != nil {
		return nil, l.BlockhashErr
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: l.Blockhash},
	}, nil
}

func (l *Ledger) SendRawTransaction(_ context.Context, raw []byte) (solana.Signature, error) {
	if l.SendErr != nil {
		return solana.Signature{}, l.SendErr
	}
	tx, err := solana.TransactionFromDecoder(binary.NewBinDecoder(raw))
	if err != nil {
		return solana.Signature{}, err
	}
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, fmt.Errorf("transaction has no signatures")
	}

	l.mu.Lock()
	l.sent = append(l.sent, tx)
	l.mu.Unlock()
	return tx.Signatures[0], nil
}

// Sent returns the broadcast transactions.
func (l *Ledger) Sent() []*solana.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*solana.Transaction(nil), l.sent...)
}
