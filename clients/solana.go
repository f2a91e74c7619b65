package clients

import (
	"context"
	"fmt"
	"time"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/verification"
	"github.com/vitwit/boostpay/wallet"
)

// SolanaLedger is the part of the Solana JSON-RPC API the client needs.
// *rpc.Client satisfies it.
type SolanaLedger interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendRawTransaction(ctx context.Context, rawTx []byte) (solana.Signature, error)
}

var _ SolanaLedger = (*rpc.Client)(nil)

// SolanaTransfer is an unsigned transfer, optionally preceded by a memo
// instruction carrying the advisory note.
type SolanaTransfer struct {
	Tx           *solana.Transaction
	From         solana.PublicKey
	To           solana.PublicKey
	Lamports     uint64
	NativeAmount string
	Memo         string
}

// SolanaClient builds transfers, has the connector sign them and
// broadcasts the signed bytes itself.
type SolanaClient struct {
	base
	ledger SolanaLedger
	memo   string
}

var _ Submitter = (*SolanaClient)(nil)

// NewSolanaClient returns a client broadcasting through ledger. A non-empty
// memo is attached to every transfer.
func NewSolanaClient(ledger SolanaLedger, memo string, opts ...Option) *SolanaClient {
	c := &SolanaClient{base: newBase(), ledger: ledger, memo: memo}
	for _, opt := range opts {
		opt(&c.base)
	}
	return c
}

// NewSolanaRPCClient is NewSolanaClient against a JSON-RPC endpoint.
func NewSolanaRPCClient(rpcURL, memo string, opts ...Option) *SolanaClient {
	return NewSolanaClient(rpc.New(rpcURL), memo, opts...)
}

func (c *SolanaClient) Family() types.ChainFamily { return types.ChainSolana }

// BuildTransfer assembles the unsigned transaction for intent. A missing
// blockhash is tolerated; the wallet may fill in its own.
func (c *SolanaClient) BuildTransfer(ctx context.Context, intent types.PaymentIntent, from string) (*SolanaTransfer, error) {
	network := intent.Network
	if !network.IsSolana() {
		return nil, &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("network %s is not a Solana network", network.ID),
		}
	}

	sender, err := solana.PublicKeyFromBase58(from)
	if err != nil {
		return nil, walletUnavailable(ReasonBadSender, types.ChainSolana)
	}
	recipient, err := solana.PublicKeyFromBase58(network.RecipientAddress)
	if err != nil {
		return nil, types.NewError(types.ErrConfigError, ReasonBadRecipient, err)
	}

	native := conversion.NativeAmount(intent)
	amount, err := conversion.ToSmallestUnit(native, network.DecimalPlaces)
	if err != nil {
		return nil, err
	}
	if !amount.IsUint64() {
		return nil, types.NewError(types.ErrConversionFailed, ReasonAmountOverflow, nil)
	}
	lamports := amount.Uint64()
	if lamports == 0 {
		return nil, types.NewError(types.ErrConversionFailed, ReasonZeroAmount, nil)
	}

	instructions := make([]solana.Instruction, 0, 2)
	if c.memo != "" {
		instructions = append(instructions, solana.NewInstruction(
			solana.MemoProgramID,
			solana.AccountMetaSlice{solana.Meta(sender).SIGNER()},
			[]byte(c.memo),
		))
	}
	instructions = append(instructions, system.NewTransferInstruction(lamports, sender, recipient).Build())

	var blockhash solana.Hash
	if c.ledger != nil {
		latest, err := c.ledger.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		switch {
		case err != nil:
			c.logger.Warn("blockhash unavailable, leaving it to the wallet", map[string]any{"error": err})
		case latest == nil || latest.Value == nil:
			c.logger.Warn("blockhash unavailable, leaving it to the wallet", map[string]any{"error": "empty response"})
		default:
			blockhash = latest.Value.Blockhash
		}
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(sender))
	if err != nil {
		return nil, types.NewError(types.ErrNetworkSubmissionFailed, "build transaction", err)
	}
	// Reserve the signature slots so the wire format is complete.
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	return &SolanaTransfer{
		Tx:           tx,
		From:         sender,
		To:           recipient,
		Lamports:     lamports,
		NativeAmount: native,
		Memo:         c.memo,
	}, nil
}

// Submit builds the transfer, has the connector sign it, checks the signed
// transaction still pays the recipient and broadcasts it.
func (c *SolanaClient) Submit(ctx context.Context, intent types.PaymentIntent, binding wallet.Binding) (sub *Submission, err error) {
	start := time.Now()
	defer func() { c.observe(start, types.ChainSolana, err) }()

	conn, ok := binding.Solana()
	if !ok {
		return nil, walletUnavailable(ReasonWrongFamily, types.ChainSolana)
	}
	if c.ledger == nil {
		return nil, types.NewError(types.ErrConfigError, "no Solana ledger configured", nil)
	}

	transfer, err := c.BuildTransfer(ctx, intent, conn.Address())
	if err != nil {
		return nil, err
	}

	log := c.logger.With(map[string]any{
		"network": intent.Network.ID,
		"from":    transfer.From.String(),
	})

	unsigned, err := transfer.Tx.MarshalBinary()
	if err != nil {
		return nil, types.NewError(types.ErrNetworkSubmissionFailed, "serialize transaction", err)
	}

	signed, err := conn.SignTransaction(ctx, unsigned)
	if err != nil {
		err = walletError("transaction signature", err)
		log.Error("transfer not signed", map[string]any{"error": err})
		return nil, err
	}

	signedTx, err := solana.TransactionFromDecoder(binary.NewBinDecoder(signed))
	if err != nil {
		return nil, submissionError(ReasonWalletResponse, err)
	}
	if err := signedTx.VerifySignatures(); err != nil {
		return nil, submissionError(ReasonSignatureFailed, err)
	}
	if _, err := verification.SolanaTransfer(signedTx, transfer.To, transfer.Lamports); err != nil {
		return nil, submissionError(ReasonSignatureFailed, err)
	}

	sig, err := c.ledger.SendRawTransaction(ctx, signed)
	if err != nil {
		err = submissionError(ReasonBroadcastFailed, err)
		log.Error("transfer not broadcast", map[string]any{"error": err})
		return nil, err
	}

	log.Info("transfer submitted", map[string]any{
		"signature": sig.String(),
		"lamports":  transfer.Lamports,
	})

	return &Submission{
		TxID:         sig.String(),
		From:         transfer.From.String(),
		Recipient:    transfer.To.String(),
		NativeAmount: transfer.NativeAmount,
		SmallestUnit: amountOf(transfer.Lamports),
		MemoAttached: transfer.Memo != "",
		SubmittedAt:  c.now(),
	}, nil
}
