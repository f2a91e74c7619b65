// Package verification checks engine outputs against the intent they were
// derived from: payment-request strings, signed Solana transfers and
// advisory signatures.
package verification

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/payreq"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/utils"
)

// TransferCheck describes the transfer found in a Solana transaction.
type TransferCheck struct {
	From     solana.PublicKey
	To       solana.PublicKey
	Lamports uint64
	Memo     string
}

// SolanaTransfer finds the system transfer paying recipient in tx and
// checks it moves exactly lamports.
func SolanaTransfer(tx *solana.Transaction, recipient solana.PublicKey, lamports uint64) (*TransferCheck, error) {
	if tx == nil {
		return nil, fmt.Errorf("nil transaction")
	}

	var memo string
	for i, inst := range tx.Message.Instructions {
		prog, err := tx.Message.ResolveProgramIDIndex(inst.ProgramIDIndex)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}

		switch {
		case prog.Equals(solana.MemoProgramID):
			memo = string(inst.Data)

		case prog.Equals(solana.SystemProgramID):
			accounts, err := inst.ResolveInstructionAccounts(&tx.Message)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			decoded, err := system.DecodeInstruction(accounts, inst.Data)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: decode system instruction: %w", i, err)
			}
			transfer, ok := decoded.Impl.(*system.Transfer)
			if !ok || len(accounts) < 2 || !accounts[1].PublicKey.Equals(recipient) {
				continue
			}
			if transfer.Lamports == nil || *transfer.Lamports != lamports {
				return nil, fmt.Errorf("transfer amount mismatch: want %d lamports", lamports)
			}
			return &TransferCheck{
				From:     accounts[0].PublicKey,
				To:       accounts[1].PublicKey,
				Lamports: lamports,
				Memo:     memo,
			}, nil
		}
	}

	return nil, fmt.Errorf("no SOL transfer to %s found", recipient)
}

// Request decodes uri and checks it carries the recipient and amount
// derived from intent.
func Request(uri string, intent types.PaymentIntent) (*payreq.Request, error) {
	req, err := payreq.Decode(uri)
	if err != nil {
		return nil, err
	}

	network := intent.Network
	native := conversion.NativeAmount(intent)

	switch network.ChainFamily {
	case types.ChainSolana:
		if req.Scheme != payreq.SchemeSolana {
			return nil, mismatch("scheme %q, want %q", req.Scheme, payreq.SchemeSolana)
		}
		if req.Recipient != network.RecipientAddress {
			return nil, mismatch("recipient %s, want %s", req.Recipient, network.RecipientAddress)
		}
		if req.Amount != native {
			return nil, mismatch("amount %s, want %s", req.Amount, native)
		}

	case types.ChainEVM:
		if req.Scheme != payreq.SchemeEthereum {
			return nil, mismatch("scheme %q, want %q", req.Scheme, payreq.SchemeEthereum)
		}
		if !strings.EqualFold(req.Recipient, network.RecipientAddress) {
			return nil, mismatch("recipient %s, want %s", req.Recipient, network.RecipientAddress)
		}
		if req.ChainID != network.ChainID {
			return nil, mismatch("chain id %d, want %d", req.ChainID, network.ChainID)
		}
		want, err := conversion.ToSmallestUnit(native, network.DecimalPlaces)
		if err != nil {
			return nil, err
		}
		if req.Value == nil || req.Value.Cmp(want) != 0 {
			return nil, mismatch("value %v, want %s", req.Value, want)
		}

	default:
		return nil, &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported chain family %q", network.ChainFamily),
		}
	}

	return req, nil
}

// AdvisorySignature checks that signature is a personal_sign of note by
// address.
func AdvisorySignature(note, signature, address string) error {
	if !utils.ValidateAddress(address) {
		return fmt.Errorf("invalid signer address %q", address)
	}
	ok, err := utils.VerifyPersonalMessage(note, signature, address)
	if err != nil {
		return fmt.Errorf("recover advisory signer: %w", err)
	}
	if !ok {
		return fmt.Errorf("advisory note not signed by %s", address)
	}
	return nil
}

func mismatch(format string, args ...any) error {
	return &types.BoostError{
		Code:    types.ErrInvalidPaymentRequest,
		Message: "payment request mismatch: " + fmt.Sprintf(format, args...),
	}
}
