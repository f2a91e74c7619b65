package clients

import (
	"fmt"

	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/wallet"
)

// Failure reasons carried in BoostError messages.
const (
	ReasonWrongFamily     = "binding_wrong_family"
	ReasonMissingConnect  = "binding_missing_connector"
	ReasonBadSender       = "invalid_sender_address"
	ReasonBadRecipient    = "invalid_recipient_address"
	ReasonAmountOverflow  = "amount_exceeds_native_range"
	ReasonZeroAmount      = "amount_is_zero"
	ReasonWalletResponse  = "invalid_wallet_response"
	ReasonSignatureFailed = "signed_transaction_invalid"
	ReasonBroadcastFailed = "broadcast_failed"
)

func walletUnavailable(reason string, family types.ChainFamily) error {
	return &types.BoostError{
		Code:    types.ErrWalletUnavailable,
		Message: fmt.Sprintf("%s: no usable %s wallet", reason, family),
	}
}

// walletError classifies an error returned by a connector during step.
func walletError(step string, err error) error {
	if wallet.IsUserRejected(err) {
		return types.NewError(types.ErrUserRejected, step+" declined in wallet", err)
	}
	return types.NewError(types.ErrNetworkSubmissionFailed, step+" failed", err)
}

func submissionError(reason string, err error) error {
	return types.NewError(types.ErrNetworkSubmissionFailed, reason, err)
}
