package flow

import (
	"github.com/vitwit/boostpay/types"
)

// Phase is the step the payment flow is in.
type Phase int

const (
	Idle Phase = iota
	WalletRequired
	Ready
	Sending
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case WalletRequired:
		return "wallet_required"
	case Ready:
		return "ready"
	case Sending:
		return "sending"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the flow for display.
type State struct {
	Phase   Phase
	Network types.NetworkProfile

	// NativeAmount is the amount of the current intent, empty until one
	// has been derived.
	NativeAmount string

	// CanSend mirrors whether the send control should be enabled.
	CanSend bool

	// AttemptID identifies the most recent send attempt.
	AttemptID uint64

	LastError error
	Notice    string
	Result    *types.PaymentResult
}
