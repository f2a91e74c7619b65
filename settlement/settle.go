// Package settlement routes a payment intent to the transaction builder of
// its chain family and runs the advisory acknowledgement step.
package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vitwit/boostpay/clients"
	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/metrics"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/verification"
	"github.com/vitwit/boostpay/wallet"
)

// Settler submits one payment.
type Settler interface {
	Submit(ctx context.Context, intent types.PaymentIntent, binding wallet.Binding) (*types.PaymentResult, error)
}

// Service submits payments across chain families.
type Service struct {
	evm    *clients.EVMClient
	solana *clients.SolanaClient

	note        string
	policy      types.AdvisoryPolicy
	maxAttempts int
	retryDelay  time.Duration

	logger  logger.Logger
	metrics metrics.Recorder
}

var _ Settler = (*Service)(nil)

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.logger = logger.OrNoop(l)
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = metrics.OrNoop(r)
	}
}

// WithAdvisoryNote sets the message the EVM wallet is asked to sign after
// a transfer. An empty note skips the step.
func WithAdvisoryNote(note string) Option {
	return func(s *Service) {
		s.note = note
	}
}

// WithAdvisoryPolicy sets how a declined advisory signature is handled.
// maxAttempts bounds the retry policy; 0 means no bound.
func WithAdvisoryPolicy(policy types.AdvisoryPolicy, maxAttempts int, delay time.Duration) Option {
	return func(s *Service) {
		s.policy = policy
		s.maxAttempts = maxAttempts
		s.retryDelay = delay
	}
}

// NewService returns a service using the given per-family clients. Either
// may be nil, in which case that family is unsupported.
func NewService(evm *clients.EVMClient, sol *clients.SolanaClient, opts ...Option) *Service {
	s := &Service{
		evm:     evm,
		solana:  sol,
		policy:  types.AdvisoryTerminal,
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supports reports whether a client is configured for network's family.
func (s *Service) Supports(network types.NetworkProfile) bool {
	switch {
	case network.IsEVM():
		return s.evm != nil
	case network.IsSolana():
		return s.solana != nil
	default:
		return false
	}
}

// Submit sends the transfer for intent through binding. Once the transfer
// is accepted the payment succeeds; the advisory outcome is recorded on the
// result and never turns it into a failure.
func (s *Service) Submit(ctx context.Context, intent types.PaymentIntent, binding wallet.Binding) (*types.PaymentResult, error) {
	network := intent.Network
	if !s.Supports(network) {
		return nil, &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("no client configured for network %s", network.ID),
		}
	}
	if binding.Family != network.ChainFamily {
		return nil, &types.BoostError{
			Code:    types.ErrWalletUnavailable,
			Message: fmt.Sprintf("network %s needs a %s wallet, got %s", network.ID, network.ChainFamily, binding.Family),
		}
	}

	switch {
	case network.IsEVM():
		return s.submitEVM(ctx, intent, binding)
	case network.IsSolana():
		return s.submitSolana(ctx, intent, binding)
	default:
		return nil, &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported network: %s", network.ID),
		}
	}
}

func (s *Service) submitEVM(ctx context.Context, intent types.PaymentIntent, binding wallet.Binding) (*types.PaymentResult, error) {
	sub, err := s.evm.Submit(ctx, intent, binding)
	if err != nil {
		return nil, err
	}

	result := newResult(intent, sub)
	if s.note == "" {
		return result, nil
	}

	sig, attempts, err := s.requestAdvisory(ctx, binding, sub.From)
	result.AdvisoryAttempts = attempts
	if err != nil {
		s.logger.Info("advisory note not signed", map[string]any{
			"network":  intent.Network.ID,
			"txId":     sub.TxID,
			"attempts": attempts,
			"error":    err,
		})
		return result, nil
	}

	result.AdvisorySigned = true
	result.AdvisorySignature = sig
	s.metrics.IncCounter(metrics.AdvisorySigned, map[string]string{"network": string(intent.Network.ID)})
	return result, nil
}

// requestAdvisory asks for the advisory signature, re-issuing the request
// after a decline only under the retry policy.
func (s *Service) requestAdvisory(ctx context.Context, binding wallet.Binding, signer string) (string, int, error) {
	var (
		sig      string
		attempts int
	)

	op := func() error {
		attempts++
		got, err := s.evm.RequestAdvisorySignature(ctx, binding, s.note)
		if err != nil {
			if types.ErrorCode(err) != types.ErrUserRejected {
				return backoff.Permanent(err)
			}
			s.metrics.IncCounter(metrics.AdvisoryDeclined, nil)
			if s.policy != types.AdvisoryRetry {
				return backoff.Permanent(err)
			}
			s.logger.Info("advisory signature declined, asking again", map[string]any{"attempt": attempts})
			return err
		}
		if err := verification.AdvisorySignature(s.note, got, signer); err != nil {
			return backoff.Permanent(err)
		}
		sig = got
		return nil
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(s.retryDelay)
	if s.maxAttempts > 0 {
		b = backoff.WithMaxRetries(b, uint64(s.maxAttempts-1))
	}
	err := backoff.Retry(op, backoff.WithContext(b, ctx))
	return sig, attempts, err
}

func (s *Service) submitSolana(ctx context.Context, intent types.PaymentIntent, binding wallet.Binding) (*types.PaymentResult, error) {
	sub, err := s.solana.Submit(ctx, intent, binding)
	if err != nil {
		return nil, err
	}

	result := newResult(intent, sub)
	result.AdvisorySigned = sub.MemoAttached
	return result, nil
}

func newResult(intent types.PaymentIntent, sub *clients.Submission) *types.PaymentResult {
	r := &types.PaymentResult{
		Network:      intent.Network.ID,
		ChainFamily:  intent.Network.ChainFamily,
		TxID:         sub.TxID,
		From:         sub.From,
		Recipient:    sub.Recipient,
		NativeAmount: sub.NativeAmount,
		SubmittedAt:  sub.SubmittedAt,
	}
	if sub.SmallestUnit != nil {
		r.SmallestUnit = sub.SmallestUnit.String()
	}
	return r
}
