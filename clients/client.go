// Package clients builds native-asset transfers per chain family and drives
// them through the bound wallet connector.
package clients

import (
	"context"
	"math/big"
	"time"

	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/metrics"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/wallet"
)

// Submitter sends the transfer described by an intent through a binding of
// its own chain family.
type Submitter interface {
	Family() types.ChainFamily
	Submit(ctx context.Context, intent types.PaymentIntent, binding wallet.Binding) (*Submission, error)
}

// Submission is the outcome of a transfer accepted by the chain.
type Submission struct {
	TxID         string
	From         string
	Recipient    string
	NativeAmount string
	SmallestUnit *big.Int

	// MemoAttached is set when the advisory note travelled inside the
	// transaction itself.
	MemoAttached bool

	SubmittedAt time.Time
}

type base struct {
	logger  logger.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

func newBase() base {
	return base{
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
		now:     time.Now,
	}
}

// Option configures the shared parts of a client.
type Option func(*base)

func WithLogger(l logger.Logger) Option {
	return func(b *base) {
		b.logger = logger.OrNoop(l)
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(b *base) {
		b.metrics = metrics.OrNoop(r)
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

func (b *base) observe(start time.Time, family types.ChainFamily, err error) {
	labels := map[string]string{"family": string(family)}
	b.metrics.ObserveLatency(metrics.OpSubmit, time.Since(start), labels)
	if err != nil {
		b.metrics.IncCounter(metrics.PaymentFailed, map[string]string{
			"family": string(family),
			"code":   types.ErrorCode(err),
		})
		return
	}
	b.metrics.IncCounter(metrics.PaymentSent, labels)
}

func amountOf(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}
