// Package flow drives one payment from network selection to a submitted
// transfer, reacting to wallet bindings as the connector reports them.
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/payreq"
	"github.com/vitwit/boostpay/settlement"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/wallet"
)

// ErrClosed is returned by operations on a closed flow.
var ErrClosed = errors.New("payment flow closed")

// PriceSource returns the current fiat price of a network.
type PriceSource interface {
	Price(id types.NetworkID) (decimal.Decimal, error)
}

// Flow is the payment state machine. It is safe for concurrent use; at
// most one send attempt is outstanding at any time.
type Flow struct {
	networks types.NetworkTable
	prices   PriceSource
	settler  settlement.Settler
	wallets  *wallet.Registry
	request  payreq.Options
	logger   logger.Logger
	now      func() time.Time

	unbind func()

	mu         sync.Mutex
	phase      Phase
	network    types.NetworkProfile
	hasNetwork bool
	fiat       decimal.Decimal
	intent     *types.PaymentIntent
	lastErr    error
	result     *types.PaymentResult
	attempt    uint64
	sending    bool
	closed     bool
	subs       map[int]func(State)
	nextSub    int
}

type Option func(*Flow)

func WithLogger(l logger.Logger) Option {
	return func(f *Flow) {
		f.logger = logger.OrNoop(l)
	}
}

// WithRequestOptions sets the label, message and note of generated
// payment-request strings.
func WithRequestOptions(opts payreq.Options) Option {
	return func(f *Flow) {
		f.request = opts
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		if now != nil {
			f.now = now
		}
	}
}

// New returns an Idle flow observing wallets.
func New(networks types.NetworkTable, prices PriceSource, settler settlement.Settler, wallets *wallet.Registry, opts ...Option) *Flow {
	f := &Flow{
		networks: networks,
		prices:   prices,
		settler:  settler,
		wallets:  wallets,
		logger:   logger.NoopLogger{},
		now:      time.Now,
		phase:    Idle,
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.unbind = wallets.Subscribe(f.onWalletEvent)
	return f
}

// Subscribe registers fn to receive every state change and returns a
// function that removes it. fn runs on the goroutine that caused the
// change.
func (f *Flow) Subscribe(fn func(State)) func() {
	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// State returns the current snapshot.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

// Network returns the selected network.
func (f *Flow) Network() (types.NetworkProfile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.network, f.hasNetwork
}

// RecipientAddress is the address to pay manually on the selected network.
func (f *Flow) RecipientAddress() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasNetwork {
		return ""
	}
	return f.network.RecipientAddress
}

// SelectNetwork changes the selected network. An attempt already in flight
// keeps its own intent; the new selection applies to the next attempt.
func (f *Flow) SelectNetwork(id types.NetworkID) error {
	profile, ok := f.networks.Lookup(id)
	if !ok {
		return &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unknown network %q", id),
		}
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.network = profile
	f.hasNetwork = true
	f.invalidateLocked()
	states := f.transitionLocked(f.restingPhaseLocked())
	f.mu.Unlock()

	f.logger.Debug("network selected", map[string]any{"network": id})
	f.publish(states)
	return nil
}

// SetFiatAmount sets the fiat price of the purchase. A non-positive amount
// is stored as zero and reported as a conversion warning.
func (f *Flow) SetFiatAmount(fiat decimal.Decimal) error {
	var err error
	if !fiat.IsPositive() {
		err = types.NewError(types.ErrConversionFailed, fmt.Sprintf("fiat amount must be positive, got %s", fiat), nil)
		fiat = decimal.Zero
	}
	return f.setFiat(fiat, err)
}

// SetFiatString parses a user-facing amount such as "$3,999".
func (f *Flow) SetFiatString(s string) error {
	fiat, err := conversion.ParseFiat(s)
	return f.setFiat(fiat, err)
}

func (f *Flow) setFiat(fiat decimal.Decimal, convErr error) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.fiat = fiat
	f.invalidateLocked()
	if convErr != nil {
		f.lastErr = convErr
	}
	states := f.transitionLocked(f.restingPhaseLocked())
	f.mu.Unlock()

	if convErr != nil {
		f.logger.Warn("fiat amount not usable", map[string]any{"error": convErr})
	}
	f.publish(states)
	return convErr
}

// Intent returns the current payment intent, deriving it from the latest
// price when none is cached.
func (f *Flow) Intent() (types.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.intent != nil {
		return *f.intent, nil
	}
	intent, err := f.deriveIntentLocked()
	if err != nil {
		return types.PaymentIntent{}, err
	}
	f.intent = &intent
	return intent, nil
}

// PaymentRequest encodes the current intent as a scannable string. The
// amount is the same one Send would submit for this intent.
func (f *Flow) PaymentRequest() (string, error) {
	intent, err := f.Intent()
	if err != nil {
		return "", err
	}
	return payreq.Encode(intent.Network, conversion.NativeAmount(intent), f.request)
}

// Send submits the payment through the bound wallet and blocks until the
// attempt resolves. It is only accepted from Ready.
func (f *Flow) Send(ctx context.Context) (*types.PaymentResult, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	if err := f.checkSendableLocked(); err != nil {
		f.mu.Unlock()
		return nil, err
	}

	binding, ok := f.wallets.Binding(f.network.ChainFamily)
	if !ok {
		states := f.transitionLocked(WalletRequired)
		f.mu.Unlock()
		f.publish(states)
		return nil, walletRequired(f.network)
	}

	// Each attempt prices the intent afresh.
	intent, err := f.deriveIntentLocked()
	if err != nil {
		f.lastErr = err
		states := f.transitionLocked(f.phase)
		f.mu.Unlock()
		f.publish(states)
		return nil, err
	}
	f.intent = &intent

	f.attempt++
	id := f.attempt
	f.sending = true
	f.lastErr = nil
	f.result = nil
	states := f.transitionLocked(Sending)
	f.mu.Unlock()
	f.publish(states)

	log := f.logger.With(map[string]any{"attempt": id, "network": intent.Network.ID})
	log.Info("payment sending", map[string]any{"nativeAmount": conversion.NativeAmount(intent)})

	res, err := f.settler.Submit(ctx, intent, binding)

	f.mu.Lock()
	if id != f.attempt || f.closed {
		// Superseded; the caller still gets the outcome.
		f.sending = false
		f.mu.Unlock()
		return res, err
	}
	f.sending = false
	if err != nil {
		f.lastErr = err
		states = f.transitionLocked(Failed)
		states = append(states, f.transitionLocked(f.restingPhaseLocked())...)
	} else {
		f.result = res
		states = f.transitionLocked(Success)
	}
	f.mu.Unlock()

	if err != nil {
		log.Warn("payment failed", map[string]any{"error": err, "code": types.ErrorCode(err)})
	} else {
		log.Info("payment sent", map[string]any{"txId": res.TxID, "advisorySigned": res.AdvisorySigned})
	}
	f.publish(states)
	return res, err
}

// Reset clears the last outcome and returns to the resting phase for the
// current selection.
func (f *Flow) Reset() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.sending {
		f.mu.Unlock()
		return inProgress()
	}
	f.lastErr = nil
	f.result = nil
	f.intent = nil
	states := f.transitionLocked(f.restingPhaseLocked())
	f.mu.Unlock()

	f.publish(states)
	return nil
}

// Close stops observing wallets and drops subscribers. An attempt still in
// flight completes but no longer updates the flow.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.attempt++
	f.subs = make(map[int]func(State))
	f.mu.Unlock()

	if f.unbind != nil {
		f.unbind()
	}
}

func (f *Flow) onWalletEvent(ev wallet.Event) {
	f.mu.Lock()
	if f.closed || !f.hasNetwork || ev.Family != f.network.ChainFamily {
		f.mu.Unlock()
		return
	}
	switch f.phase {
	case Sending, Success:
		f.mu.Unlock()
		return
	}
	states := f.transitionLocked(f.restingPhaseLocked())
	f.mu.Unlock()

	f.logger.Debug("wallet binding changed", map[string]any{"family": ev.Family, "event": ev.Kind.String()})
	f.publish(states)
}

func (f *Flow) checkSendableLocked() error {
	switch f.phase {
	case Ready:
		return nil
	case Sending:
		return inProgress()
	case WalletRequired:
		return walletRequired(f.network)
	case Success:
		return &types.BoostError{Code: types.ErrPaymentCompleted, Message: "payment already completed; reset to pay again"}
	default:
		return &types.BoostError{Code: types.ErrUnsupportedNetwork, Message: "no network selected"}
	}
}

func (f *Flow) deriveIntentLocked() (types.PaymentIntent, error) {
	if !f.hasNetwork {
		return types.PaymentIntent{}, &types.BoostError{Code: types.ErrUnsupportedNetwork, Message: "no network selected"}
	}
	if !f.fiat.IsPositive() {
		return types.PaymentIntent{}, types.NewError(types.ErrConversionFailed, "no fiat amount set", nil)
	}

	price, err := f.prices.Price(f.network.ID)
	if err != nil {
		f.logger.Warn("price unavailable, using fallback", map[string]any{"network": f.network.ID, "error": err})
		price = decimal.Zero
	}
	intent := conversion.NewIntent(f.fiat, f.network, price, f.now())

	if _, err := conversion.SmallestUnit(intent); err != nil {
		return types.PaymentIntent{}, err
	}
	if native := decimal.RequireFromString(conversion.NativeAmount(intent)); !native.IsPositive() {
		return types.PaymentIntent{}, types.NewError(types.ErrConversionFailed,
			fmt.Sprintf("%s converts to zero %s", f.fiat, f.network.NativeSymbol), nil)
	}
	return intent, nil
}

// invalidateLocked drops the cached intent and any settled outcome. An
// in-flight attempt is unaffected.
func (f *Flow) invalidateLocked() {
	f.intent = nil
	if !f.sending {
		f.result = nil
		f.lastErr = nil
	}
}

// restingPhaseLocked is the phase the flow settles in when nothing is in
// flight.
func (f *Flow) restingPhaseLocked() Phase {
	switch {
	case f.sending:
		return Sending
	case !f.hasNetwork:
		return Idle
	}
	if _, ok := f.wallets.Binding(f.network.ChainFamily); !ok {
		return WalletRequired
	}
	return Ready
}

// transitionLocked moves to next and returns the states subscribers must
// see. Unchanged phases still publish so amount and error updates reach
// the display.
func (f *Flow) transitionLocked(next Phase) []State {
	if next != f.phase {
		f.logger.Debug("phase change", map[string]any{"from": f.phase.String(), "to": next.String()})
	}
	f.phase = next
	return []State{f.stateLocked()}
}

func (f *Flow) stateLocked() State {
	s := State{
		Phase:     f.phase,
		Network:   f.network,
		AttemptID: f.attempt,
		LastError: f.lastErr,
		Notice:    types.Notice(f.lastErr),
		Result:    f.result,
		CanSend:   f.phase == Ready && f.fiat.IsPositive(),
	}
	if f.intent != nil {
		s.NativeAmount = conversion.NativeAmount(*f.intent)
	}
	return s
}

func (f *Flow) publish(states []State) {
	if len(states) == 0 {
		return
	}
	f.mu.Lock()
	fns := make([]func(State), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, s := range states {
		for _, fn := range fns {
			fn(s)
		}
	}
}

func walletRequired(network types.NetworkProfile) error {
	return &types.BoostError{
		Code:    types.ErrWalletUnavailable,
		Message: fmt.Sprintf("connect a %s wallet to pay on %s", network.ChainFamily, network.DisplayName),
	}
}

func inProgress() error {
	return &types.BoostError{Code: types.ErrSendInProgress, Message: "a payment is already being sent"}
}
