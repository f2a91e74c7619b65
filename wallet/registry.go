package wallet

import (
	"fmt"
	"sync"

	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/types"
)

type EventKind int

const (
	EventBound EventKind = iota + 1
	EventUnbound
)

func (k EventKind) String() string {
	switch k {
	case EventBound:
		return "bound"
	case EventUnbound:
		return "unbound"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers whenever a binding changes.
type Event struct {
	Kind    EventKind
	Family  types.ChainFamily
	Binding Binding
}

// Registry holds at most one binding per chain family. The external
// connector drives it through Bind and Unbind; the engine observes it
// through Subscribe.
type Registry struct {
	logger logger.Logger

	mu       sync.RWMutex
	bindings map[types.ChainFamily]Binding
	subs     map[int]func(Event)
	nextSub  int
}

func NewRegistry(l logger.Logger) *Registry {
	return &Registry{
		logger:   logger.OrNoop(l),
		bindings: make(map[types.ChainFamily]Binding),
		subs:     make(map[int]func(Event)),
	}
}

// Bind installs b, replacing any binding of the same family.
func (r *Registry) Bind(b Binding) error {
	if b.Connector == nil {
		return fmt.Errorf("bind %s: nil connector", b.Family)
	}
	switch b.Family {
	case types.ChainEVM:
		if _, ok := b.EVM(); !ok {
			return fmt.Errorf("bind %s: connector does not implement EVMConnector", b.Family)
		}
	case types.ChainSolana:
		if _, ok := b.Solana(); !ok {
			return fmt.Errorf("bind %s: connector does not implement SolanaConnector", b.Family)
		}
	default:
		return &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported chain family %q", b.Family),
		}
	}

	r.mu.Lock()
	r.bindings[b.Family] = b
	r.mu.Unlock()

	r.logger.Info("wallet bound", map[string]any{"family": b.Family, "address": b.Address()})
	r.notify(Event{Kind: EventBound, Family: b.Family, Binding: b})
	return nil
}

// Unbind removes the binding of family, if any.
func (r *Registry) Unbind(family types.ChainFamily) {
	r.mu.Lock()
	b, ok := r.bindings[family]
	delete(r.bindings, family)
	r.mu.Unlock()

	if !ok {
		return
	}
	r.logger.Info("wallet unbound", map[string]any{"family": family, "address": b.Address()})
	r.notify(Event{Kind: EventUnbound, Family: family, Binding: b})
}

// Binding returns the current binding for family.
func (r *Registry) Binding(family types.ChainFamily) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[family]
	return b, ok
}

// Subscribe registers fn for binding changes and returns a function that
// removes it.
func (r *Registry) Subscribe(fn func(Event)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

func (r *Registry) notify(ev Event) {
	r.mu.RLock()
	fns := make([]func(Event), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
