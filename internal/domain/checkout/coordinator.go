// internal/domain/checkout/coordinator.go
package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/artmart-checkout/internal/domain/cart"
	"github.com/your-org/artmart-checkout/internal/domain/shipping"
)

// State is the lifecycle state of a checkout attempt
type State string

const (
	StateIdle                        State = "idle"
	StateSubmitting                  State = "submitting"
	StateAwaitingPaymentConfirmation State = "awaiting_payment_confirmation"
	StateSucceeded                   State = "succeeded"
	StateFailed                      State = "failed"
)

// IsTerminal reports whether no further transition can follow
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}

// FailureCategory distinguishes why an attempt failed. The shopper
// always sees the same uniform message regardless of category.
type FailureCategory string

const (
	FailureOrderRejected   FailureCategory = "order_rejected"
	FailurePaymentDeclined FailureCategory = "payment_declined"
)

// User-visible messages. These are fixed: the shopper never sees
// gateway-specific error text.
const (
	MessageProcessing = "Processing payment..."
	MessageSuccess    = "Your payment was completed successfully. Thank you for your purchase!"
	MessageFailure    = "An error occurred during payment. Please try again."
)

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to check out")
	ErrUnknownDestination = errors.New("shipping destination is not available")
	ErrAttemptInFlight    = errors.New("a checkout attempt is already in flight")
	ErrAlreadySucceeded   = errors.New("checkout already completed")
	ErrCoordinatorClosed  = errors.New("checkout coordinator is closed")
)

// Transition is one observable state change of the coordinator.
// Terminal transitions carry the checkout session (when one was issued)
// so the caller can archive the settled attempt; card data never
// appears here.
type Transition struct {
	State        State
	Message      string
	Failure      FailureCategory
	PaymentError string
	Session      *CheckoutSession
}

// OrderBackend creates checkout sessions with the order backend
type OrderBackend interface {
	CreateCheckout(ctx context.Context, customer Customer) (*CheckoutSession, error)
}

// PaymentGateway confirms a payment intent with the payment gateway.
// A decline is reported in the result, not as an error; errors are
// transport-level failures.
type PaymentGateway interface {
	ConfirmPaymentIntent(ctx context.Context, session *CheckoutSession, card CreditCard) (*PaymentResult, error)
}

// Coordinator owns the checkout payment orchestration: it validates
// preconditions, calls the order backend, then the payment gateway,
// strictly in that order, and reconciles the outcomes into a single
// state machine. It holds no state across attempts beyond the machine
// position itself.
type Coordinator struct {
	backend OrderBackend
	gateway PaymentGateway
	log     *logrus.Entry

	mu          sync.Mutex
	state       State
	attempt     uint64
	closed      bool
	transitions chan Transition
}

// NewCoordinator creates a coordinator in the Idle state
func NewCoordinator(backend OrderBackend, gateway PaymentGateway, log *logrus.Entry) *Coordinator {
	return &Coordinator{
		backend:     backend,
		gateway:     gateway,
		log:         log,
		state:       StateIdle,
		transitions: make(chan Transition, 8),
	}
}

// Transitions returns the channel on which state changes are delivered.
// The channel is closed when the coordinator is closed.
func (c *Coordinator) Transitions() <-chan Transition {
	return c.transitions
}

// State returns the current state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit starts one checkout attempt. It rejects re-entrant submission
// while an attempt is outstanding and validates the preconditions: the
// cart must be non-empty and the destination must be a member of the
// known set. A failed attempt may be resubmitted; a succeeded one may not.
func (c *Coordinator) Submit(ctx context.Context, items []cart.CartItem, destinations *shipping.Set, customer Customer, card CreditCard) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCoordinatorClosed
	}
	switch c.state {
	case StateSubmitting, StateAwaitingPaymentConfirmation:
		return ErrAttemptInFlight
	case StateSucceeded:
		return ErrAlreadySucceeded
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}
	if !destinations.Contains(customer.ShippingAddress.Country) {
		return ErrUnknownDestination
	}

	c.attempt++
	c.state = StateSubmitting
	c.emit(Transition{State: StateSubmitting, Message: MessageProcessing})

	go c.run(ctx, c.attempt, customer, card)
	return nil
}

// Close tears the coordinator down. Completions of requests still in
// flight are discarded; no transition is applied after Close returns.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.transitions)
}

func (c *Coordinator) run(ctx context.Context, gen uint64, customer Customer, card CreditCard) {
	session, err := c.backend.CreateCheckout(ctx, customer)
	if err != nil {
		c.log.WithField("attempt", gen).WithError(err).Warn("order backend rejected checkout")
		c.apply(gen, Transition{
			State:   StateFailed,
			Message: MessageFailure,
			Failure: FailureOrderRejected,
		})
		return
	}

	if !c.apply(gen, Transition{State: StateAwaitingPaymentConfirmation, Message: MessageProcessing}) {
		return
	}

	// The session, including its client secret, is threaded to the
	// gateway exactly as the backend returned it.
	result, err := c.gateway.ConfirmPaymentIntent(ctx, session, card)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"attempt":           gen,
			"payment_intent_id": session.PaymentIntentID,
		}).WithError(err).Warn("payment confirmation failed")
		c.apply(gen, Transition{
			State:   StateFailed,
			Message: MessageFailure,
			Failure: FailurePaymentDeclined,
			Session: session,
		})
		return
	}

	if result.Status == PaymentSucceeded {
		c.apply(gen, Transition{State: StateSucceeded, Message: MessageSuccess, Session: session})
		return
	}

	c.log.WithFields(logrus.Fields{
		"attempt":           gen,
		"payment_intent_id": session.PaymentIntentID,
		"payment_error":     result.PaymentError,
	}).Warn("payment declined")
	c.apply(gen, Transition{
		State:        StateFailed,
		Message:      MessageFailure,
		Failure:      FailurePaymentDeclined,
		PaymentError: result.PaymentError,
		Session:      session,
	})
}

// apply commits a transition unless the coordinator was closed or the
// attempt has been superseded. Late completions are no-ops.
func (c *Coordinator) apply(gen uint64, t Transition) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.attempt {
		return false
	}
	c.state = t.State
	c.emit(t)
	return true
}

// emit delivers a transition without blocking; a consumer that has
// fallen this far behind loses intermediate updates, never the lock.
func (c *Coordinator) emit(t Transition) {
	select {
	case c.transitions <- t:
	default:
	}
}
