package payment

import (
	"fmt"
	"time"

	"github.com/dreamzz-lol/gatekeeper/model"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Client wraps the Stripe SDK: webhook signature verification and checkout
// session lookups. Stripe is the authority on whether a session is paid.
type Client struct {
	webhookSecret string
}

func New(secretKey, webhookSecret string) *Client {
	stripe.Key = secretKey
	return &Client{webhookSecret: webhookSecret}
}

// ConstructEvent verifies the webhook signature and parses the event.
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
}

func (c *Client) GetSession(id string) (*stripe.CheckoutSession, error) {
	s, err := session.Get(id, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve checkout session: %v", model.UpstreamErr, err)
	}
	return s, nil
}

// AuthorizeSession checks that the session is paid and was created within
// the replay window. It returns the plan (derived from the pre-discount
// subtotal) and the customer email.
func (c *Client) AuthorizeSession(id string) (plan model.Plan, email string, err error) {
	s, err := c.GetSession(id)
	if err != nil {
		return "", "", err
	}
	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return "", "", fmt.Errorf("%w: session not paid", model.UnauthorizedErr)
	}
	if !WithinReplayWindow(time.Unix(s.Created, 0), time.Now()) {
		return "", "", fmt.Errorf("%w: session older than %v", model.ExpiredErr, model.SessionReplayWindow)
	}
	amount := s.AmountSubtotal
	if amount == 0 {
		amount = s.AmountTotal
	}
	if s.CustomerDetails != nil {
		email = s.CustomerDetails.Email
	}
	return model.PlanFromAmount(amount), email, nil
}

// WithinReplayWindow reports whether a session created at the given time
// may still be redeemed for its artifact.
func WithinReplayWindow(created, now time.Time) bool {
	return now.Sub(created) <= model.SessionReplayWindow
}
