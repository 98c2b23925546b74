package orders

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jerseystore/jerseystore-backend/internal/cart"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// Notifier is the outbound channel that relays a composed order to store
// staff. One call per successful checkout; retries belong to the caller.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// Order is the ephemeral result of a successful composition. Nothing is
// stored server-side; the display id is what the customer keeps.
type Order struct {
	ID       string          `json:"orderId"`
	Ref      uuid.UUID       `json:"-"`
	Items    []cart.LineItem `json:"items"`
	Total    int             `json:"total"`
	Status   string          `json:"status"`
	PlacedAt time.Time       `json:"placedAt"`
}

// Service composes and submits orders.
type Service interface {
	Compose(ctx context.Context, items []cart.LineItem, form OrderForm) (*Order, error)
}

type service struct {
	notifier Notifier
	logg     *logger.Logger
	location *time.Location
	now      func() time.Time
	shortID  func() string
}

// NewService builds the order composer backed by the provided notifier.
func NewService(notifier Notifier, logg *logger.Logger) (Service, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	location, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		// Bangladesh has a fixed UTC+6 offset with no DST.
		location = time.FixedZone("BST", 6*60*60)
	}
	return &service{
		notifier: notifier,
		logg:     logg,
		location: location,
		now:      time.Now,
		shortID:  randomShortID,
	}, nil
}

// randomShortID draws the human-friendly display id. Collisions are
// possible; there is no order store to collide against, so a memorable
// 4-digit id wins over a unique one.
func randomShortID() string {
	return fmt.Sprintf("JS-%d", 1000+rand.Intn(9000))
}

// Compose validates the form, renders the notification message, and hands
// it to the notifier. On failure the order is not placed and the caller's
// cart must stay intact so the customer can retry.
func (s *service) Compose(ctx context.Context, items []cart.LineItem, form OrderForm) (*Order, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	total := 0
	for _, item := range items {
		total += item.Product.PriceBDT * item.Quantity
	}

	order := &Order{
		ID:       s.shortID(),
		Ref:      uuid.New(),
		Items:    items,
		Total:    total,
		Status:   "pending",
		PlacedAt: s.now().In(s.location),
	}

	message := renderMessage(order, form)

	ctx = s.withOrderFields(ctx, order)
	if err := s.notifier.SendMessage(ctx, message); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "order notification failed", err)
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotificationFailed, err, "deliver order notification")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "order notification delivered")
	}
	return order, nil
}

func (s *service) withOrderFields(ctx context.Context, order *Order) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithFields(ctx, map[string]any{
		"order_id":  order.ID,
		"order_ref": order.Ref.String(),
		"total_bdt": order.Total,
	})
}
