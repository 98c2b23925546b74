package orders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jerseystore/jerseystore-backend/internal/cart"
	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
)

type stubNotifier struct {
	err      error
	messages []string
}

func (s *stubNotifier) SendMessage(_ context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, text)
	return nil
}

func validForm() OrderForm {
	return OrderForm{
		Name:    "Rahim Uddin",
		Phone:   "01712345678",
		Address: "House 12, Road 5, Dhanmondi",
		Area:    "Dhaka",
	}
}

func jerseyItems() []cart.LineItem {
	product := &catalog.Product{
		ID:       "arg-home-24",
		TitleEN:  "Argentina Home Jersey",
		TitleBN:  "আর্জেন্টিনা হোম জার্সি",
		Slug:     "argentina-home-jersey",
		PriceBDT: 1799,
		Sizes:    []string{"M"},
		Stock:    map[string]int{"M": 5},
	}
	return []cart.LineItem{{ID: product.ID, Product: product, Size: "M", Quantity: 2}}
}

func newTestService(t *testing.T, notifier Notifier) *service {
	t.Helper()
	svc, err := NewService(notifier, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	typed := svc.(*service)
	typed.now = func() time.Time {
		return time.Date(2026, 8, 29, 8, 3, 5, 0, time.UTC)
	}
	typed.shortID = func() string { return "JS-4321" }
	return typed
}

func TestComposeSuccess(t *testing.T) {
	notifier := &stubNotifier{}
	svc := newTestService(t, notifier)

	order, err := svc.Compose(context.Background(), jerseyItems(), validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "JS-4321" {
		t.Fatalf("unexpected order id %q", order.ID)
	}
	if order.Total != 3598 {
		t.Fatalf("expected total 3598, got %d", order.Total)
	}
	if order.Status != "pending" {
		t.Fatalf("unexpected status %q", order.Status)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.messages))
	}
	message := notifier.messages[0]
	for _, want := range []string{
		"📦 Order ID: #JS-4321",
		"👤 Customer: Rahim Uddin",
		"2x",
		"৳3598",
		"🚚 Area: Dhaka",
		"📝 Notes: No notes",
		// 08:03:05 UTC renders as 14:03:05 in Dhaka.
		"📆 Time: 29/08/2026, 14:03:05",
	} {
		if !strings.Contains(message, want) {
			t.Fatalf("message missing %q:\n%s", want, message)
		}
	}
}

func TestComposeGatewayFailure(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("connection refused")}
	svc := newTestService(t, notifier)

	items := jerseyItems()
	order, err := svc.Compose(context.Background(), items, validForm())
	if order != nil {
		t.Fatal("failed composition must not return an order")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotificationFailed {
		t.Fatalf("expected NOTIFICATION_FAILED, got %v", err)
	}
	// The caller's snapshot is untouched; clearing is the caller's job and
	// only ever happens after success.
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("items must be left intact, got %+v", items)
	}
}

func TestComposePreservesTypedNotifierError(t *testing.T) {
	notifier := &stubNotifier{err: pkgerrors.New(pkgerrors.CodeNotificationFailed, "status 400: chat not found")}
	svc := newTestService(t, notifier)

	_, err := svc.Compose(context.Background(), jerseyItems(), validForm())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "status 400: chat not found" {
		t.Fatalf("expected typed error passed through, got %v", err)
	}
}

func TestComposeEmptyCartRejected(t *testing.T) {
	svc := newTestService(t, &stubNotifier{})

	_, err := svc.Compose(context.Background(), nil, validForm())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestComposeInvalidFormBlocksNotification(t *testing.T) {
	notifier := &stubNotifier{}
	svc := newTestService(t, notifier)

	form := validForm()
	form.Phone = "12345"
	_, err := svc.Compose(context.Background(), jerseyItems(), form)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(notifier.messages) != 0 {
		t.Fatal("invalid form must not reach the notifier")
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OrderForm)
		wantKey string
	}{
		{name: "short name", mutate: func(f *OrderForm) { f.Name = "Ra" }, wantKey: "name"},
		{name: "bad phone", mutate: func(f *OrderForm) { f.Phone = "01012345678" }, wantKey: "phone"},
		{name: "short address", mutate: func(f *OrderForm) { f.Address = "Dhaka" }, wantKey: "address"},
		{name: "missing area", mutate: func(f *OrderForm) { f.Area = "" }, wantKey: "area"},
		{name: "unknown area", mutate: func(f *OrderForm) { f.Area = "Atlantis" }, wantKey: "area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := ValidateForm(form)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			details, ok := typed.Details().(map[string]string)
			if !ok {
				t.Fatalf("expected field details, got %T", typed.Details())
			}
			if _, present := details[tt.wantKey]; !present {
				t.Fatalf("expected detail for %q, got %v", tt.wantKey, details)
			}
		})
	}
}

func TestValidateFormAcceptsPrefixedAndSpacedPhones(t *testing.T) {
	for _, phone := range []string{"01712345678", "+8801712345678", "1712345678", "017 1234 5678"} {
		form := validForm()
		form.Phone = phone
		if err := ValidateForm(form); err != nil {
			t.Fatalf("expected %q to validate, got %v", phone, err)
		}
	}
}

func TestRandomShortIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := randomShortID()
		if !strings.HasPrefix(id, "JS-") || len(id) != 7 {
			t.Fatalf("unexpected short id %q", id)
		}
	}
}
