package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/zestraw/storefront-backend/internal/cart"
	"github.com/zestraw/storefront-backend/pkg/db/models"
	"github.com/zestraw/storefront-backend/pkg/enums"
	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
	"github.com/zestraw/storefront-backend/pkg/logger"
	"github.com/zestraw/storefront-backend/pkg/types"
)

type stubOrderRepo struct {
	orders    []*models.Order
	createErr error
}

func (r *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	order.ID = uuid.New()
	for idx := range order.LineItems {
		order.LineItems[idx].ID = uuid.New()
		order.LineItems[idx].OrderID = order.ID
	}
	// Prepend so ListByUser returns newest first like the real query.
	r.orders = append([]*models.Order{order}, r.orders...)
	return nil
}

func (r *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var list []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, *order)
		}
	}
	return list, nil
}

func newOrderService(t *testing.T, repo *stubOrderRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func shippingAddress() types.Address {
	return types.Address{
		Line1:      "14 Canal Road",
		City:       "Ludhiana",
		State:      "Punjab",
		PostalCode: "141001",
		Country:    "IN",
	}
}

func checkoutItems() []cart.LineItem {
	return []cart.LineItem{
		{ProductID: uuid.NewString(), Name: "Rice Straw Dinner Plate", PriceCents: 2400, Quantity: 2, Variant: "10 inch"},
		{ProductID: uuid.NewString(), Name: "Rice Straw Bowl Set", PriceCents: 1850, Quantity: 1},
	}
}

func TestCreateComputesTotalsServerSide(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	svc := newOrderService(t, repo)
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, CreateOrderInput{
		Items:           checkoutItems(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   "cod",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.Status != enums.OrderStatusPlaced.String() {
		t.Fatalf("expected placed status, got %q", dto.Status)
	}
	if dto.Subtotal.Cents != 2*2400+1850 {
		t.Fatalf("unexpected subtotal %d", dto.Subtotal.Cents)
	}
	if dto.Shipping.Cents != 0 {
		t.Fatalf("expected free shipping, got %d", dto.Shipping.Cents)
	}
	if dto.Total.Cents != dto.Subtotal.Cents {
		t.Fatalf("expected total %d, got %d", dto.Subtotal.Cents, dto.Total.Cents)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(dto.Items))
	}
	if dto.Items[0].LineTotal.Cents != 4800 {
		t.Fatalf("unexpected line total %d", dto.Items[0].LineTotal.Cents)
	}
	if len(repo.orders) != 1 || repo.orders[0].UserID != userID {
		t.Fatal("expected order persisted for user")
	}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc := newOrderService(t, &stubOrderRepo{})
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{
			name:  "empty cart",
			input: CreateOrderInput{ShippingAddress: shippingAddress(), PaymentMethod: "cod"},
		},
		{
			name:  "missing address",
			input: CreateOrderInput{Items: checkoutItems(), PaymentMethod: "cod"},
		},
		{
			name:  "unknown payment method",
			input: CreateOrderInput{Items: checkoutItems(), ShippingAddress: shippingAddress(), PaymentMethod: "barter"},
		},
		{
			name: "bad product id",
			input: CreateOrderInput{
				Items:           []cart.LineItem{{ProductID: "not-a-uuid", Name: "Plate", PriceCents: 100, Quantity: 1}},
				ShippingAddress: shippingAddress(),
				PaymentMethod:   "upi",
			},
		},
		{
			name: "zero quantity",
			input: CreateOrderInput{
				Items:           []cart.LineItem{{ProductID: uuid.NewString(), Name: "Plate", PriceCents: 100, Quantity: 0}},
				ShippingAddress: shippingAddress(),
				PaymentMethod:   "upi",
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Create(ctx, userID, tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestCreateRepoFailure(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{createErr: fmt.Errorf("connection reset")}
	svc := newOrderService(t, repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderInput{
		Items:           checkoutItems(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   "card",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal code, got %v", err)
	}
}

func TestListMineScopedToUser(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	svc := newOrderService(t, repo)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	for _, userID := range []uuid.UUID{alice, bob, alice} {
		if _, err := svc.Create(ctx, userID, CreateOrderInput{
			Items:           checkoutItems(),
			ShippingAddress: shippingAddress(),
			PaymentMethod:   "cod",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mine, err := svc.ListMine(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected two orders for alice, got %d", len(mine))
	}
	for _, order := range mine {
		if len(order.Items) != 2 {
			t.Fatalf("expected line items loaded, got %d", len(order.Items))
		}
	}
}
