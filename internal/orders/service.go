package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zestraw/storefront-backend/pkg/db/models"
	"github.com/zestraw/storefront-backend/pkg/enums"
	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
	"github.com/zestraw/storefront-backend/pkg/logger"
)

// Eco-shipping is free on every order.
const shippingCents = 0

// Service places orders from cart snapshots and lists past orders.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*OrderDTO, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// ServiceParams bundles the order service dependencies.
type ServiceParams struct {
	Repo   orderRepository
	Logger *logger.Logger
}

type service struct {
	repo orderRepository
	logg *logger.Logger
}

// NewService constructs the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := input.ShippingAddress.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	lines := make([]models.OrderLineItem, 0, len(input.Items))
	var subtotal int64
	for _, item := range input.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid product id %q", item.ProductID))
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid quantity for %q", item.Name))
		}
		if item.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid price for %q", item.Name))
		}
		lines = append(lines, models.OrderLineItem{
			ProductID:      productID,
			ProductName:    item.Name,
			Variant:        item.Variant,
			Image:          item.Image,
			UnitPriceCents: item.PriceCents,
			Quantity:       item.Quantity,
		})
		subtotal += item.PriceCents * item.Quantity
	}

	order := &models.Order{
		UserID:          userID,
		Status:          enums.OrderStatusPlaced,
		PaymentMethod:   method,
		SubtotalCents:   subtotal,
		ShippingCents:   shippingCents,
		TotalCents:      subtotal + shippingCents,
		ShippingAddress: input.ShippingAddress,
		LineItems:       lines,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id":    order.ID.String(),
		"total_cents": order.TotalCents,
		"line_count":  len(order.LineItems),
	})
	s.logg.Info(ctx, "order placed")

	return ToDTO(order), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user")
	}
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	dtos := make([]*OrderDTO, 0, len(list))
	for idx := range list {
		dtos = append(dtos, ToDTO(&list[idx]))
	}
	return dtos, nil
}
