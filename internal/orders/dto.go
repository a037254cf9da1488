package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/zestraw/storefront-backend/internal/cart"
	"github.com/zestraw/storefront-backend/pkg/db/models"
	"github.com/zestraw/storefront-backend/pkg/types"
)

// CreateOrderInput carries everything checkout sends when placing an order.
// Items are the cart snapshot at the moment of checkout; prices are trusted
// only as descriptors, the totals are recomputed here.
type CreateOrderInput struct {
	Items           []cart.LineItem `json:"items"`
	ShippingAddress types.Address   `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// OrderItemDTO is one snapshotted line on a placed order.
type OrderItemDTO struct {
	ProductID uuid.UUID   `json:"productId"`
	Name      string      `json:"name"`
	Variant   string      `json:"size,omitempty"`
	Image     string      `json:"image,omitempty"`
	UnitPrice types.Money `json:"unitPrice"`
	Quantity  int64       `json:"quantity"`
	LineTotal types.Money `json:"lineTotal"`
}

// OrderDTO is the API shape of a placed order.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	Status          string         `json:"status"`
	PaymentMethod   string         `json:"paymentMethod"`
	Subtotal        types.Money    `json:"subtotal"`
	Shipping        types.Money    `json:"shipping"`
	Total           types.Money    `json:"total"`
	ShippingAddress types.Address  `json:"shippingAddress"`
	Items           []OrderItemDTO `json:"items"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// ToDTO converts the stored order into its API shape.
func ToDTO(order *models.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		items = append(items, OrderItemDTO{
			ProductID: line.ProductID,
			Name:      line.ProductName,
			Variant:   line.Variant,
			Image:     line.Image,
			UnitPrice: types.NewMoney(line.UnitPriceCents),
			Quantity:  line.Quantity,
			LineTotal: types.NewMoney(line.UnitPriceCents * line.Quantity),
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		Status:          order.Status.String(),
		PaymentMethod:   order.PaymentMethod.String(),
		Subtotal:        types.NewMoney(order.SubtotalCents),
		Shipping:        types.NewMoney(order.ShippingCents),
		Total:           types.NewMoney(order.TotalCents),
		ShippingAddress: order.ShippingAddress,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
