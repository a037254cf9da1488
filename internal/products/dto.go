package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/zestraw/storefront-backend/pkg/db/models"
	dbtypes "github.com/zestraw/storefront-backend/pkg/db/types"
	"github.com/zestraw/storefront-backend/pkg/types"
)

// SizeOptionDTO is one purchasable pack size.
type SizeOptionDTO struct {
	Size  string      `json:"size"`
	Price types.Money `json:"price"`
}

// ProductDTO is the catalog payload returned to the storefront.
type ProductDTO struct {
	ID             uuid.UUID                   `json:"id"`
	Slug           string                      `json:"slug"`
	ProductName    string                      `json:"productName"`
	Category       string                      `json:"category"`
	Description    string                      `json:"description,omitempty"`
	ProductPrice   types.Money                 `json:"productPrice"`
	BulkPrice      *types.Money                `json:"bulkPrice,omitempty"`
	SizesAvailable []SizeOptionDTO             `json:"sizesAvailable,omitempty"`
	Images         []string                    `json:"images"`
	SizeLabel      string                      `json:"size,omitempty"`
	Badge          string                      `json:"badge,omitempty"`
	EcoScore       int64                       `json:"ecoScore"`
	Sustainability types.SustainabilityMetrics `json:"sustainabilityMetrics"`
	Stock          int64                       `json:"stock"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

// ToDTO maps the stored model onto the storefront payload.
func ToDTO(m *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:           m.ID,
		Slug:         m.Slug,
		ProductName:  m.Name,
		Category:     m.Category.String(),
		Description:  m.Description,
		ProductPrice: types.NewMoney(m.PriceCents),
		Images:       imageList(m.Images),
		SizeLabel:    m.SizeLabel,
		Badge:        m.Badge,
		EcoScore:     m.EcoScore,
		Sustainability: types.SustainabilityMetrics{
			CarbonFootprint: m.CarbonFootprint,
			PlasticUse:      m.PlasticUse,
			PlasticAvoided:  m.PlasticAvoided,
		},
		Stock:     m.Stock,
		CreatedAt: m.CreatedAt,
	}
	if m.BulkPriceCents > 0 {
		bulk := types.NewMoney(m.BulkPriceCents)
		dto.BulkPrice = &bulk
	}
	for _, tier := range m.SizeTiers {
		dto.SizesAvailable = append(dto.SizesAvailable, SizeOptionDTO{
			Size:  tier.Size,
			Price: types.NewMoney(tier.PriceCents),
		})
	}
	return dto
}

func imageList(images dbtypes.StringList) []string {
	if len(images) == 0 {
		return []string{}
	}
	return []string(images)
}
