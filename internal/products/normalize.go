package product

import (
	"regexp"
	"strings"

	"github.com/zestraw/storefront-backend/pkg/db/models"
	dbtypes "github.com/zestraw/storefront-backend/pkg/db/types"
	"github.com/zestraw/storefront-backend/pkg/enums"
	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
	"github.com/zestraw/storefront-backend/pkg/types"
)

// RawProduct accepts both catalog shapes seen in import payloads: the
// database shape (productName/productPrice/sizesAvailable) and the legacy
// static shape (name/price/image). Normalization prefers database fields.
type RawProduct struct {
	ProductName string  `json:"productName"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	// Prices arrive as decimal currency units, not cents.
	ProductPrice   float64                      `json:"productPrice"`
	Price          float64                      `json:"price"`
	BulkPrice      float64                      `json:"bulkPrice"`
	SizesAvailable []RawSizeOption              `json:"sizesAvailable"`
	Images         []string                     `json:"images"`
	Image          string                       `json:"image"`
	Size           string                       `json:"size"`
	Badge          string                       `json:"badge"`
	EcoScore       int64                        `json:"ecoScore"`
	Stock          int64                        `json:"stock"`
	Sustainability *types.SustainabilityMetrics `json:"sustainabilityMetrics"`
}

// RawSizeOption tolerates numeric or string sizes.
type RawSizeOption struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

const fallbackName = "Unnamed Product"

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize collapses the dual shapes into the stored model. Database fields
// win over legacy ones; a missing name falls back to a placeholder and a
// missing image list falls back to the legacy single image.
func (r RawProduct) Normalize() (*models.Product, error) {
	name := strings.TrimSpace(r.ProductName)
	if name == "" {
		name = strings.TrimSpace(r.Name)
	}
	if name == "" {
		name = fallbackName
	}

	price := r.ProductPrice
	if price == 0 {
		price = r.Price
	}
	if price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative")
	}

	category, err := enums.ParseProductCategory(r.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	images := r.Images
	if len(images) == 0 && r.Image != "" {
		images = []string{r.Image}
	}

	model := &models.Product{
		Slug:           Slugify(name),
		Name:           name,
		Category:       category,
		Description:    strings.TrimSpace(r.Description),
		PriceCents:     toCents(price),
		BulkPriceCents: toCents(r.BulkPrice),
		SizeLabel:      strings.TrimSpace(r.Size),
		Badge:          strings.TrimSpace(r.Badge),
		EcoScore:       r.EcoScore,
		Images:         dbtypes.StringList(images),
		Stock:          r.Stock,
		IsActive:       true,
	}
	for _, opt := range r.SizesAvailable {
		if opt.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "size tier price must be non-negative")
		}
		model.SizeTiers = append(model.SizeTiers, dbtypes.SizeTier{
			Size:       strings.TrimSpace(opt.Size),
			PriceCents: toCents(opt.Price),
		})
	}
	if r.Sustainability != nil {
		model.CarbonFootprint = r.Sustainability.CarbonFootprint
		model.PlasticUse = r.Sustainability.PlasticUse
		model.PlasticAvoided = r.Sustainability.PlasticAvoided
	}
	return model, nil
}

// Slugify derives the URL identity from a product name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// toCents converts decimal currency units to integer cents, rounding to the
// nearest cent.
func toCents(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}
