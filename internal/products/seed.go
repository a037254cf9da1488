package product

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/zestraw/storefront-backend/pkg/logger"
	"github.com/zestraw/storefront-backend/pkg/types"
)

// defaultCatalog is the launch tableware range. Seeding is idempotent on
// slug, so redeploys never duplicate rows.
func defaultCatalog() []RawProduct {
	return []RawProduct{
		{Name: "Classic Rice Straw Dinner Plate", Category: "PLATES", Price: 24.00, BulkPrice: 18.50, Image: "plates", Size: "10-inch", Badge: "Best Seller", EcoScore: 94, Stock: 120},
		{Name: "Deep Harvest Cereal Bowl", Category: "BOWLS", Price: 18.00, BulkPrice: 14.00, Image: "bowls", Size: "16oz", EcoScore: 88, Stock: 200},
		{Name: "Rectangle Serving Tray XL", Category: "TRAYS", Price: 32.00, BulkPrice: 26.00, Image: "tray", Size: "14x10 inch", EcoScore: 91, Stock: 80},
		{Name: "Eco-Party Combo Pack (50pcs)", Category: "COMBO PACKS", Price: 85.00, BulkPrice: 72.00, Image: "combo", Badge: "Best Value", EcoScore: 96, Stock: 40},
		{Name: "Square Tapas Plate Set", Category: "PLATES", Price: 22.00, BulkPrice: 18.00, Image: "plates", Size: "6-inch", EcoScore: 90, Stock: 150},
		{Name: "Minimalist Soup Bowl", Category: "BOWLS", Price: 15.00, BulkPrice: 11.50, Image: "bowls", Size: "12oz", EcoScore: 87, Stock: 180},
		{Name: "Biodegradable Cutlery Set", Category: "CUTLERY", Price: 18.00, BulkPrice: 14.00, Image: "cutlery", EcoScore: 93, Stock: 300},
		{Name: "Compostable Straws - Natural Finish", Category: "CUTLERY", Price: 12.00, BulkPrice: 9.00, Image: "straws", EcoScore: 95, Stock: 500},
		{
			Name: "Rice Straw Dinner Plates (Set of 25)", Category: "PLATES", Price: 29.00, BulkPrice: 24.00,
			Image: "plates", Size: "10-inch", Badge: "Sustainable Choice", EcoScore: 94, Stock: 90,
			SizesAvailable: []RawSizeOption{{Size: "25", Price: 29.00}, {Size: "50", Price: 55.00}, {Size: "100", Price: 104.00}},
			Sustainability: &types.SustainabilityMetrics{CarbonFootprint: 0.4, PlasticUse: 0, PlasticAvoided: 1.8},
		},
	}
}

// SeedDefaults loads the launch catalog into the repository, skipping rows
// whose slug is already present. One bad row does not block the rest; all
// failures are reported together.
func SeedDefaults(ctx context.Context, repo ProductRepository, logg *logger.Logger) error {
	var created int
	var errs error
	for _, raw := range defaultCatalog() {
		model, err := raw.Normalize()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("normalizing seed product %q: %w", raw.Name, err))
			continue
		}
		_, inserted, err := repo.EnsureBySlug(ctx, model)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seeding product %q: %w", model.Slug, err))
			continue
		}
		if inserted {
			created++
		}
	}
	if errs != nil {
		return errs
	}
	logg.Info(logg.WithField(ctx, "created", created), "catalog seed complete")
	return nil
}
