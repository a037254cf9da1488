package enums

import (
	"fmt"
	"strings"
)

// ProductCategory is the tableware catalog grouping.
type ProductCategory string

const (
	ProductCategoryPlates     ProductCategory = "PLATES"
	ProductCategoryBowls      ProductCategory = "BOWLS"
	ProductCategoryTrays      ProductCategory = "TRAYS"
	ProductCategoryCutlery    ProductCategory = "CUTLERY"
	ProductCategoryComboPacks ProductCategory = "COMBO PACKS"
)

var validProductCategories = []ProductCategory{
	ProductCategoryPlates,
	ProductCategoryBowls,
	ProductCategoryTrays,
	ProductCategoryCutlery,
	ProductCategoryComboPacks,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
// Matching is case-insensitive because the legacy client sent mixed case.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
