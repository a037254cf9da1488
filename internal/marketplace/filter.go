package marketplace

import (
	"sort"
	"strings"

	"github.com/zestraw/storefront-backend/pkg/pagination"
)

// ItemsPerPage is the fixed marketplace page size.
const ItemsPerPage = 6

// SortKey selects the listing order.
type SortKey string

const (
	SortLatest    SortKey = "latest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// IsValid reports whether the key is one of the supported sort orders.
func (k SortKey) IsValid() bool {
	switch k {
	case SortLatest, SortPriceLow, SortPriceHigh, SortRating:
		return true
	}
	return false
}

// FilterState captures every browse control at once. The zero value plus
// DefaultFilterState is the reset state.
type FilterState struct {
	Search       string
	Locations    []string
	MinCapacity  int64
	VerifiedOnly bool
	SortBy       SortKey
	Page         int
}

// DefaultFilterState is the state after a filter reset.
func DefaultFilterState() FilterState {
	return FilterState{SortBy: SortLatest, Page: 1}
}

// Result is one page of the filtered listing.
type Result struct {
	Suppliers  []Supplier `json:"suppliers"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// Apply runs the browse pipeline over the listing: search, location filter,
// capacity floor, verified filter, sort, then pagination. The input slice is
// never mutated so repeated calls with equal state return equal results.
func Apply(listing []Supplier, state FilterState) Result {
	result := make([]Supplier, len(listing))
	copy(result, listing)

	if q := strings.ToLower(strings.TrimSpace(state.Search)); q != "" {
		result = keep(result, func(s Supplier) bool {
			return strings.Contains(strings.ToLower(s.Name), q) ||
				strings.Contains(strings.ToLower(s.Category), q) ||
				strings.Contains(strings.ToLower(s.Location), q)
		})
	}

	if len(state.Locations) > 0 {
		result = keep(result, func(s Supplier) bool {
			for _, loc := range state.Locations {
				needle := strings.ToLower(loc)
				if strings.Contains(strings.ToLower(s.State), needle) ||
					strings.Contains(strings.ToLower(s.Location), needle) {
					return true
				}
			}
			return false
		})
	}

	if state.MinCapacity > 0 {
		result = keep(result, func(s Supplier) bool {
			return s.MOQ >= state.MinCapacity
		})
	}

	// VerifiedOnly=false applies no restriction.
	if state.VerifiedOnly {
		result = keep(result, func(s Supplier) bool {
			return s.Verified
		})
	}

	switch state.SortBy {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceMinCents < result[j].PriceMinCents
		})
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceMinCents > result[j].PriceMinCents
		})
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].SustainabilityRating > result[j].SustainabilityRating
		})
	default:
		// SortLatest keeps join order.
	}

	totalPages := pagination.TotalPages(len(result), ItemsPerPage)
	page := pagination.ClampPage(state.Page, totalPages)
	start, end := pagination.Bounds(page, ItemsPerPage, len(result))

	return Result{
		Suppliers:  result[start:end],
		TotalCount: len(result),
		Page:       page,
		TotalPages: totalPages,
	}
}

func keep(in []Supplier, pred func(Supplier) bool) []Supplier {
	out := in[:0]
	for _, s := range in {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}
