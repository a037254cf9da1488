package types

// SustainabilityMetrics is the display triple carried on products and cart
// line items. Values are non-negative; the zero value is the documented
// default when a product ships without metrics.
type SustainabilityMetrics struct {
	CarbonFootprint float64 `json:"carbon_footprint"`
	PlasticUse      float64 `json:"plastic_use"`
	PlasticAvoided  float64 `json:"plastic_avoided"`
}
