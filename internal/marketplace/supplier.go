package marketplace

// Supplier is one industrial buyer of rice-straw residue listed on the
// sourcing network.
type Supplier struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Category             string `json:"category"`
	Verified             bool   `json:"verified"`
	Location             string `json:"location"`
	State                string `json:"state"`
	MOQ                  int64  `json:"moq"`
	Unit                 string `json:"unit"`
	PriceMinCents        int64  `json:"priceMinCents"`
	PriceMaxCents        int64  `json:"priceMaxCents"`
	PriceUnit            string `json:"priceUnit"`
	SustainabilityRating int64  `json:"sustainabilityRating"`
}

// DefaultSuppliers returns the seeded listing in join order. "Recently
// joined" sorting relies on this order being stable.
func DefaultSuppliers() []Supplier {
	return []Supplier{
		{ID: 1, Name: "GreenPulse Bio-Energy", Category: "Power Plant", Verified: true, Location: "Ludhiana", State: "Punjab", MOQ: 50, Unit: "Tons", PriceMinCents: 240000, PriceMaxCents: 280000, PriceUnit: "Ton", SustainabilityRating: 85},
		{ID: 2, Name: "EverLeaf Paper Mills", Category: "Paper Industry", Verified: true, Location: "Karnal", State: "Haryana", MOQ: 100, Unit: "Tons", PriceMinCents: 300000, PriceMaxCents: 350000, PriceUnit: "Ton", SustainabilityRating: 92},
		{ID: 3, Name: "Eco-Brick Solutions", Category: "Construction", Verified: false, Location: "Meerut", State: "Uttar Pradesh", MOQ: 20, Unit: "Tons", PriceMinCents: 200000, PriceMaxCents: 220000, PriceUnit: "Ton", SustainabilityRating: 65},
		{ID: 4, Name: "AgroFuel Ltd.", Category: "Ethanol Plant", Verified: true, Location: "Bikaner", State: "Rajasthan", MOQ: 200, Unit: "Tons", PriceMinCents: 260000, PriceMaxCents: 310000, PriceUnit: "Ton", SustainabilityRating: 78},
		{ID: 5, Name: "Sustaina-Box Co.", Category: "Packaging", Verified: true, Location: "Ambala", State: "Haryana", MOQ: 10, Unit: "Tons", PriceMinCents: 320000, PriceMaxCents: 360000, PriceUnit: "Ton", SustainabilityRating: 88},
		{ID: 6, Name: "BioHarvest India", Category: "Power Plant", Verified: true, Location: "Amritsar", State: "Punjab", MOQ: 75, Unit: "Tons", PriceMinCents: 210000, PriceMaxCents: 250000, PriceUnit: "Ton", SustainabilityRating: 71},
	}
}

// Locations lists the states offered as sidebar filters.
func Locations() []string {
	return []string{"Punjab", "Haryana", "Uttar Pradesh", "Rajasthan"}
}
