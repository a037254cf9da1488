package cart

import (
	"testing"

	"github.com/zestraw/storefront-backend/pkg/types"
)

func TestCodecRoundTripKeepsMetrics(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{
			ProductID:  "1",
			Name:       "Classic Rice Straw Dinner Plate",
			PriceCents: 2400,
			Quantity:   2,
			Variant:    "10-inch",
			Sustainability: &types.SustainabilityMetrics{
				CarbonFootprint: 0.3,
				PlasticAvoided:  1.2,
			},
		},
	}

	data, err := encodeItems(items)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := decodeItems(data)
	if len(decoded) != 1 {
		t.Fatalf("expected one line, got %d", len(decoded))
	}
	if decoded[0].Sustainability == nil || decoded[0].Sustainability.PlasticAvoided != 1.2 {
		t.Fatalf("metrics lost in round trip: %+v", decoded[0])
	}
}

func TestDecodeMalformedYieldsEmpty(t *testing.T) {
	t.Parallel()

	for _, blob := range []string{"not json", `{"object":true}`, `[{"quantity":`} {
		if items := decodeItems([]byte(blob)); len(items) != 0 {
			t.Fatalf("blob %q: expected empty, got %+v", blob, items)
		}
	}
}

func TestEncodeNilItemsYieldsEmptyArray(t *testing.T) {
	t.Parallel()

	data, err := encodeItems(nil)
	if err != nil {
		t.Fatalf("encode nil: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}
