package cart

import (
	"encoding/json"
	"fmt"
)

// encodeItems serializes cart lines for storage.
func encodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding cart: %w", err)
	}
	return data, nil
}

// decodeItems deserializes stored cart lines. Any malformed payload yields an
// empty cart rather than an error so a corrupted blob never locks a customer
// out of their cart.
func decodeItems(data []byte) []LineItem {
	if len(data) == 0 {
		return nil
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}
