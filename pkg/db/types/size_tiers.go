package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SizeTier is one purchasable size option with its own price.
type SizeTier struct {
	Size       string `json:"size"`
	PriceCents int64  `json:"priceCents"`
}

// SizeTierList stores the per-size price ladder as a JSON column.
type SizeTierList []SizeTier

func (l *SizeTierList) Scan(src any) error {
	if src == nil {
		*l = SizeTierList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("SizeTierList: unsupported Scan type %T", src)
	}

	if len(data) == 0 {
		*l = SizeTierList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

func (l SizeTierList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("SizeTierList: marshal: %w", err)
	}
	return string(data), nil
}
