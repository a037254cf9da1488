package marketplace

import (
	"context"

	"github.com/zestraw/storefront-backend/pkg/logger"
)

// LogLeadSink records sell leads to the structured log until a CRM handoff
// exists.
type LogLeadSink struct {
	logg *logger.Logger
}

func NewLogLeadSink(logg *logger.Logger) *LogLeadSink {
	return &LogLeadSink{logg: logg}
}

func (s *LogLeadSink) SubmitLead(ctx context.Context, lead SellLeadInput) error {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"farmer":        lead.FarmerName,
		"contact":       lead.Contact,
		"quantity_tons": lead.QuantityTons,
		"location":      lead.Location,
	})
	s.logg.Info(ctx, "received crop residue sell lead")
	return nil
}
