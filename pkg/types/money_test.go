package types

import "testing"

func TestNewMoneyFormatsCents(t *testing.T) {
	tests := []struct {
		cents   int64
		display string
	}{
		{0, "0.00"},
		{2400, "24.00"},
		{1850, "18.50"},
		{5, "0.05"},
		{123456, "1234.56"},
	}
	for _, tt := range tests {
		m := NewMoney(tt.cents)
		if m.Display != tt.display {
			t.Fatalf("cents %d: got %q want %q", tt.cents, m.Display, tt.display)
		}
		if m.Cents != tt.cents {
			t.Fatalf("cents %d: round-trip lost value", tt.cents)
		}
		if m.Currency != "INR" {
			t.Fatalf("expected default currency INR, got %q", m.Currency)
		}
	}
}

func TestNewMoneyCurrencyOverride(t *testing.T) {
	m := NewMoneyCurrency(100, "USD")
	if m.Currency != "USD" {
		t.Fatalf("expected USD, got %q", m.Currency)
	}
}
