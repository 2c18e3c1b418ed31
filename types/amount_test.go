package types

import "testing"

func TestDisplay(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		currency string
		want     string
	}{
		{"USD", 49, "usd", "$49.00"},
		{"USD cents", 49.5, "usd", "$49.50"},
		{"EUR", 199, "eur", "€199.00"},
		{"GBP", 99, "gbp", "£99.00"},
		{"JPY no decimals", 100, "jpy", "¥100"},
		{"CAD", 25, "cad", "C$25.00"},
		{"AUD", 75.5, "aud", "A$75.50"},
		{"Zero", 0, "usd", "$0.00"},
		{"Negative", -50, "usd", "-$50.00"},
		{"Unknown currency", 10, "xyz", "XYZ 10.00"},
		{"Uppercase code", 10, "USD", "$10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(tt.value, tt.currency); got != tt.want {
				t.Errorf("Display(%v, %q) = %q, want %q", tt.value, tt.currency, got, tt.want)
			}
		})
	}
}

func TestDisplayMajor(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		currency string
		want     string
	}{
		{"Two decimals", 49, "usd", "49.00"},
		{"Zero decimals", 100, "jpy", "100"},
		{"Rounds half", 1.005, "usd", "1.00"},
		{"Negative", -12.3, "usd", "-12.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayMajor(tt.value, tt.currency); got != tt.want {
				t.Errorf("DisplayMajor(%v, %q) = %q, want %q", tt.value, tt.currency, got, tt.want)
			}
		})
	}
}
