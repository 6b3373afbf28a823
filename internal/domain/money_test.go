package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    string
		wantErr bool
	}{
		{"zero", 0.0, "0", false},
		{"whole dollars", 100.0, "100", false},
		{"one decimal place", 1.5, "1.5", false},
		{"two decimal places", 148.50, "148.5", false},
		{"small amount", 0.01, "0.01", false},
		{"large amount", 1000000.00, "1000000", false},
		{"three decimal places", 1.234, "", true},
		{"many decimal places", 0.001, "", true},
		{"trailing precision issue 0.10", 0.10, "0.1", false},
		{"1.10 precision", 1.10, "1.1", false},
		{"99.99", 99.99, "99.99", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAmount(%v) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseAmount(%v) unexpected error: %v", tt.input, err)
				return
			}
			if want := decimal.RequireFromString(tt.want); !got.Equal(want) {
				t.Errorf("ParseAmount(%v) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestAmountToFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"zero", "0", 0.0},
		{"one cent", "0.01", 0.01},
		{"typical amount", "148.50", 148.50},
		{"rounds sub-cent precision", "53.333333333333", 53.33},
		{"rounds half up", "10.005", 10.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountToFloat(decimal.RequireFromString(tt.input))
			if got != tt.want {
				t.Errorf("AmountToFloat(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
