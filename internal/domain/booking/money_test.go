package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"rounds up above half", 12.346, 12.35},
		{"rounds down below half", 12.344, 12.34},
		{"already two decimals", 99.99, 99.99},
		{"whole number unchanged", 100, 100},
		{"zero", 0, 0},
		{"repeating binary fraction", 0.1 + 0.2, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundMoney(tt.in))
		})
	}
}
