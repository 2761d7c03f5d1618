package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sapataria/internal/validation"
)

type sample struct {
	Name  string           `json:"name" validate:"required"`
	Price decimal.Decimal  `json:"price" validate:"gte=0"`
	Cost  *decimal.Decimal `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Qty   int              `json:"qty" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name       string
		input      sample
		wantFields []string
	}{
		{
			name:  "Valid",
			input: sample{Name: "Chinelo", Price: decimal.NewFromInt(20)},
		},
		{
			name:  "NilPointerIsSkipped",
			input: sample{Name: "Chinelo", Price: decimal.Zero, Cost: nil},
		},
		{
			name:       "MissingName",
			input:      sample{Price: decimal.NewFromInt(1)},
			wantFields: []string{"name"},
		},
		{
			name:       "NegativeMoneyAndQuantity",
			input:      sample{Name: "x", Price: decimal.NewFromInt(-5), Cost: &negative, Qty: -1},
			wantFields: []string{"price", "cost", "qty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *validation.Error
			require.True(t, errors.As(err, &verr))

			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}

			assert.ElementsMatch(t, tt.wantFields, got)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
