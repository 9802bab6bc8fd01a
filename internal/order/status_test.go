package order

import (
	"testing"

	"orderdesk-be/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{"Exact", "SHIPPED", StatusShipped, false},
		{"Lowercase", "pending", StatusPending, false},
		{"MixedCase", "ProCessing", StatusProcessing, false},
		{"Whitespace", "  delivered ", StatusDelivered, false},
		{"Canceled", "CANCELED", StatusCanceled, false},
		{"Numeric", "3", "", true},
		{"NegativeNumeric", "-1", "", true},
		{"Unknown", "SHIPPING", "", true},
		{"Empty", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStatus(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
