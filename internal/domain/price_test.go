package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceMinor(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		code    string
		want    int64
		wantErr bool
	}{
		{name: "whole XAF amount", amount: "4500", code: "XAF", want: 4500},
		{name: "two decimal EUR amount", amount: "1250.50", code: "EUR", want: 125050},
		{name: "single decimal EUR amount", amount: "10.5", code: "EUR", want: 1050},
		{name: "whole EUR amount", amount: "99", code: "EUR", want: 9900},
		{name: "zero is allowed", amount: "0", code: "USD", want: 0},
		{name: "fractional XAF rejected", amount: "10.5", code: "XAF", wantErr: true},
		{name: "sub-cent EUR rejected", amount: "1.005", code: "EUR", wantErr: true},
		{name: "negative rejected", amount: "-5", code: "EUR", wantErr: true},
		{name: "malformed amount", amount: "12,50", code: "EUR", wantErr: true},
		{name: "unknown currency", amount: "100", code: "XXXX", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriceMinor(tt.amount, tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPriceMajor(t *testing.T) {
	got, err := FormatPriceMajor(125050, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "1250.50", got)

	got, err = FormatPriceMajor(4500, "XAF")
	require.NoError(t, err)
	assert.Equal(t, "4500", got)

	_, err = FormatPriceMajor(100, "NOPE")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
