package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvann/billdesk/cmd/pos/internal/view"
)

func TestFormatAmount(t *testing.T) {
	type testCase struct {
		name  string
		minor int64
		want  string
	}

	tests := []testCase{
		{name: "Zero", minor: 0, want: "0.00"},
		{name: "WholeUnits", minor: 13000, want: "130.00"},
		{name: "WithCents", minor: 13005, want: "130.05"},
		{name: "CentsOnly", minor: 7, want: "0.07"},
		{name: "Negative", minor: -2050, want: "-20.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.FormatAmount(tt.minor))
		})
	}
}

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "Whole", input: "150", want: 15000},
		{name: "TwoDecimals", input: "130.05", want: 13005},
		{name: "OneDecimal", input: "130.5", want: 13050},
		{name: "TrailingDot", input: "150.", want: 15000},
		{name: "LeadingDot", input: ".50", want: 50},
		{name: "LeadingDotSingleDigit", input: ".5", want: 50},
		{name: "DotAlone", input: ".", wantErr: true},
		{name: "NegativeLeadingDot", input: "-.50", wantErr: true},
		{name: "Whitespace", input: " 150.00 ", want: 15000},
		{name: "Zero", input: "0", want: 0},
		{name: "Empty", input: "", wantErr: true},
		{name: "ThreeDecimals", input: "1.005", wantErr: true},
		{name: "Negative", input: "-5", wantErr: true},
		{name: "NotANumber", input: "abc", wantErr: true},
		{name: "BadFraction", input: "1.x5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := view.ParseAmount(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Parse and re-format must round-trip every representable amount the
// cashier can enter.
func TestAmountRoundTrip(t *testing.T) {
	for _, minor := range []int64{0, 1, 99, 100, 13005, 250000} {
		got, err := view.ParseAmount(view.FormatAmount(minor))
		require.NoError(t, err)
		assert.Equal(t, minor, got)
	}
}
