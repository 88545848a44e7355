package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWholeDollars(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"5", "5"},
		{"999", "999"},
		{"1000", "1,000"},
		{"5200.00", "5,200"},
		{"5200.49", "5,200"},
		{"5200.50", "5,201"},
		{"1234567.89", "1,234,568"},
		{"-1234.56", "-1,235"},
		{"125000", "125,000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WholeDollars(decimal.RequireFromString(tc.in)), "input %s", tc.in)
	}
}

func TestCents(t *testing.T) {
	assert.Equal(t, "5200.00", Cents(decimal.RequireFromString("5200")))
	assert.Equal(t, "0.01", Cents(decimal.RequireFromString("0.01")))
}
