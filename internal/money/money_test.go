package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/gastos/internal/money"
)

func TestParseEuropean(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "Thousands and decimals", input: "1.234,56", want: 123456},
		{name: "Negative", input: "-3,20", want: -320},
		{name: "Whole number", input: "10,00", want: 1000},
		{name: "Millions", input: "-1.234.567,89", want: -123456789},
		{name: "Surrounding spaces", input: "  -588,74 ", want: -58874},
		{name: "No decimals", input: "25", want: 2500},
		{name: "Empty is zero", input: "", want: 0},
		{name: "Whitespace is zero", input: "  ", want: 0},
		{name: "Largest representable", input: "92.233.720.368.547.758,07", want: 9223372036854775807},
		{name: "Beyond int64 cents", input: "92.233.720.368.547.759,00", wantErr: true},
		{name: "Huge negative", input: "-1.000.000.000.000.000.000,00", wantErr: true},
		{name: "Garbage", input: "abc", wantErr: true},
		{name: "NaN", input: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseEuropean(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLenient(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "Dot decimal", input: "-3.20", want: -320},
		{name: "Comma decimal", input: "-3,20", want: -320},
		{name: "European grouping", input: "1.234,56", want: 123456},
		{name: "Euro symbol and spaces", input: "€ -12.50 ", want: -1250},
		{name: "Trailing symbol", input: "12,50 €", want: 1250},
		{name: "Blank is zero", input: "", want: 0},
		{name: "Whitespace is zero", input: "   ", want: 0},
		{name: "Only currency is zero", input: "€", want: 0},
		{name: "Garbage", input: "n/a", wantErr: true},
		{name: "Out of range", input: "1e30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseLenient(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, int64(-320), money.FromFloat(-3.2))
	assert.Equal(t, int64(123456), money.FromFloat(1234.56))
	assert.Equal(t, int64(0), money.FromFloat(0))
	assert.Equal(t, int64(1), money.FromFloat(0.005))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "-3.20", money.Format(-320))
	assert.Equal(t, "1234.56", money.Format(123456))
	assert.Equal(t, "0.00", money.Format(0))
	assert.InDelta(t, -3.2, money.ToFloat(-320), 1e-9)
}
