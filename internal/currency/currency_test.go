package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvertToHome(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		source  string
		home    string
		rate    string
		want    string
		wantErr error
	}{
		{name: "same currency ignores rate", amount: "42.50", source: "USD", home: "USD", rate: "0.007", want: "42.50"},
		{name: "same currency with zero rate", amount: "10", source: "usd", home: "USD", rate: "0", want: "10"},
		{name: "local to home multiplies", amount: "1000", source: "JPY", home: "USD", rate: "0.0067", want: "6.7"},
		{name: "zero rate is a configuration error", amount: "1000", source: "JPY", home: "USD", rate: "0", wantErr: ErrInvalidExchangeRate},
		{name: "negative rate is a configuration error", amount: "1000", source: "JPY", home: "USD", rate: "-1", wantErr: ErrInvalidExchangeRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertToHome(d(tt.amount), tt.source, tt.home, d(tt.rate))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var cfgErr *ConfigError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestConvertToLocal(t *testing.T) {
	got, err := ConvertToLocal(d("6.7"), "USD", "JPY", d("0.0067"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("1000")), "got %s", got)

	got, err = ConvertToLocal(d("12"), "EUR", "EUR", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("12")))

	_, err = ConvertToLocal(d("6.7"), "USD", "JPY", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidExchangeRate)
}

func TestConvertRoundTrip(t *testing.T) {
	rates := []string{"0.0067", "1.09", "31.5", "0.333333"}
	amounts := []string{"0.01", "1", "99.99", "12345.678"}

	for _, r := range rates {
		for _, a := range amounts {
			home, err := ConvertToHome(d(a), "THB", "USD", d(r))
			require.NoError(t, err)
			back, err := ConvertToLocal(home, "USD", "THB", d(r))
			require.NoError(t, err)
			assert.True(t, back.Sub(d(a)).Abs().LessThan(d("0.000001")),
				"round trip of %s at %s gave %s", a, r, back)
		}
	}
}

func TestParseCodeAndScale(t *testing.T) {
	code, err := ParseCode(" eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", code)

	_, err = ParseCode("XX1")
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	assert.Equal(t, int32(2), Scale("USD"))
	assert.Equal(t, int32(0), Scale("JPY"))
	assert.Equal(t, int64(1235), ToMinor(d("12.345"), "USD"))
	assert.Equal(t, int64(1000), ToMinor(d("999.5"), "JPY"))
	assert.True(t, FromMinor(1235, "USD").Equal(d("12.35")))
}

func TestSettings(t *testing.T) {
	t.Run("single currency defaults the rate", func(t *testing.T) {
		s, err := Settings{HomeCurrency: "usd"}.Validate()
		require.NoError(t, err)
		assert.Equal(t, "USD", s.LocalCurrency)
		assert.True(t, s.SingleCurrency())
		assert.True(t, s.ExchangeRate.Equal(decimal.NewFromInt(1)))
	})

	t.Run("two currencies require a positive rate", func(t *testing.T) {
		_, err := Settings{HomeCurrency: "USD", LocalCurrency: "JPY"}.Validate()
		assert.ErrorIs(t, err, ErrInvalidExchangeRate)
	})

	t.Run("converts only supported currencies", func(t *testing.T) {
		s := Settings{HomeCurrency: "USD", LocalCurrency: "JPY", ExchangeRate: d("0.0067")}
		got, err := s.ToHome(d("1000"), "jpy")
		require.NoError(t, err)
		assert.True(t, got.Equal(d("6.7")))

		_, err = s.ToHome(d("10"), "EUR")
		assert.ErrorIs(t, err, ErrUnsupportedCurrency)

		local, err := s.ToLocal(d("6.7"), "USD")
		require.NoError(t, err)
		assert.True(t, local.Equal(d("1000")))
	})
}
