package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settings are a trip's currency configuration.
type Settings struct {
	// HomeCurrency is the reporting currency all balances are kept in.
	HomeCurrency string `json:"home_currency"`

	// LocalCurrency is the destination's currency. It may equal HomeCurrency.
	LocalCurrency string `json:"local_currency"`

	// ExchangeRate is units of HomeCurrency per one unit of LocalCurrency.
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// SingleCurrency reports whether home and local are the same currency, in
// which case the exchange rate is never consulted.
func (s Settings) SingleCurrency() bool {
	return s.LocalCurrency == "" || same(s.HomeCurrency, s.LocalCurrency)
}

// Supports reports whether code is one of the trip's two currencies.
func (s Settings) Supports(code string) bool {
	if same(code, s.HomeCurrency) {
		return true
	}
	return s.LocalCurrency != "" && same(code, s.LocalCurrency)
}

// Validate checks the codes and, for two-currency trips, the rate. It returns
// the normalized settings.
func (s Settings) Validate() (Settings, error) {
	home, err := ParseCode(s.HomeCurrency)
	if err != nil {
		return s, fmt.Errorf("home currency: %w", err)
	}
	local := home
	if s.LocalCurrency != "" {
		local, err = ParseCode(s.LocalCurrency)
		if err != nil {
			return s, fmt.Errorf("local currency: %w", err)
		}
	}

	out := Settings{HomeCurrency: home, LocalCurrency: local, ExchangeRate: s.ExchangeRate}
	if out.SingleCurrency() {
		if out.ExchangeRate.IsZero() {
			out.ExchangeRate = decimal.NewFromInt(1)
		}
		return out, nil
	}
	if !out.ExchangeRate.IsPositive() {
		return s, &ConfigError{From: local, To: home, Rate: s.ExchangeRate, Err: ErrInvalidExchangeRate}
	}
	return out, nil
}

// ToHome converts an amount in code into the home currency.
func (s Settings) ToHome(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	if !s.Supports(code) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, Normalize(code))
	}
	return ConvertToHome(amount, code, s.HomeCurrency, s.ExchangeRate)
}

// ToLocal converts an amount in code into the local currency.
func (s Settings) ToLocal(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	if !s.Supports(code) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, Normalize(code))
	}
	local := s.LocalCurrency
	if local == "" {
		local = s.HomeCurrency
	}
	return ConvertToLocal(amount, code, local, s.ExchangeRate)
}
