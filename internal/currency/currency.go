// Package currency converts trip amounts between a home and a local currency.
//
// A trip carries exactly two currencies and one exchange rate, expressed as
// units of home currency per one unit of local currency. Conversions pivot on
// the home currency and never round; rounding to minor units is the caller's
// choice (see ToMinor).
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
)

var (
	// ErrInvalidExchangeRate is returned when a conversion needs the exchange
	// rate and the configured rate is zero or negative.
	ErrInvalidExchangeRate = errors.New("exchange rate must be greater than zero")

	// ErrUnknownCurrency is returned for codes that are not ISO 4217.
	ErrUnknownCurrency = errors.New("unknown currency code")

	// ErrUnsupportedCurrency is returned when an amount is in neither of the
	// trip's currencies.
	ErrUnsupportedCurrency = errors.New("currency is neither home nor local")
)

// ConfigError reports a conversion that could not be performed because of the
// trip's currency configuration.
type ConfigError struct {
	From string
	To   string
	Rate decimal.Decimal
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("convert %s to %s at rate %s: %v", e.From, e.To, e.Rate.String(), e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Normalize upper-cases and trims a currency code. It does not validate it.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func same(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ConvertToHome converts amount, denominated in sourceCurrency, into the home
// currency. Same-currency conversion returns amount unchanged for any rate.
func ConvertToHome(amount decimal.Decimal, sourceCurrency, homeCurrency string, exchangeRate decimal.Decimal) (decimal.Decimal, error) {
	if same(sourceCurrency, homeCurrency) {
		return amount, nil
	}
	if !exchangeRate.IsPositive() {
		return decimal.Zero, &ConfigError{
			From: Normalize(sourceCurrency),
			To:   Normalize(homeCurrency),
			Rate: exchangeRate,
			Err:  ErrInvalidExchangeRate,
		}
	}
	return amount.Mul(exchangeRate), nil
}

// ConvertToLocal converts amount, denominated in sourceCurrency, into the
// local currency. It is the inverse of ConvertToHome.
func ConvertToLocal(amount decimal.Decimal, sourceCurrency, localCurrency string, exchangeRate decimal.Decimal) (decimal.Decimal, error) {
	if same(sourceCurrency, localCurrency) {
		return amount, nil
	}
	if !exchangeRate.IsPositive() {
		return decimal.Zero, &ConfigError{
			From: Normalize(sourceCurrency),
			To:   Normalize(localCurrency),
			Rate: exchangeRate,
			Err:  ErrInvalidExchangeRate,
		}
	}
	return amount.Div(exchangeRate), nil
}

// ParseCode validates an ISO 4217 code and returns its canonical form.
func ParseCode(code string) (string, error) {
	unit, err := xcurrency.ParseISO(Normalize(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return unit.String(), nil
}

// Scale returns the number of minor-unit digits for a currency: 2 for USD,
// 0 for JPY. Unknown codes fall back to 2.
func Scale(code string) int32 {
	unit, err := xcurrency.ParseISO(Normalize(code))
	if err != nil {
		return 2
	}
	scale, _ := xcurrency.Standard.Rounding(unit)
	return int32(scale)
}

// ToMinor rounds amount half away from zero to the currency's minor units
// and returns the integer count.
func ToMinor(amount decimal.Decimal, code string) int64 {
	return amount.Shift(Scale(code)).Round(0).IntPart()
}

// FromMinor converts an integer count of minor units back into an amount.
func FromMinor(units int64, code string) decimal.Decimal {
	return decimal.New(units, -Scale(code))
}
