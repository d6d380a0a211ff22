package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/toma1133/travel-app-sub001/internal/currency"
)

// DefaultTolerance is the band, in home currency units, inside which a
// balance counts as settled.
var DefaultTolerance = decimal.RequireFromString("0.1")

type options struct {
	tolerance decimal.Decimal
}

// Option configures a settlement run.
type Option func(*options)

// WithTolerance overrides DefaultTolerance. Negative values are ignored.
func WithTolerance(tolerance decimal.Decimal) Option {
	return func(o *options) {
		if !tolerance.IsNegative() {
			o.tolerance = tolerance
		}
	}
}

// position is a creditor's or debtor's outstanding amount in minor units.
type position struct {
	member    int
	remaining int64
}

// Settle computes every member's net balance and the payments that settle
// them.
//
// Algorithm:
//   - For each expense: payer contributed +amount, each member of the split
//     set (payer plus split_with) owes an equal share
//   - For each recorded payment: payer's balance improves, receiver's decreases
//   - Members outside the tolerance band become debtors or creditors, in
//     member-list order
//   - Greedy two-pointer matching pays min(debt, credit) per step
//
// The tolerance band is inclusive: a balance or remainder equal to the
// tolerance counts as settled, so a pointer advances once its remainder is
// at or below it.
//
// The greedy match keeps the transaction count low but is not guaranteed to
// be minimal for every balance topology.
//
// Records with bad data are skipped and reported in Result.Skipped. That
// includes positive amounts that round to zero home minor units. Missing
// ids or home currency reject the whole input with an *InputError, and a
// conversion that needs an invalid exchange rate returns a
// *currency.ConfigError.
func Settle(in Input, opts ...Option) (*Result, error) {
	o := options{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateInput(in); err != nil {
		return nil, err
	}

	l := newLedger(in.Members, in.Currency)
	for _, e := range in.Expenses {
		if err := l.addExpense(e); err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
	}
	for _, p := range in.Payments {
		if err := l.addPayment(p); err != nil {
			return nil, fmt.Errorf("payment %s: %w", p.ID, err)
		}
	}

	home := in.Currency.HomeCurrency
	// Balances are whole minor units, so "> tolerance" is "> floor(tolerance)".
	band := o.tolerance.Shift(currency.Scale(home)).Floor().IntPart()

	var creditors, debtors []position
	for i := range in.Members {
		net := l.net(i)
		if net > band {
			creditors = append(creditors, position{member: i, remaining: net})
		} else if net < -band {
			debtors = append(debtors, position{member: i, remaining: -net})
		}
	}

	transactions := make([]Transaction, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := min(debtor.remaining, creditor.remaining)
		transactions = append(transactions, newTransaction(in, debtor.member, creditor.member, amount))

		debtor.remaining -= amount
		creditor.remaining -= amount

		// Move to next debtor/creditor once inside the tolerance band
		if debtor.remaining <= band {
			i++
		}
		if creditor.remaining <= band {
			j++
		}
	}

	local := in.Currency.LocalCurrency
	if local == "" {
		local = home
	}
	skipped := l.skipped
	if skipped == nil {
		skipped = []SkippedRecord{}
	}
	return &Result{
		HomeCurrency:  home,
		LocalCurrency: local,
		Transactions:  transactions,
		Balances:      l.balances(),
		Skipped:       skipped,
	}, nil
}

func newTransaction(in Input, from, to int, units int64) Transaction {
	amount := currency.FromMinor(units, in.Currency.HomeCurrency)
	tx := Transaction{
		FromID:   in.Members[from].ID,
		FromName: in.Members[from].Name,
		ToID:     in.Members[to].ID,
		ToName:   in.Members[to].Name,
		Amount:   amount,
	}
	if !in.Currency.SingleCurrency() {
		if local, err := currency.ConvertToLocal(amount, in.Currency.HomeCurrency, in.Currency.LocalCurrency, in.Currency.ExchangeRate); err == nil {
			tx.LocalAmount = decimal.NewNullDecimal(local)
		}
	}
	return tx
}
