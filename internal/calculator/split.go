package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/toma1133/travel-app-sub001/internal/currency"
)

// Share is one member's part of a single expense, in home currency.
type Share struct {
	MemberID string
	Amount   decimal.Decimal
}

// splitSet returns the payer followed by every distinct id in splitWith.
// The payer is always part of the split.
func splitSet(payerID string, splitWith []string) []string {
	set := make([]string, 0, len(splitWith)+1)
	seen := make(map[string]bool, len(splitWith)+1)
	if payerID != "" {
		set = append(set, payerID)
		seen[payerID] = true
	}
	for _, id := range splitWith {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		set = append(set, id)
	}
	return set
}

// allocate divides units into n shares that sum exactly to units. The
// remainder is handed out one unit at a time from the front, so shares
// differ by at most one minor unit.
func allocate(units int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	shares := make([]int64, n)
	base := units / int64(n)
	rem := units % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < rem {
			shares[i]++
		}
	}
	return shares
}

// SplitExpense computes how the expense's cost is divided among its split
// set, converted to home currency and rounded to home minor units.
func SplitExpense(e Expense, settings currency.Settings) ([]Share, error) {
	if !e.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	home, err := settings.ToHome(e.Amount, e.Currency)
	if err != nil {
		return nil, err
	}

	members := splitSet(e.PayerID, e.SplitWith)
	if len(members) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	units := allocate(currency.ToMinor(home, settings.HomeCurrency), len(members))
	shares := make([]Share, len(members))
	for i, id := range members {
		shares[i] = Share{
			MemberID: id,
			Amount:   currency.FromMinor(units[i], settings.HomeCurrency),
		}
	}
	return shares, nil
}
