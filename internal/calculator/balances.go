package calculator

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/toma1133/travel-app-sub001/internal/currency"
)

// Member is a trip member as seen by the settlement engine. The name is only
// used to label transactions.
type Member struct {
	ID   string
	Name string
}

// Expense represents an expense with the minimal information needed for balance calculations.
type Expense struct {
	ID        string
	PayerID   string
	Amount    decimal.Decimal
	Currency  string
	SplitWith []string // The payer is always included, listed or not
}

// Payment is a settle-up payment already made between two members.
type Payment struct {
	ID       string
	FromID   string // Who paid (debtor settling up)
	ToID     string // Who received (creditor being paid)
	Amount   decimal.Decimal
	Currency string
}

// Input is an atomic snapshot of a trip's settlement data.
type Input struct {
	Members  []Member
	Expenses []Expense
	Payments []Payment
	Currency currency.Settings
}

// MemberBalance represents the balance information for one trip member,
// in home currency.
type MemberBalance struct {
	MemberID   string          `json:"member_id"`
	MemberName string          `json:"member_name"`
	NetBalance decimal.Decimal `json:"net_balance"` // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal `json:"total_paid"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
}

// Transaction is a suggested payment from one member to another.
type Transaction struct {
	FromID      string              `json:"from_id"`
	FromName    string              `json:"from_name"`
	ToID        string              `json:"to_id"`
	ToName      string              `json:"to_name"`
	Amount      decimal.Decimal     `json:"amount"`       // Home currency
	LocalAmount decimal.NullDecimal `json:"local_amount"` // Set only for two-currency trips
}

// Result is the outcome of a settlement run.
type Result struct {
	HomeCurrency  string          `json:"home_currency"`
	LocalCurrency string          `json:"local_currency"`
	Transactions  []Transaction   `json:"transactions"`
	Balances      []MemberBalance `json:"balances"`
	Skipped       []SkippedRecord `json:"skipped"`
}

// SkippedCount is the number of records left out as data integrity warnings.
func (r *Result) SkippedCount() int {
	return len(r.Skipped)
}

// ledger accumulates balances in integer minor units of the home currency,
// in member-list order.
type ledger struct {
	settings currency.Settings
	index    map[string]int
	members  []Member
	paid     []int64
	owed     []int64
	skipped  []SkippedRecord
}

func newLedger(members []Member, settings currency.Settings) *ledger {
	l := &ledger{
		settings: settings,
		index:    make(map[string]int, len(members)),
		members:  members,
		paid:     make([]int64, len(members)),
		owed:     make([]int64, len(members)),
	}
	for i, m := range members {
		l.index[m.ID] = i
	}
	return l
}

func (l *ledger) known(id string) bool {
	_, ok := l.index[id]
	return ok
}

func (l *ledger) skip(kind RecordKind, id string, reason SkipReason, detail string) {
	slog.Warn("Skipping record in settlement",
		"kind", kind,
		"id", id,
		"reason", reason,
		"detail", detail,
	)
	l.skipped = append(l.skipped, SkippedRecord{Kind: kind, ID: id, Reason: reason, Detail: detail})
}

// toHomeUnits converts an amount to home minor units. Configuration errors
// are returned; an unsupported currency is reported as ok=false.
func (l *ledger) toHomeUnits(amount decimal.Decimal, code string) (int64, bool, error) {
	if !l.settings.Supports(code) {
		return 0, false, nil
	}
	home, err := l.settings.ToHome(amount, code)
	if err != nil {
		return 0, false, err
	}
	return currency.ToMinor(home, l.settings.HomeCurrency), true, nil
}

func (l *ledger) addExpense(e Expense) error {
	if !e.Amount.IsPositive() {
		l.skip(KindExpense, e.ID, SkipNonPositiveAmount, e.Amount.String())
		return nil
	}
	if !l.known(e.PayerID) {
		l.skip(KindExpense, e.ID, SkipUnknownPayer, e.PayerID)
		return nil
	}
	split := splitSet(e.PayerID, e.SplitWith)
	for _, id := range split {
		if !l.known(id) {
			l.skip(KindExpense, e.ID, SkipUnknownMember, id)
			return nil
		}
	}
	units, ok, err := l.toHomeUnits(e.Amount, e.Currency)
	if err != nil {
		return err
	}
	if !ok {
		l.skip(KindExpense, e.ID, SkipUnsupportedCurrency, e.Currency)
		return nil
	}
	if units <= 0 {
		l.skip(KindExpense, e.ID, SkipBelowMinorUnit, e.Amount.String()+" "+e.Currency)
		return nil
	}

	// Payer paid the full amount, each split member owes their share
	l.paid[l.index[e.PayerID]] += units
	for i, share := range allocate(units, len(split)) {
		l.owed[l.index[split[i]]] += share
	}
	return nil
}

func (l *ledger) addPayment(p Payment) error {
	if !p.Amount.IsPositive() {
		l.skip(KindPayment, p.ID, SkipNonPositiveAmount, p.Amount.String())
		return nil
	}
	if !l.known(p.FromID) {
		l.skip(KindPayment, p.ID, SkipUnknownPayer, p.FromID)
		return nil
	}
	if !l.known(p.ToID) {
		l.skip(KindPayment, p.ID, SkipUnknownMember, p.ToID)
		return nil
	}
	if p.FromID == p.ToID {
		l.skip(KindPayment, p.ID, SkipSelfPayment, p.FromID)
		return nil
	}
	units, ok, err := l.toHomeUnits(p.Amount, p.Currency)
	if err != nil {
		return err
	}
	if !ok {
		l.skip(KindPayment, p.ID, SkipUnsupportedCurrency, p.Currency)
		return nil
	}
	if units <= 0 {
		l.skip(KindPayment, p.ID, SkipBelowMinorUnit, p.Amount.String()+" "+p.Currency)
		return nil
	}

	// Payer's balance improves, receiver's balance decreases
	l.paid[l.index[p.FromID]] += units
	l.owed[l.index[p.ToID]] += units
	return nil
}

func (l *ledger) net(i int) int64 {
	return l.paid[i] - l.owed[i]
}

func (l *ledger) balances() []MemberBalance {
	home := l.settings.HomeCurrency
	out := make([]MemberBalance, len(l.members))
	for i, m := range l.members {
		out[i] = MemberBalance{
			MemberID:   m.ID,
			MemberName: m.Name,
			NetBalance: currency.FromMinor(l.net(i), home),
			TotalPaid:  currency.FromMinor(l.paid[i], home),
			TotalOwed:  currency.FromMinor(l.owed[i], home),
		}
	}
	return out
}

func validateInput(in Input) error {
	if in.Currency.HomeCurrency == "" {
		return inputError("currency.home_currency", "is required")
	}
	seen := make(map[string]bool, len(in.Members))
	for i, m := range in.Members {
		if m.ID == "" {
			return inputError("members", "member at index %d has no id", i)
		}
		if seen[m.ID] {
			return inputError("members", "duplicate member id %q", m.ID)
		}
		seen[m.ID] = true
	}
	for i, e := range in.Expenses {
		if e.ID == "" {
			return inputError("expenses", "expense at index %d has no id", i)
		}
	}
	for i, p := range in.Payments {
		if p.ID == "" {
			return inputError("payments", "payment at index %d has no id", i)
		}
	}
	return nil
}

// IsConfigError reports whether err came from the trip's currency
// configuration rather than from the input records.
func IsConfigError(err error) bool {
	var cfgErr *currency.ConfigError
	return errors.As(err, &cfgErr)
}
