package service

import (
	"github.com/toma1133/travel-app-sub001/internal/calculator"
	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPITrip(t *models.Trip) *api.Trip {
	return &api.Trip{
		ID:            t.ID,
		Name:          t.Name,
		HomeCurrency:  t.Currency.HomeCurrency,
		LocalCurrency: t.Currency.LocalCurrency,
		ExchangeRate:  t.Currency.ExchangeRate,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{
		ID:          m.ID,
		TripID:      m.TripID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Role:        string(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	splitWith := e.SplitWith
	if splitWith == nil {
		splitWith = []string{}
	}
	return &api.Expense{
		ID:          e.ID,
		TripID:      e.TripID,
		Description: e.Description,
		PayerID:     e.PayerID,
		Amount:      e.Amount,
		Currency:    e.Currency,
		SplitWith:   splitWith,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:           p.ID,
		TripID:       p.TripID,
		FromMemberID: p.FromMemberID,
		ToMemberID:   p.ToMemberID,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Note:         p.Note,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt,
	}
}

func toAPISettlement(r *calculator.Result) *api.Settlement {
	out := &api.Settlement{
		HomeCurrency:  r.HomeCurrency,
		LocalCurrency: r.LocalCurrency,
		Transactions:  make([]api.Transaction, len(r.Transactions)),
		Balances:      make([]api.MemberBalance, len(r.Balances)),
		Skipped:       make([]api.SkippedRecord, len(r.Skipped)),
	}
	for i, tx := range r.Transactions {
		out.Transactions[i] = api.Transaction{
			FromMemberID: tx.FromID,
			FromName:     tx.FromName,
			ToMemberID:   tx.ToID,
			ToName:       tx.ToName,
			Amount:       tx.Amount,
		}
		if tx.LocalAmount.Valid {
			local := tx.LocalAmount.Decimal
			out.Transactions[i].LocalAmount = &local
		}
	}
	for i, b := range r.Balances {
		out.Balances[i] = api.MemberBalance{
			MemberID:   b.MemberID,
			MemberName: b.MemberName,
			NetBalance: b.NetBalance,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
		}
	}
	for i, s := range r.Skipped {
		out.Skipped[i] = api.SkippedRecord{
			Kind:   string(s.Kind),
			ID:     s.ID,
			Reason: string(s.Reason),
			Detail: s.Detail,
		}
	}
	return out
}
