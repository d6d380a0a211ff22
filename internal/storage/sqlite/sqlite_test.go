package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toma1133/travel-app-sub001/internal/currency"
	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

var kyoto = currency.Settings{HomeCurrency: "USD", LocalCurrency: "JPY", ExchangeRate: decimal.RequireFromString("0.0067")}

func createTrip(t *testing.T, store *SQLiteStore, userID string) (*models.Trip, *models.Member) {
	t.Helper()
	trip := &models.Trip{Name: "Kyoto", Currency: kyoto, CreatedBy: userID}
	owner := &models.Member{UserID: userID, DisplayName: "Alice", Role: models.RoleOwner}
	require.NoError(t, store.CreateTrip(context.Background(), trip, owner))
	return trip, owner
}

func TestSQLiteStore_Trips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates IDs and owner", func(t *testing.T) {
		trip, owner := createTrip(t, store, "user-1")
		assert.NotEmpty(t, trip.ID)
		assert.NotZero(t, trip.CreatedAt)
		assert.Equal(t, trip.ID, owner.TripID)
		assert.NotEmpty(t, owner.ID)

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kyoto", got.Name)
		assert.Equal(t, "JPY", got.Currency.LocalCurrency)
		assert.True(t, got.Currency.ExchangeRate.Equal(kyoto.ExchangeRate))
	})

	t.Run("GetTrip returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListTripsForUser only returns joined trips", func(t *testing.T) {
		mine, _ := createTrip(t, store, "user-list")
		createTrip(t, store, "someone-else")

		trips, err := store.ListTripsForUser(ctx, "user-list")
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, mine.ID, trips[0].ID)
	})

	t.Run("UpdateTripCurrency", func(t *testing.T) {
		trip, _ := createTrip(t, store, "user-2")
		settings := currency.Settings{HomeCurrency: "EUR", LocalCurrency: "THB", ExchangeRate: decimal.RequireFromString("0.026")}
		require.NoError(t, store.UpdateTripCurrency(ctx, trip.ID, settings))

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "EUR", got.Currency.HomeCurrency)
		assert.True(t, got.Currency.ExchangeRate.Equal(settings.ExchangeRate))

		assert.ErrorIs(t, store.UpdateTripCurrency(ctx, "missing", settings), storage.ErrNotFound)
	})

	t.Run("DeleteTrip cascades", func(t *testing.T) {
		trip, owner := createTrip(t, store, "user-3")
		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			TripID: trip.ID, PayerID: owner.ID, Amount: decimal.NewFromInt(10), Currency: "USD", CreatedBy: "user-3",
		}))

		require.NoError(t, store.DeleteTrip(ctx, trip.ID))
		members, err := store.ListMembers(ctx, trip.ID)
		require.NoError(t, err)
		assert.Empty(t, members)
		expenses, err := store.ListExpenses(ctx, trip.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})
}

func TestSQLiteStore_Members(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, owner := createTrip(t, store, "user-1")

	bob := &models.Member{TripID: trip.ID, DisplayName: "Bob", Role: models.RoleEditor}
	require.NoError(t, store.AddMember(ctx, bob))
	carol := &models.Member{TripID: trip.ID, DisplayName: "Carol", Role: models.RoleViewer}
	require.NoError(t, store.AddMember(ctx, carol))

	t.Run("ListMembers keeps join order", func(t *testing.T) {
		members, err := store.ListMembers(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, members, 3)
		assert.Equal(t, []string{owner.ID, bob.ID, carol.ID}, []string{members[0].ID, members[1].ID, members[2].ID})
		assert.Empty(t, members[1].UserID)
	})

	t.Run("same user cannot join twice", func(t *testing.T) {
		err := store.AddMember(ctx, &models.Member{TripID: trip.ID, UserID: "user-1", DisplayName: "Alice again", Role: models.RoleViewer})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("GetMemberByUser", func(t *testing.T) {
		m, err := store.GetMemberByUser(ctx, trip.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, owner.ID, m.ID)
		assert.Equal(t, models.RoleOwner, m.Role)

		_, err = store.GetMemberByUser(ctx, trip.ID, "stranger")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("UpdateMemberRole", func(t *testing.T) {
		require.NoError(t, store.UpdateMemberRole(ctx, trip.ID, carol.ID, models.RoleEditor))
		m, err := store.GetMember(ctx, trip.ID, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleEditor, m.Role)
	})

	t.Run("MemberHasRecords and RemoveMember", func(t *testing.T) {
		has, err := store.MemberHasRecords(ctx, trip.ID, carol.ID)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			TripID: trip.ID, PayerID: owner.ID, Amount: decimal.NewFromInt(30), Currency: "USD",
			SplitWith: []string{bob.ID}, CreatedBy: "user-1",
		}))
		has, err = store.MemberHasRecords(ctx, trip.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, has)

		require.NoError(t, store.RemoveMember(ctx, trip.ID, carol.ID))
		_, err = store.GetMember(ctx, trip.ID, carol.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, owner := createTrip(t, store, "user-1")

	original := &models.Expense{
		TripID:      trip.ID,
		Description: "Ryokan",
		PayerID:     owner.ID,
		Amount:      decimal.RequireFromString("45000"),
		Currency:    "JPY",
		SplitWith:   []string{"m-b", "m-c", "m-b"},
		CreatedBy:   "user-1",
	}

	t.Run("CreateExpense and GetExpense", func(t *testing.T) {
		require.NoError(t, store.CreateExpense(ctx, original))
		assert.NotEmpty(t, original.ID)

		got, err := store.GetExpense(ctx, trip.ID, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ryokan", got.Description)
		assert.True(t, got.Amount.Equal(original.Amount))
		assert.Equal(t, []string{"m-b", "m-c"}, got.SplitWith)
	})

	t.Run("UpdateExpense replaces splits", func(t *testing.T) {
		original.Amount = decimal.RequireFromString("12.34")
		original.Currency = "USD"
		original.SplitWith = []string{"m-c"}
		require.NoError(t, store.UpdateExpense(ctx, original))

		got, err := store.GetExpense(ctx, trip.ID, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "12.34", got.Amount.String())
		assert.Equal(t, []string{"m-c"}, got.SplitWith)
	})

	t.Run("ListExpenses keeps order and splits", func(t *testing.T) {
		second := &models.Expense{
			TripID: trip.ID, Description: "Taxi", PayerID: owner.ID, Amount: decimal.NewFromInt(3000),
			Currency: "JPY", SplitWith: []string{"m-b"}, CreatedBy: "user-1",
		}
		require.NoError(t, store.CreateExpense(ctx, second))

		expenses, err := store.ListExpenses(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, original.ID, expenses[0].ID)
		assert.Equal(t, []string{"m-c"}, expenses[0].SplitWith)
		assert.Equal(t, []string{"m-b"}, expenses[1].SplitWith)
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		require.NoError(t, store.DeleteExpense(ctx, trip.ID, original.ID))
		_, err := store.GetExpense(ctx, trip.ID, original.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteExpense(ctx, trip.ID, original.ID), storage.ErrNotFound)
	})
}

func TestSQLiteStore_PaymentsAndInvites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip, owner := createTrip(t, store, "user-1")

	t.Run("payments round trip", func(t *testing.T) {
		p := &models.Payment{
			TripID: trip.ID, FromMemberID: "m-b", ToMemberID: owner.ID,
			Amount: decimal.RequireFromString("20.50"), Currency: "USD", CreatedBy: "user-1", Note: "cash",
		}
		require.NoError(t, store.CreatePayment(ctx, p))

		payments, err := store.ListPayments(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, "cash", payments[0].Note)
		assert.True(t, payments[0].Amount.Equal(p.Amount))

		require.NoError(t, store.DeletePayment(ctx, trip.ID, p.ID))
		payments, err = store.ListPayments(ctx, trip.ID)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})

	t.Run("invite can be redeemed once", func(t *testing.T) {
		now := time.Now().Unix()
		inv := &models.Invite{TripID: trip.ID, CodeHash: "hash", Role: models.RoleEditor, CreatedBy: "user-1", ExpiresAt: now + 3600}
		require.NoError(t, store.CreateInvite(ctx, inv))

		open, err := store.ListOpenInvites(ctx, trip.ID, now)
		require.NoError(t, err)
		require.Len(t, open, 1)

		member := &models.Member{TripID: trip.ID, UserID: "user-2", DisplayName: "Bob", Role: inv.Role}
		require.NoError(t, store.RedeemInvite(ctx, inv.ID, "user-2", member))

		again := &models.Member{TripID: trip.ID, UserID: "user-3", DisplayName: "Eve", Role: inv.Role}
		assert.ErrorIs(t, store.RedeemInvite(ctx, inv.ID, "user-3", again), storage.ErrConflict)

		open, err = store.ListOpenInvites(ctx, trip.ID, now)
		require.NoError(t, err)
		assert.Empty(t, open)
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("Alice@Example.com", "Alice", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)

	assert.ErrorIs(t, store.CreateUser(ctx, models.NewUser("alice@example.com", "Dup", "hash")), storage.ErrConflict)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGenerateTripName(t *testing.T) {
	at := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		settings currency.Settings
		want     string
	}{
		{currency.Settings{HomeCurrency: "USD", LocalCurrency: "USD"}, "Trip - Mar 14, 2026"},
		{kyoto, "JPY trip - Mar 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, generateTripName(tt.settings, at))
		})
	}
}
