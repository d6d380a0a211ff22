package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toma1133/travel-app-sub001/pkg/api"
)

func TestCreateTrip_And_GetTrip(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com", "Alice")
	ctx := context.Background()

	created := alice.createTrip(t, "usd", "jpy", "0.0067")
	assert.Equal(t, "USD", created.Trip.HomeCurrency)
	assert.Equal(t, "JPY", created.Trip.LocalCurrency)
	assert.Equal(t, "owner", created.Member.Role)
	assert.Equal(t, "Alice", created.Member.DisplayName)

	resp, err := alice.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: created.Trip.ID}))
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", resp.Msg.Trip.Name)
	assert.Equal(t, "owner", resp.Msg.Role)
	require.Len(t, resp.Msg.Members, 1)
	assert.Equal(t, alice.id, resp.Msg.Members[0].UserID)

	list, err := alice.trips.ListTrips(ctx, connect.NewRequest(&api.ListTripsRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Trips, 1)
	assert.Equal(t, created.Trip.ID, list.Msg.Trips[0].ID)
}

func TestCreateTrip_Invalid(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com", "Alice")

	tests := []struct {
		name        string
		home, local string
		rate        string
	}{
		{"unknown home currency", "XYZ", "JPY", "0.0067"},
		{"missing home currency", "", "JPY", "0.0067"},
		{"zero rate", "USD", "JPY", "0"},
		{"negative rate", "USD", "JPY", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alice.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
				HomeCurrency: tt.home, LocalCurrency: tt.local, ExchangeRate: amt(tt.rate),
			}))
			requireCode(t, err, connect.CodeInvalidArgument)
		})
	}

	t.Run("single currency needs no rate", func(t *testing.T) {
		resp, err := alice.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
			HomeCurrency: "EUR", LocalCurrency: "EUR",
		}))
		require.NoError(t, err)
		assert.Equal(t, "1", resp.Msg.Trip.ExchangeRate.String())
		assert.True(t, strings.HasPrefix(resp.Msg.Trip.Name, "Trip - "), "generated name %q", resp.Msg.Trip.Name)
	})
}

func TestGetTrip_Access(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com", "Alice")
	mallory := env.register(t, "mallory@example.com", "Mallory")
	trip := alice.createTrip(t, "USD", "JPY", "0.0067").Trip

	_, err := mallory.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{TripID: trip.ID}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = alice.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{TripID: "nonexistent-id"}))
	requireCode(t, err, connect.CodeNotFound)

	_, err = mallory.trips.DeleteTrip(context.Background(), connect.NewRequest(&api.DeleteTripRequest{TripID: trip.ID}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = alice.trips.DeleteTrip(context.Background(), connect.NewRequest(&api.DeleteTripRequest{TripID: trip.ID}))
	require.NoError(t, err)
	_, err = alice.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{TripID: trip.ID}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestUpdateCurrencySettings(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com", "Alice")
	trip := alice.createTrip(t, "USD", "JPY", "0.0067").Trip
	ctx := context.Background()

	resp, err := alice.trips.UpdateCurrencySettings(ctx, connect.NewRequest(&api.UpdateCurrencySettingsRequest{
		TripID: trip.ID, HomeCurrency: "USD", LocalCurrency: "THB", ExchangeRate: amt("0.028"),
	}))
	require.NoError(t, err)
	assert.Equal(t, "THB", resp.Msg.Trip.LocalCurrency)
	assert.Equal(t, "0.028", resp.Msg.Trip.ExchangeRate.String())

	_, err = alice.trips.UpdateCurrencySettings(ctx, connect.NewRequest(&api.UpdateCurrencySettingsRequest{
		TripID: trip.ID, HomeCurrency: "USD", LocalCurrency: "THB", ExchangeRate: amt("0"),
	}))
	requireCode(t, err, connect.CodeInvalidArgument)
}

func TestMembership(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com", "Alice")
	created := alice.createTrip(t, "USD", "USD", "1")
	tripID := created.Trip.ID
	ctx := context.Background()

	bob := alice.addMember(t, tripID, "Bob", "editor")
	carol := alice.addMember(t, tripID, "Carol", "")
	assert.Equal(t, "editor", bob.Role)
	assert.Equal(t, "viewer", carol.Role)

	t.Run("unknown role", func(t *testing.T) {
		_, err := alice.trips.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{
			TripID: tripID, DisplayName: "Dave", Role: "admin",
		}))
		requireCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("last owner cannot be demoted", func(t *testing.T) {
		_, err := alice.trips.UpdateMemberRole(ctx, connect.NewRequest(&api.UpdateMemberRoleRequest{
			TripID: tripID, MemberID: created.Member.ID, Role: "editor",
		}))
		requireCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("promote", func(t *testing.T) {
		resp, err := alice.trips.UpdateMemberRole(ctx, connect.NewRequest(&api.UpdateMemberRoleRequest{
			TripID: tripID, MemberID: carol.ID, Role: "editor",
		}))
		require.NoError(t, err)
		assert.Equal(t, "editor", resp.Msg.Member.Role)
	})

	t.Run("member with expenses cannot be removed", func(t *testing.T) {
		_, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
			TripID: tripID, Description: "Dinner", PayerID: bob.ID, Amount: amt("40"), Currency: "USD",
		}))
		require.NoError(t, err)

		_, err = alice.trips.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{TripID: tripID, MemberID: bob.ID}))
		requireCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("remove", func(t *testing.T) {
		_, err := alice.trips.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{TripID: tripID, MemberID: carol.ID}))
		require.NoError(t, err)

		resp, err := alice.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: tripID}))
		require.NoError(t, err)
		assert.Len(t, resp.Msg.Members, 2)
	})

	t.Run("last owner cannot be removed", func(t *testing.T) {
		_, err := alice.trips.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{TripID: tripID, MemberID: created.Member.ID}))
		requireCode(t, err, connect.CodeFailedPrecondition)
	})
}

func TestInvites(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com", "Alice")
	bob := env.register(t, "bob@example.com", "Bob")
	carol := env.register(t, "carol@example.com", "Carol")
	tripID := alice.createTrip(t, "USD", "JPY", "0.0067").Trip.ID
	ctx := context.Background()

	invite, err := alice.trips.CreateInvite(ctx, connect.NewRequest(&api.CreateInviteRequest{TripID: tripID, Role: "editor"}))
	require.NoError(t, err)
	assert.NotEmpty(t, invite.Msg.Code)

	t.Run("owner role cannot be invited", func(t *testing.T) {
		_, err := alice.trips.CreateInvite(ctx, connect.NewRequest(&api.CreateInviteRequest{TripID: tripID, Role: "owner"}))
		requireCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("wrong code", func(t *testing.T) {
		_, err := bob.trips.JoinTrip(ctx, connect.NewRequest(&api.JoinTripRequest{TripID: tripID, Code: "WRONGCODE2"}))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("join", func(t *testing.T) {
		resp, err := bob.trips.JoinTrip(ctx, connect.NewRequest(&api.JoinTripRequest{
			TripID: tripID, Code: strings.ToLower(invite.Msg.Code),
		}))
		require.NoError(t, err)
		assert.Equal(t, "editor", resp.Msg.Member.Role)
		assert.Equal(t, "Bob", resp.Msg.Member.DisplayName)
		assert.Equal(t, tripID, resp.Msg.Trip.ID)
	})

	t.Run("join twice", func(t *testing.T) {
		_, err := bob.trips.JoinTrip(ctx, connect.NewRequest(&api.JoinTripRequest{TripID: tripID, Code: invite.Msg.Code}))
		requireCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("code is single use", func(t *testing.T) {
		_, err := carol.trips.JoinTrip(ctx, connect.NewRequest(&api.JoinTripRequest{TripID: tripID, Code: invite.Msg.Code}))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("editors cannot invite", func(t *testing.T) {
		_, err := bob.trips.CreateInvite(ctx, connect.NewRequest(&api.CreateInviteRequest{TripID: tripID}))
		requireCode(t, err, connect.CodePermissionDenied)
	})
}
