package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/toma1133/travel-app-sub001/internal/auth"
	"github.com/toma1133/travel-app-sub001/internal/cache"
	"github.com/toma1133/travel-app-sub001/internal/currency"
	"github.com/toma1133/travel-app-sub001/internal/middleware"
	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/internal/rpc"
	"github.com/toma1133/travel-app-sub001/internal/storage"
	"github.com/toma1133/travel-app-sub001/pkg/api"
)

// inviteTTL is how long an invite code stays redeemable.
const inviteTTL = 7 * 24 * time.Hour

// TripService implements the TripService RPC interface: trips, their
// currency settings and membership.
type TripService struct {
	store       storage.Store
	settlements *cache.Loader
}

// NewTripService creates a TripService. settlements is invalidated whenever
// a change affects a trip's balances.
func NewTripService(store storage.Store, settlements *cache.Loader) *TripService {
	return &TripService{store: store, settlements: settlements}
}

// Mount registers the handlers on mux.
func (s *TripService) Mount(mux *http.ServeMux, opts ...connect.HandlerOption) {
	rpc.Mount(mux, api.TripServiceCreateTripProcedure, s.CreateTrip, opts...)
	rpc.Mount(mux, api.TripServiceGetTripProcedure, s.GetTrip, opts...)
	rpc.Mount(mux, api.TripServiceListTripsProcedure, s.ListTrips, opts...)
	rpc.Mount(mux, api.TripServiceUpdateCurrencySettingsProcedure, s.UpdateCurrencySettings, opts...)
	rpc.Mount(mux, api.TripServiceDeleteTripProcedure, s.DeleteTrip, opts...)
	rpc.Mount(mux, api.TripServiceAddMemberProcedure, s.AddMember, opts...)
	rpc.Mount(mux, api.TripServiceUpdateMemberRoleProcedure, s.UpdateMemberRole, opts...)
	rpc.Mount(mux, api.TripServiceRemoveMemberProcedure, s.RemoveMember, opts...)
	rpc.Mount(mux, api.TripServiceCreateInviteProcedure, s.CreateInvite, opts...)
	rpc.Mount(mux, api.TripServiceJoinTripProcedure, s.JoinTrip, opts...)
}

// validateSettings normalizes currency settings supplied by a caller.
func validateSettings(home, local string, rate decimal.Decimal) (currency.Settings, error) {
	settings := currency.Settings{HomeCurrency: home, LocalCurrency: local, ExchangeRate: rate}
	settings, err := settings.Validate()
	if err != nil {
		return settings, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return settings, nil
}

// displayNameFor picks the name a user appears under on a trip.
func (s *TripService) displayNameFor(ctx context.Context, userID, requested string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err == nil && user.DisplayName != "" {
		return user.DisplayName
	}
	if email := middleware.GetEmail(ctx); email != "" {
		return email
	}
	return userID
}

// CreateTrip creates a trip with the caller as its owner.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := validateSettings(req.Msg.HomeCurrency, req.Msg.LocalCurrency, req.Msg.ExchangeRate)
	if err != nil {
		slog.Warn("CreateTrip rejected", "error", err)
		return nil, err
	}

	trip := &models.Trip{
		Name:      strings.TrimSpace(req.Msg.Name),
		Currency:  settings,
		CreatedBy: userID,
	}
	owner := &models.Member{
		UserID:      userID,
		DisplayName: s.displayNameFor(ctx, userID, req.Msg.DisplayName),
		Role:        models.RoleOwner,
	}
	if err := s.store.CreateTrip(ctx, trip, owner); err != nil {
		return nil, storageError("CreateTrip", err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "user_id", userID,
		"home_currency", settings.HomeCurrency, "local_currency", settings.LocalCurrency)
	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip), Member: toAPIMember(owner)}), nil
}

// GetTrip returns a trip and its members to any member.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleViewer)
	if err != nil {
		return nil, err
	}

	members, err := s.store.ListMembers(ctx, access.trip.ID)
	if err != nil {
		return nil, storageError("ListMembers", err)
	}
	apiMembers := make([]*api.Member, len(members))
	for i, m := range members {
		apiMembers[i] = toAPIMember(m)
	}

	return connect.NewResponse(&api.GetTripResponse{
		Trip:    toAPITrip(access.trip),
		Members: apiMembers,
		Role:    string(access.member.Role),
	}), nil
}

// ListTrips returns the trips the caller belongs to, newest first.
func (s *TripService) ListTrips(ctx context.Context, _ *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	trips, err := s.store.ListTripsForUser(ctx, userID)
	if err != nil {
		return nil, storageError("ListTrips", err)
	}
	out := make([]*api.Trip, len(trips))
	for i, t := range trips {
		out[i] = toAPITrip(t)
	}
	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

// strandedRecords counts the trip's expenses and payments recorded in a
// currency that settings no longer supports.
func (s *TripService) strandedRecords(ctx context.Context, tripID string, settings currency.Settings) (int, error) {
	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return 0, err
	}
	payments, err := s.store.ListPayments(ctx, tripID)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range expenses {
		if !settings.Supports(e.Currency) {
			n++
		}
	}
	for _, p := range payments {
		if !settings.Supports(p.Currency) {
			n++
		}
	}
	return n, nil
}

// UpdateCurrencySettings replaces a trip's currencies and exchange rate.
// Existing expenses keep their recorded currency; the next settlement
// converts them at the new rate. A change that would drop a currency still
// used by recorded expenses or payments is refused.
func (s *TripService) UpdateCurrencySettings(ctx context.Context, req *connect.Request[api.UpdateCurrencySettingsRequest]) (*connect.Response[api.UpdateCurrencySettingsResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	settings, err := validateSettings(req.Msg.HomeCurrency, req.Msg.LocalCurrency, req.Msg.ExchangeRate)
	if err != nil {
		slog.Warn("UpdateCurrencySettings rejected", "trip_id", access.trip.ID, "error", err)
		return nil, err
	}

	stranded, err := s.strandedRecords(ctx, access.trip.ID, settings)
	if err != nil {
		return nil, storageError("ListRecords", err)
	}
	if stranded > 0 {
		slog.Warn("UpdateCurrencySettings rejected", "trip_id", access.trip.ID, "stranded_records", stranded)
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("%d expenses or payments use a currency the new settings drop", stranded))
	}

	if err := s.store.UpdateTripCurrency(ctx, access.trip.ID, settings); err != nil {
		return nil, storageError("UpdateTripCurrency", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	trip, err := s.store.GetTrip(ctx, access.trip.ID)
	if err != nil {
		return nil, storageError("GetTrip", err)
	}
	slog.Info("Currency settings updated", "trip_id", trip.ID,
		"home_currency", settings.HomeCurrency, "local_currency", settings.LocalCurrency,
		"exchange_rate", settings.ExchangeRate.String())
	return connect.NewResponse(&api.UpdateCurrencySettingsResponse{Trip: toAPITrip(trip)}), nil
}

// DeleteTrip removes a trip and all its records. Owner only.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleOwner)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteTrip(ctx, access.trip.ID); err != nil {
		return nil, storageError("DeleteTrip", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Trip deleted", "trip_id", access.trip.ID, "user_id", access.userID)
	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}

// AddMember adds a person to the trip, optionally linked to an account.
func (s *TripService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleOwner)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.DisplayName)
	if name == "" {
		return nil, invalidArgument("display_name required")
	}
	role, err := models.ParseRole(req.Msg.Role)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	member := &models.Member{
		TripID:      access.trip.ID,
		UserID:      req.Msg.UserID,
		DisplayName: name,
		Role:        role,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, storageError("AddMember", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Member added", "trip_id", access.trip.ID, "member_id", member.ID, "role", role)
	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(member)}), nil
}

// lastOwner reports whether member is the trip's only owner.
func (s *TripService) lastOwner(ctx context.Context, member *models.Member) (bool, error) {
	if member.Role != models.RoleOwner {
		return false, nil
	}
	members, err := s.store.ListMembers(ctx, member.TripID)
	if err != nil {
		return false, err
	}
	owners := 0
	for _, m := range members {
		if m.Role == models.RoleOwner {
			owners++
		}
	}
	return owners <= 1, nil
}

// UpdateMemberRole changes a member's role. The last owner keeps the role.
func (s *TripService) UpdateMemberRole(ctx context.Context, req *connect.Request[api.UpdateMemberRoleRequest]) (*connect.Response[api.UpdateMemberRoleResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	if req.Msg.Role == "" {
		return nil, invalidArgument("role required")
	}
	role, err := models.ParseRole(req.Msg.Role)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	member, err := s.store.GetMember(ctx, access.trip.ID, req.Msg.MemberID)
	if err != nil {
		return nil, storageError("GetMember", err)
	}
	if role != models.RoleOwner {
		last, err := s.lastOwner(ctx, member)
		if err != nil {
			return nil, storageError("ListMembers", err)
		}
		if last {
			return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("a trip needs at least one owner"))
		}
	}

	if err := s.store.UpdateMemberRole(ctx, access.trip.ID, member.ID, role); err != nil {
		return nil, storageError("UpdateMemberRole", err)
	}
	member.Role = role

	slog.Info("Member role updated", "trip_id", access.trip.ID, "member_id", member.ID, "role", role)
	return connect.NewResponse(&api.UpdateMemberRoleResponse{Member: toAPIMember(member)}), nil
}

// RemoveMember removes a member who has no expenses or payments on the trip.
func (s *TripService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleOwner)
	if err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, access.trip.ID, req.Msg.MemberID)
	if err != nil {
		return nil, storageError("GetMember", err)
	}

	last, err := s.lastOwner(ctx, member)
	if err != nil {
		return nil, storageError("ListMembers", err)
	}
	if last {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("cannot remove the last owner"))
	}

	hasRecords, err := s.store.MemberHasRecords(ctx, access.trip.ID, member.ID)
	if err != nil {
		return nil, storageError("MemberHasRecords", err)
	}
	if hasRecords {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("member %s is referenced by expenses or payments", member.DisplayName))
	}

	if err := s.store.RemoveMember(ctx, access.trip.ID, member.ID); err != nil {
		return nil, storageError("RemoveMember", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Member removed", "trip_id", access.trip.ID, "member_id", member.ID)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// CreateInvite issues a one-time code for joining the trip.
func (s *TripService) CreateInvite(ctx context.Context, req *connect.Request[api.CreateInviteRequest]) (*connect.Response[api.CreateInviteResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	role, err := models.ParseRole(req.Msg.Role)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if role == models.RoleOwner {
		return nil, invalidArgument("invites cannot grant the owner role")
	}

	code, hash, err := auth.GenerateInviteCode()
	if err != nil {
		slog.Error("CreateInvite failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	invite := &models.Invite{
		TripID:    access.trip.ID,
		CodeHash:  hash,
		Role:      role,
		CreatedBy: access.userID,
		ExpiresAt: time.Now().Add(inviteTTL).Unix(),
	}
	if err := s.store.CreateInvite(ctx, invite); err != nil {
		return nil, storageError("CreateInvite", err)
	}

	slog.Info("Invite created", "trip_id", access.trip.ID, "invite_id", invite.ID, "role", role)
	return connect.NewResponse(&api.CreateInviteResponse{
		InviteID:  invite.ID,
		Code:      code,
		ExpiresAt: invite.ExpiresAt,
	}), nil
}

// JoinTrip redeems an invite code and adds the caller to the trip.
func (s *TripService) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(req.Msg.Code))
	if req.Msg.TripID == "" || code == "" {
		return nil, invalidArgument("trip_id and code required")
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storageError("GetTrip", err)
	}
	if _, err := s.store.GetMemberByUser(ctx, trip.ID, userID); err == nil {
		return nil, connect.NewError(connect.CodeAlreadyExists, fmt.Errorf("already a member of trip %s", trip.ID))
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, storageError("GetMemberByUser", err)
	}

	invites, err := s.store.ListOpenInvites(ctx, trip.ID, time.Now().Unix())
	if err != nil {
		return nil, storageError("ListOpenInvites", err)
	}
	var invite *models.Invite
	for _, inv := range invites {
		if auth.MatchInviteCode(inv.CodeHash, code) {
			invite = inv
			break
		}
	}
	if invite == nil {
		slog.Warn("JoinTrip rejected", "trip_id", trip.ID, "user_id", userID)
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("invalid or expired invite code"))
	}

	member := &models.Member{
		TripID:      trip.ID,
		UserID:      userID,
		DisplayName: s.displayNameFor(ctx, userID, req.Msg.DisplayName),
		Role:        invite.Role,
	}
	if err := s.store.RedeemInvite(ctx, invite.ID, userID, member); err != nil {
		return nil, storageError("RedeemInvite", err)
	}
	s.settlements.Invalidate(ctx, trip.ID)

	slog.Info("Trip joined", "trip_id", trip.ID, "user_id", userID, "member_id", member.ID, "role", member.Role)
	return connect.NewResponse(&api.JoinTripResponse{Trip: toAPITrip(trip), Member: toAPIMember(member)}), nil
}
