package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/toma1133/travel-app-sub001/internal/auth"
	"github.com/toma1133/travel-app-sub001/internal/middleware"
	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/internal/storage"
)

// ErrPermissionDenied is returned when the caller's role on a trip is too low.
var ErrPermissionDenied = errors.New("permission denied")

// storageError maps a storage failure to a connect error and logs it.
func storageError(op string, err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// callerID returns the authenticated user ID set by middleware.RequireAuth.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// tripAccess is the caller's view of a trip after the role check.
type tripAccess struct {
	userID string
	trip   *models.Trip
	member *models.Member
}

// authorize loads the trip and the caller's membership, and checks that the
// caller holds at least the required role. Non-members get PermissionDenied.
func authorize(ctx context.Context, trips storage.TripStore, tripID string, required models.Role) (*tripAccess, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if tripID == "" {
		return nil, invalidArgument("trip_id required")
	}

	trip, err := trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storageError("GetTrip", err)
	}

	member, err := trips.GetMemberByUser(ctx, tripID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("%w: not a member of trip %s", ErrPermissionDenied, tripID))
	}
	if err != nil {
		return nil, storageError("GetMemberByUser", err)
	}

	if !member.Role.Allows(required) {
		return nil, connect.NewError(connect.CodePermissionDenied,
			fmt.Errorf("%w: %s role required, caller is %s", ErrPermissionDenied, required, member.Role))
	}
	return &tripAccess{userID: userID, trip: trip, member: member}, nil
}
