package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/groups"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
)

// connectCode maps a domain error to its Connect status code.
func connectCode(err error) connect.Code {
	switch models.KindOf(err) {
	case models.KindNotFound:
		return connect.CodeNotFound
	case models.KindConflict:
		if errors.Is(err, models.ErrVersionConflict) {
			return connect.CodeAborted
		}
		return connect.CodeAlreadyExists
	case models.KindValidation:
		return connect.CodeInvalidArgument
	case models.KindPrecondition:
		return connect.CodeFailedPrecondition
	case models.KindForbidden:
		return connect.CodePermissionDenied
	default:
		return connect.CodeInternal
	}
}

// fail logs err for procedure and converts it to a Connect error. Client
// errors log at warn level, everything else at error.
func fail(ctx context.Context, procedure string, err error) error {
	code := connectCode(err)
	if code == connect.CodeInternal {
		slog.ErrorContext(ctx, procedure+" failed", "error", err)
	} else {
		slog.WarnContext(ctx, procedure+" rejected", "code", code.String(), "error", err)
	}
	return connect.NewError(code, err)
}

// actorFrom returns the authenticated caller placed in ctx by the auth
// interceptor.
func actorFrom(ctx context.Context) (groups.Actor, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return groups.Actor{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return groups.Actor{UserID: userID, Name: middleware.GetDisplayName(ctx)}, nil
}
