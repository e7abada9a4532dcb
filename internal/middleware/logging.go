package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// LoggingInterceptor logs one line per RPC with the caller and, for requests
// addressing a group, the group id. Client errors log at Warn and server
// errors at Error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			attrs := rpcAttrs(ctx, req, time.Since(start))

			if err == nil {
				slog.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}
			attrs = append(attrs, "code", connect.CodeOf(err).String(), "error", err)
			if serverFault(connect.CodeOf(err)) {
				slog.ErrorContext(ctx, "RPC failed", attrs...)
			} else {
				slog.WarnContext(ctx, "RPC rejected", attrs...)
			}
			return resp, err
		}
	}
}

func rpcAttrs(ctx context.Context, req connect.AnyRequest, d time.Duration) []any {
	attrs := []any{"procedure", req.Spec().Procedure, "duration_ms", d.Milliseconds()}
	if userID := GetUserID(ctx); userID != "" {
		attrs = append(attrs, "user_id", userID, "display_name", GetDisplayName(ctx))
	}
	if msg, ok := req.Any().(api.GroupScoped); ok && msg.GetGroupID() != "" {
		attrs = append(attrs, "group_id", msg.GetGroupID())
	}
	return attrs
}

func serverFault(code connect.Code) bool {
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return true
	}
	return false
}
