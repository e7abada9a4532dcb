package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrMissingName):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.AuthResponse{User: toAPIUser(user), Token: token}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.AuthResponse{User: toAPIUser(user), Token: token}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, fail(ctx, "GetCurrentUser", err)
	}
	return connect.NewResponse(&api.UserResponse{User: toAPIUser(user)}), nil
}

// AddFriend links the caller and the user registered under req.Email.
// Friendship is mutual.
func (s *AuthService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.UserResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	friend, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Msg.Email)))
	if err != nil {
		return nil, fail(ctx, "AddFriend", err)
	}
	if friend.ID == actor.UserID {
		return nil, fail(ctx, "AddFriend", &models.ValidationError{Field: "email", Message: "cannot add yourself as a friend"})
	}
	if err := s.users.AddFriend(ctx, actor.UserID, friend.ID); err != nil {
		return nil, fail(ctx, "AddFriend", err)
	}

	s.logger.Info("Friend added", "user_id", actor.UserID, "friend_id", friend.ID)
	return connect.NewResponse(&api.UserResponse{User: toAPIUser(friend)}), nil
}

// ListFriends returns the caller's friends ordered by display name.
func (s *AuthService) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	friends, err := s.users.ListFriends(ctx, actor.UserID)
	if err != nil {
		return nil, fail(ctx, "ListFriends", err)
	}
	out := make([]*api.User, len(friends))
	for i, f := range friends {
		out[i] = toAPIUser(f)
	}
	return connect.NewResponse(&api.ListFriendsResponse{Friends: out}), nil
}
