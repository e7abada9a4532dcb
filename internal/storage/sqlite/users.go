package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", models.ErrEmailExists, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.getUser(ctx, "email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, email)
	}
	return user, err
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.getUser(ctx, "id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, id)
	}
	return user, err
}

func (s *SQLiteStore) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users
		WHERE ` + where

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Groups, err = s.queryStrings(ctx,
		"SELECT group_id FROM user_groups WHERE user_id = ? ORDER BY group_id", user.ID); err != nil {
		return nil, err
	}
	if user.Friends, err = s.queryStrings(ctx,
		"SELECT friend_id FROM friends WHERE user_id = ? ORDER BY friend_id", user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// AddGroupToUser records groupID in the user's group list.
func (s *SQLiteStore) AddGroupToUser(ctx context.Context, userID, groupID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO user_groups (user_id, group_id) VALUES (?, ?)",
		userID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to add group to user: %w", err)
	}
	return nil
}

// RemoveGroupFromUser drops groupID from the user's group list.
func (s *SQLiteStore) RemoveGroupFromUser(ctx context.Context, userID, groupID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM user_groups WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove group from user: %w", err)
	}
	return nil
}

// RemoveGroupFromUsers drops groupID from every user's group list.
func (s *SQLiteStore) RemoveGroupFromUsers(ctx context.Context, groupID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM user_groups WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to remove group from users: %w", err)
	}
	return nil
}

// AddFriend inserts the friendship in both directions.
func (s *SQLiteStore) AddFriend(ctx context.Context, userID, friendID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, pair := range [][2]string{{userID, friendID}, {friendID, userID}} {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO friends (user_id, friend_id, created_at) VALUES (?, ?, ?)",
			pair[0], pair[1], now,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: %s", models.ErrUserNotFound, pair[1])
			}
			return fmt.Errorf("failed to add friend: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListFriends returns userID's friends ordered by display name.
func (s *SQLiteStore) ListFriends(ctx context.Context, userID string) ([]*models.User, error) {
	ids, err := s.queryStrings(ctx,
		`SELECT f.friend_id FROM friends f
		 JOIN users u ON u.id = f.friend_id
		 WHERE f.user_id = ?
		 ORDER BY u.display_name`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	friends := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.GetUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		friends = append(friends, u)
	}
	return friends, nil
}

// queryStrings runs a single-column query and collects the results.
func (s *SQLiteStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
