// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// Each group is stored as one JSON document next to the columns that need
// indexing (code, invite code, version). Active memberships are mirrored into
// group_members so groups can be listed per user.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dsnFor(dbPath)

	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dsnFor applies per-connection pragmas. Foreign keys and the busy timeout
// must be set on every pooled connection, not once.
func dsnFor(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGroup inserts a new group document with version 1.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	doc, err := json.Marshal(group)
	if err != nil {
		return fmt.Errorf("failed to encode group: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, code, invite_code, title, doc, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		group.ID, group.Code, nullable(group.InviteCode), group.Title, string(doc), group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", models.ErrDuplicateCode, group.Code)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if err := syncMembers(ctx, tx, group); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	group.Version = 1
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	g, err := s.queryGroup(ctx, "id = ?", groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	return g, err
}

// GetGroupByCode retrieves a group by its join code.
func (s *SQLiteStore) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	code = models.NormalizeCode(code)
	g, err := s.queryGroup(ctx, "code = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: code %s", models.ErrGroupNotFound, code)
	}
	return g, err
}

// GetGroupByInviteCode retrieves a group by its current invite code.
func (s *SQLiteStore) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	code = models.NormalizeCode(code)
	g, err := s.queryGroup(ctx, "invite_code = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInvite, code)
	}
	return g, err
}

// GroupCodeExists reports whether a group uses code.
func (s *SQLiteStore) GroupCodeExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, "SELECT 1 FROM groups WHERE code = ?", models.NormalizeCode(code))
}

// InviteCodeExists reports whether a group carries the invite code.
func (s *SQLiteStore) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, "SELECT 1 FROM groups WHERE invite_code = ?", models.NormalizeCode(code))
}

// UpdateGroup replaces the group document if the stored version matches.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	next := *group
	next.Version = group.Version + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode group: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE groups SET invite_code = ?, title = ?, doc = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		nullable(next.InviteCode), next.Title, string(doc), next.UpdatedAt, next.ID, group.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invite %s", models.ErrDuplicateCode, next.InviteCode)
		}
		return fmt.Errorf("failed to update group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		var version int64
		err := tx.QueryRowContext(ctx, "SELECT version FROM groups WHERE id = ?", group.ID).Scan(&version)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", models.ErrGroupNotFound, group.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to read group version: %w", err)
		}
		return fmt.Errorf("%w: %s at version %d, have %d", models.ErrVersionConflict, group.ID, version, group.Version)
	}

	if err := syncMembers(ctx, tx, &next); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	*group = next
	return nil
}

// DeleteGroup removes a group; its member index rows cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	return nil
}

// ListGroupsByMember returns groups where userID is an active member, newest first.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.doc, g.version FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

func (s *SQLiteStore) queryGroup(ctx context.Context, where string, arg any) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx, "SELECT doc, version FROM groups WHERE "+where, arg)
	return scanGroup(row)
}

func (s *SQLiteStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanGroup decodes a (doc, version) row. The version column is
// authoritative over the copy inside the document.
func scanGroup(row scanner) (*models.Group, error) {
	var doc string
	var version int64
	if err := row.Scan(&doc, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}
	g := &models.Group{}
	if err := json.Unmarshal([]byte(doc), g); err != nil {
		return nil, fmt.Errorf("failed to decode group: %w", err)
	}
	g.Version = version
	return g, nil
}

// syncMembers rewrites the active-member index for group.
func syncMembers(ctx context.Context, tx *sql.Tx, group *models.Group) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}
	for _, m := range group.ActiveMembers() {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id) VALUES (?, ?)",
			group.ID, m.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
