// Package mongo provides a MongoDB-backed implementation of storage.Store.
// Groups are stored as single documents; optimistic concurrency filters
// replacements on the stored version.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Collection name constants.
const (
	colGroups = "splitledger_groups"
	colUsers  = "splitledger_users"
)

// compile-time interface check
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, selects database and ensures indexes exist.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("splitledger/mongo: connect: %w", err)
	}
	s := New(client, database)
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// New wraps an existing client. Call Migrate before first use.
func New(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

// Migrate creates indexes for all collections.
func (s *Store) Migrate(ctx context.Context) error {
	for col, idx := range migrationIndexes() {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("splitledger/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("splitledger/mongo: ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) groups() *mongo.Collection { return s.db.Collection(colGroups) }
func (s *Store) users() *mongo.Collection  { return s.db.Collection(colUsers) }

// ==================== Group Store ====================

func (s *Store) CreateGroup(ctx context.Context, g *models.Group) error {
	m := toGroupModel(g)
	m.Version = 1
	if _, err := s.groups().InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", models.ErrDuplicateCode, g.Code)
		}
		return fmt.Errorf("splitledger/mongo: create group: %w", err)
	}
	g.Version = 1
	return nil
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	g, err := s.findGroup(ctx, bson.M{"_id": groupID})
	if isNoDocuments(err) {
		return nil, fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	return g, err
}

func (s *Store) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	code = models.NormalizeCode(code)
	g, err := s.findGroup(ctx, bson.M{"code": code})
	if isNoDocuments(err) {
		return nil, fmt.Errorf("%w: code %s", models.ErrGroupNotFound, code)
	}
	return g, err
}

func (s *Store) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	code = models.NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", models.ErrInvalidInvite)
	}
	g, err := s.findGroup(ctx, bson.M{"invite_code": code})
	if isNoDocuments(err) {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInvite, code)
	}
	return g, err
}

func (s *Store) GroupCodeExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, bson.M{"code": models.NormalizeCode(code)})
}

func (s *Store) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, bson.M{"invite_code": models.NormalizeCode(code)})
}

func (s *Store) UpdateGroup(ctx context.Context, g *models.Group) error {
	m := toGroupModel(g)
	m.Version = g.Version + 1

	res, err := s.groups().ReplaceOne(ctx, bson.M{"_id": g.ID, "version": g.Version}, m)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: invite %s", models.ErrDuplicateCode, g.InviteCode)
		}
		return fmt.Errorf("splitledger/mongo: update group: %w", err)
	}
	if res.MatchedCount == 0 {
		found, err := s.exists(ctx, bson.M{"_id": g.ID})
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", models.ErrGroupNotFound, g.ID)
		}
		return fmt.Errorf("%w: %s at version %d", models.ErrVersionConflict, g.ID, g.Version)
	}

	g.Version = m.Version
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.groups().DeleteOne(ctx, bson.M{"_id": groupID})
	if err != nil {
		return fmt.Errorf("splitledger/mongo: delete group: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	return nil
}

func (s *Store) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	filter := bson.M{"members": bson.M{"$elemMatch": bson.M{"user_id": userID, "is_active": true}}}
	cur, err := s.groups().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("splitledger/mongo: list groups: %w", err)
	}

	var ms []groupModel
	if err := cur.All(ctx, &ms); err != nil {
		return nil, fmt.Errorf("splitledger/mongo: list groups: %w", err)
	}

	result := make([]*models.Group, len(ms))
	for i := range ms {
		result[i] = fromGroupModel(&ms[i])
	}
	return result, nil
}

func (s *Store) findGroup(ctx context.Context, filter bson.M) (*models.Group, error) {
	var m groupModel
	if err := s.groups().FindOne(ctx, filter).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, err
		}
		return nil, fmt.Errorf("splitledger/mongo: get group: %w", err)
	}
	return fromGroupModel(&m), nil
}

func (s *Store) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := s.groups().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("splitledger/mongo: count groups: %w", err)
	}
	return n > 0, nil
}

// ==================== User Store ====================

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.users().InsertOne(ctx, toUserModel(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", models.ErrEmailExists, u.Email)
		}
		return fmt.Errorf("splitledger/mongo: create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email}, email)
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": userID}, userID)
}

func (s *Store) AddGroupToUser(ctx context.Context, userID, groupID string) error {
	return s.updateUser(ctx, userID, bson.M{"$addToSet": bson.M{"groups": groupID}})
}

func (s *Store) RemoveGroupFromUser(ctx context.Context, userID, groupID string) error {
	_, err := s.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"groups": groupID}})
	if err != nil {
		return fmt.Errorf("splitledger/mongo: remove group from user: %w", err)
	}
	return nil
}

func (s *Store) RemoveGroupFromUsers(ctx context.Context, groupID string) error {
	_, err := s.users().UpdateMany(ctx, bson.M{"groups": groupID}, bson.M{"$pull": bson.M{"groups": groupID}})
	if err != nil {
		return fmt.Errorf("splitledger/mongo: remove group from users: %w", err)
	}
	return nil
}

func (s *Store) AddFriend(ctx context.Context, userID, friendID string) error {
	for _, id := range []string{userID, friendID} {
		if _, err := s.GetUserByID(ctx, id); err != nil {
			return err
		}
	}
	if err := s.updateUser(ctx, userID, bson.M{"$addToSet": bson.M{"friends": friendID}}); err != nil {
		return err
	}
	return s.updateUser(ctx, friendID, bson.M{"$addToSet": bson.M{"friends": userID}})
}

func (s *Store) ListFriends(ctx context.Context, userID string) ([]*models.User, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.Friends) == 0 {
		return nil, nil
	}

	cur, err := s.users().Find(ctx,
		bson.M{"_id": bson.M{"$in": u.Friends}},
		options.Find().SetSort(bson.D{{Key: "display_name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("splitledger/mongo: list friends: %w", err)
	}

	var ms []userModel
	if err := cur.All(ctx, &ms); err != nil {
		return nil, fmt.Errorf("splitledger/mongo: list friends: %w", err)
	}
	result := make([]*models.User, len(ms))
	for i := range ms {
		result[i] = fromUserModel(&ms[i])
	}
	return result, nil
}

func (s *Store) findUser(ctx context.Context, filter bson.M, key string) (*models.User, error) {
	var m userModel
	if err := s.users().FindOne(ctx, filter).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, key)
		}
		return nil, fmt.Errorf("splitledger/mongo: get user: %w", err)
	}
	return fromUserModel(&m), nil
}

func (s *Store) updateUser(ctx context.Context, userID string, update bson.M) error {
	update["$set"] = bson.M{"updated_at": now()}
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("splitledger/mongo: update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
	}
	return nil
}

// ==================== Helpers ====================

func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colGroups: {
			{
				Keys:    bson.D{{Key: "code", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "invite_code", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
			{Keys: bson.D{{Key: "members.user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "groups", Value: 1}}},
		},
	}
}
