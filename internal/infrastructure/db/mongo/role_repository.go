package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/identity-service/internal/core/domain"
)

const roleCollection = "roles"

// RoleRepository persists the seeded role rows. The name is unique and rows
// are never mutated after creation.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(roleCollection)}
}

// EnsureRoleIndexes creates the unique role name index. Safe to call on
// every startup.
func EnsureRoleIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(roleCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return fmt.Errorf("create role indexes: %w", err)
	}
	return nil
}

type mongoRole struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// Ensure upserts the role row keyed by name, so seeding is idempotent even
// when several instances start concurrently.
func (r *RoleRepository) Ensure(ctx context.Context, role domain.Role) error {
	filter := bson.M{"name": string(role)}
	update := bson.M{"$setOnInsert": bson.M{"name": string(role)}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ensure role %s: %w", role, err)
	}
	return nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]*domain.RoleEntry, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*domain.RoleEntry
	for cursor.Next(ctx) {
		var mr mongoRole
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		entries = append(entries, &domain.RoleEntry{ID: mr.ID.Hex(), Name: domain.Role(mr.Name)})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return entries, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name domain.Role) (*domain.RoleEntry, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"name": string(name)}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.RoleEntry{ID: mr.ID.Hex(), Name: domain.Role(mr.Name)}, nil
}

func (r *RoleRepository) ExistsByName(ctx context.Context, name domain.Role) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"name": string(name)}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count roles: %w", err)
	}
	return n > 0, nil
}
