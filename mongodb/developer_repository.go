package mongodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DeveloperRepository implements domain.DeveloperRepository on MongoDB.
type DeveloperRepository struct {
	devs *mongo.Collection
}

func NewDeveloperRepository(ctx context.Context, db *mongo.Database) (*DeveloperRepository, error) {
	r := &DeveloperRepository{devs: db.Collection(DevsCollection)}
	if err := r.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create developer indexes: %w", err)
	}
	return r, nil
}

func (r *DeveloperRepository) createIndexes(ctx context.Context) error {
	// The unique index is what makes promotion idempotent under concurrent
	// redemption of admin-scoped codes.
	_, err := r.devs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// EnsureDeveloper creates the developer record for userID if absent and
// returns the record that ended up in the store. A concurrent creation
// losing the insert race falls through to the lookup and returns the
// winner's record.
func (r *DeveloperRepository) EnsureDeveloper(ctx context.Context, userID string) (*domain.Developer, error) {
	dev := &domain.Developer{
		ID:        uuid.NewString(),
		UserID:    userID,
		AppIDs:    []string{},
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.devs.InsertOne(ctx, dev)
	if err == nil {
		log.Debug().Str("devID", dev.ID).Str("userID", userID).Msg("Developer record created")
		return dev, nil
	}
	if !isDuplicateKey(err) {
		log.Error().Err(err).Str("userID", userID).Msg("Error creating developer record")
		return nil, errors.NewStore(err)
	}

	return r.GetDeveloperByUserID(ctx, userID)
}

func (r *DeveloperRepository) GetDeveloperByUserID(ctx context.Context, userID string) (*domain.Developer, error) {
	var dev domain.Developer
	err := r.devs.FindOne(ctx, bson.M{"user_id": userID}).Decode(&dev)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrUserNotFound
		}
		log.Error().Err(err).Str("userID", userID).Msg("Error retrieving developer record")
		return nil, errors.NewStore(err)
	}
	return &dev, nil
}

var _ domain.DeveloperRepository = (*DeveloperRepository)(nil)
