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

// AuthCodeRepository implements domain.AuthCodeRepository on MongoDB.
type AuthCodeRepository struct {
	authCodes *mongo.Collection
}

func NewAuthCodeRepository(ctx context.Context, db *mongo.Database) (*AuthCodeRepository, error) {
	r := &AuthCodeRepository{authCodes: db.Collection(CodesCollection)}
	if err := r.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create auth code indexes: %w", err)
	}
	return r, nil
}

func (r *AuthCodeRepository) createIndexes(ctx context.Context) error {
	// Codes are kept for audit well past expiry; the TTL index reaps them
	// after thirty days, not at the ten-minute validity boundary.
	_, err := r.authCodes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(30 * 24 * 3600),
	})
	return err
}

func (r *AuthCodeRepository) CreateAuthCode(ctx context.Context, code *domain.AuthCode) (string, error) {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	code.CreatedAt = time.Now().UTC()

	_, err := r.authCodes.InsertOne(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("clientID", code.ClientID).Msg("Error saving authorization code")
		return "", errors.NewStore(err)
	}

	log.Debug().Str("code", code.ID).Str("userID", code.UserID).Msg("Authorization code saved")
	return code.ID, nil
}

// GetAuthCode binds the lookup to both the code id and the client id, so a
// mismatched client fails identically to a nonexistent code.
func (r *AuthCodeRepository) GetAuthCode(ctx context.Context, id, clientID string) (*domain.AuthCode, error) {
	var code domain.AuthCode
	err := r.authCodes.FindOne(ctx, bson.M{"_id": id, "client_id": clientID}).Decode(&code)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrCodeNotFound
		}
		log.Error().Err(err).Str("code", id).Msg("Error retrieving authorization code")
		return nil, errors.NewStore(err)
	}
	return &code, nil
}

// ClaimAuthCode performs the single-use transition. The filter matches only
// an unused code, so of any number of concurrent claims exactly one update
// succeeds; all others observe MatchedCount == 0.
func (r *AuthCodeRepository) ClaimAuthCode(ctx context.Context, id string) (bool, error) {
	filter := bson.M{"_id": id, "used": false}
	update := bson.M{"$set": bson.M{"used": true}}
	result, err := r.authCodes.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Error().Err(err).Str("code", id).Msg("Error marking authorization code as used")
		return false, errors.NewStore(err)
	}
	if result.MatchedCount == 0 {
		return false, nil
	}
	log.Debug().Str("code", id).Msg("Authorization code marked as used")
	return true, nil
}

var _ domain.AuthCodeRepository = (*AuthCodeRepository)(nil)
