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

// TokenRepository implements domain.TokenRepository on MongoDB.
type TokenRepository struct {
	tokens *mongo.Collection
}

func NewTokenRepository(ctx context.Context, db *mongo.Database) (*TokenRepository, error) {
	r := &TokenRepository{tokens: db.Collection(TokensCollection)}
	if err := r.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create token indexes: %w", err)
	}
	return r, nil
}

func (r *TokenRepository) createIndexes(ctx context.Context) error {
	_, err := r.tokens.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "access_token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	return err
}

func (r *TokenRepository) StoreToken(ctx context.Context, token *domain.AccessToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	token.CreatedAt = time.Now().UTC()

	_, err := r.tokens.InsertOne(ctx, token)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("access token value collision: %w", err)
		}
		log.Error().Err(err).Str("userID", token.UserID).Msg("Error storing access token")
		return errors.NewStore(err)
	}

	log.Debug().Str("tokenID", token.ID).Str("userID", token.UserID).Msg("Access token stored")
	return nil
}

func (r *TokenRepository) GetTokenByValue(ctx context.Context, value string) (*domain.AccessToken, error) {
	var token domain.AccessToken
	err := r.tokens.FindOne(ctx, bson.M{"access_token": value}).Decode(&token)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrTokenNotFound
		}
		log.Error().Err(err).Msg("Error retrieving access token")
		return nil, errors.NewStore(err)
	}
	return &token, nil
}

var _ domain.TokenRepository = (*TokenRepository)(nil)
