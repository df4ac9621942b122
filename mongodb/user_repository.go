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

// UserRepository implements domain.UserRepository on MongoDB.
type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(ctx context.Context, db *mongo.Database) (*UserRepository, error) {
	r := &UserRepository{users: db.Collection(UsersCollection)}
	if err := r.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}
	return r, nil
}

func (r *UserRepository) createIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "discord_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"discord_id": bson.M{"$type": "string"}}),
		},
	})
	return err
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if isDuplicateKey(err) {
			return "", errors.ErrDuplicateUser
		}
		log.Error().Err(err).Str("email", user.Email).Msg("Error inserting user")
		return "", errors.NewStore(err)
	}

	log.Debug().Str("userID", user.ID).Str("username", user.Username).Msg("User created")
	return user.ID, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetUserByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}})
}

func (r *UserRepository) GetUserByEmailOrDiscordID(ctx context.Context, email, discordID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"discord_id": discordID},
	}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrUserNotFound
		}
		log.Error().Err(err).Msg("Error retrieving user")
		return nil, errors.NewStore(err)
	}
	return &user, nil
}

// SetDiscordID backfills the external id. The filter requires the field to
// be absent so an already-linked id is never overwritten.
func (r *UserRepository) SetDiscordID(ctx context.Context, userID, discordID string) error {
	filter := bson.M{"_id": userID, "discord_id": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"discord_id": discordID}}
	if _, err := r.users.UpdateOne(ctx, filter, update); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Error backfilling discord id")
		return errors.NewStore(err)
	}
	return nil
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, userID, url string) error {
	update := bson.M{"$set": bson.M{"profile_picture": url}}
	if _, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Error updating profile picture")
		return errors.NewStore(err)
	}
	return nil
}

func (r *UserRepository) SetDevID(ctx context.Context, userID, devID string) error {
	update := bson.M{"$set": bson.M{"dev_id": devID}}
	result, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Error linking developer record")
		return errors.NewStore(err)
	}
	if result.MatchedCount == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
