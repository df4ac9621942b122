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

// AppRepository implements domain.AppRepository on MongoDB.
type AppRepository struct {
	apps *mongo.Collection
}

func NewAppRepository(ctx context.Context, db *mongo.Database) (*AppRepository, error) {
	r := &AppRepository{apps: db.Collection(AppsCollection)}
	if err := r.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create app indexes: %w", err)
	}
	return r, nil
}

func (r *AppRepository) createIndexes(ctx context.Context) error {
	// client_id is unique and immutable after creation.
	_, err := r.apps.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "client_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *AppRepository) CreateApp(ctx context.Context, app *domain.App) (string, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}

	_, err := r.apps.InsertOne(ctx, app)
	if err != nil {
		if isDuplicateKey(err) {
			return "", fmt.Errorf("app with client id %s already exists: %w", app.ClientID, err)
		}
		log.Error().Err(err).Str("clientID", app.ClientID).Msg("Error inserting app")
		return "", errors.NewStore(err)
	}

	log.Debug().Str("appID", app.ID).Str("clientID", app.ClientID).Msg("App created")
	return app.ID, nil
}

func (r *AppRepository) GetAppByClientID(ctx context.Context, clientID string) (*domain.App, error) {
	var app domain.App
	err := r.apps.FindOne(ctx, bson.M{"client_id": clientID}).Decode(&app)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrAppNotFound
		}
		log.Error().Err(err).Str("clientID", clientID).Msg("Error retrieving app")
		return nil, errors.NewStore(err)
	}
	return &app, nil
}

func (r *AppRepository) ListApps(ctx context.Context) ([]*domain.App, error) {
	cursor, err := r.apps.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.NewStore(err)
	}
	defer cursor.Close(ctx)

	var apps []*domain.App
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, errors.NewStore(err)
	}
	return apps, nil
}

var _ domain.AppRepository = (*AppRepository)(nil)
