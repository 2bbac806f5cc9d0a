package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/storefront-api/internal/core/domain"
)

const auditCollection = "auth_events"

type authEventDoc struct {
	Kind       string    `bson:"kind"`
	UserID     int64     `bson:"user_id,omitempty"`
	ActorID    int64     `bson:"actor_id,omitempty"`
	Email      string    `bson:"email,omitempty"`
	Detail     string    `bson:"detail,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

// InsertEvent persists a single authentication event.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	doc := authEventDoc{
		Kind:       string(event.Kind),
		UserID:     event.UserID,
		ActorID:    event.ActorID,
		Email:      event.Email,
		Detail:     event.Detail,
		OccurredAt: occurred.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes creates the lookup indexes on the auth_events collection.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}, Options: options.Index().SetName("kind_1")},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
