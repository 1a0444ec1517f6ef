package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bluemoon/resident-portal/internal/core/ports"
)

const (
	collectionNavigation = "navigation_attempts"
	auditRetention       = 30 * 24 * time.Hour
)

// navigationDoc is the stored form of a ports.NavigationRecord.
type navigationDoc struct {
	SessionID  string    `bson:"session_id"`
	RequestID  string    `bson:"request_id,omitempty"`
	Path       string    `bson:"path"`
	State      string    `bson:"state"`
	Role       string    `bson:"role,omitempty"`
	Redirect   string    `bson:"redirect,omitempty"`
	Sequence   uint64    `bson:"sequence"`
	DurationMS int64     `bson:"duration_ms"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func toDoc(r *ports.NavigationRecord) navigationDoc {
	return navigationDoc{
		SessionID:  r.SessionID,
		RequestID:  r.RequestID,
		Path:       r.Path,
		State:      r.State,
		Role:       r.Role,
		Redirect:   r.Redirect,
		Sequence:   r.Sequence,
		DurationMS: r.Duration.Milliseconds(),
		OccurredAt: r.OccurredAt.UTC(),
	}
}

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionNavigation)}
}

// InsertNavigation persists one navigation outcome.
func (r *AuditRepository) InsertNavigation(ctx context.Context, rec *ports.NavigationRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toDoc(rec))
	return err
}

// EnsureIndexes creates the lookup index and the retention TTL index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "occurred_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(auditRetention.Seconds())),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
