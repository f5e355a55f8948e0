package mongodb

import (
	"context"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// recordDocument is the stored shape of a record, field for field the
// JSON returned by the listing.
type recordDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	ImageURLs   []string           `bson:"imageUrls,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type RecordRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// compile-time check: *RecordRepository must satisfy port.RecordRepository
var _ port.RecordRepository = (*RecordRepository)(nil)

func NewRecordRepository(coll *mongo.Collection) *RecordRepository {
	return &RecordRepository{coll: coll, now: time.Now}
}

func (r *RecordRepository) Create(ctx context.Context, rec *model.Record) error {
	logger.Infof(ctx, "inserting record %q into collection %q...", rec.Name, r.coll.Name())

	// BSON dates carry millisecond precision
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := recordDocument{
		ID:          primitive.NewObjectID(),
		Name:        rec.Name,
		Description: rec.Description,
		ImageURL:    rec.ImageURL,
		ImageURLs:   rec.ImageURLs,
		CreatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}

	rec.ID = doc.ID.Hex()
	rec.CreatedAt = now
	return nil
}

// List returns every record in natural collection order.
func (r *RecordRepository) List(ctx context.Context) ([]model.Record, error) {
	logger.Infof(ctx, "listing records of collection %q...", r.coll.Name())

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var docs []recordDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]model.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.Record{
			ID:          d.ID.Hex(),
			Name:        d.Name,
			Description: d.Description,
			ImageURL:    d.ImageURL,
			ImageURLs:   d.ImageURLs,
			CreatedAt:   d.CreatedAt.UTC(),
		})
	}
	return out, nil
}
