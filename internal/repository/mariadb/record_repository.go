package mariadb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/uuid"
)

type RecordRepository struct {
	db    *sql.DB
	genID uuid.Gen
	now   func() time.Time
}

// compile-time check: *RecordRepository must satisfy port.RecordRepository
var _ port.RecordRepository = (*RecordRepository)(nil)

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db, genID: uuid.NewUUID, now: time.Now}
}

func (r *RecordRepository) Create(ctx context.Context, rec *model.Record) error {
	id := r.genID()
	logger.Infof(ctx, "creating database record #%s for %q...", id, rec.Name)

	var imageURL sql.NullString
	if rec.ImageURL != "" {
		imageURL = sql.NullString{String: rec.ImageURL, Valid: true}
	}
	var imageURLs any
	if len(rec.ImageURLs) > 0 {
		b, err := json.Marshal(rec.ImageURLs)
		if err != nil {
			return err
		}
		imageURLs = string(b)
	}
	createdAt := r.now().UTC().Truncate(time.Millisecond)

	const query = `
      INSERT INTO records
        (id, name, description, image_url, image_urls, created_at)
      VALUES (?, ?, ?, ?, ?, ?)
    `
	if _, err := r.db.ExecContext(ctx, query,
		id, rec.Name, rec.Description,
		imageURL, imageURLs, createdAt,
	); err != nil {
		return err
	}

	rec.ID = id.String()
	rec.CreatedAt = createdAt
	return nil
}

func (r *RecordRepository) List(ctx context.Context) ([]model.Record, error) {
	logger.Info(ctx, "listing records from the database...")

	const query = `
      SELECT id, name, description, image_url, image_urls, created_at
      FROM records
      ORDER BY created_at, id
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []model.Record{}
	for rows.Next() {
		var (
			id        uuid.UUID
			rec       model.Record
			imageURL  sql.NullString
			imageURLs []byte
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Description, &imageURL, &imageURLs, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.ID = id.String()
		rec.ImageURL = imageURL.String
		if len(imageURLs) > 0 {
			if err := json.Unmarshal(imageURLs, &rec.ImageURLs); err != nil {
				return nil, fmt.Errorf("record #%s has malformed image_urls: %w", rec.ID, err)
			}
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
