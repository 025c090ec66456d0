package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"memorial-backend/internal/domains/profile/model"
)

// postgresProfileRepository stores each profile as one JSONB document
// keyed by slug, with a version column for compare-and-swap updates.
//
// Schema:
//
//	CREATE TABLE memorial_profiles (
//	    slug        TEXT PRIMARY KEY,
//	    owner_email TEXT NOT NULL,
//	    version     BIGINT NOT NULL DEFAULT 1,
//	    document    JSONB NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX idx_memorial_profiles_owner ON memorial_profiles (owner_email);
type postgresProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &postgresProfileRepository{pool: pool}
}

func (r *postgresProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query := `
		INSERT INTO memorial_profiles (slug, owner_email, version, document, created_at, updated_at)
		VALUES ($1, $2, 1, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, query, p.Slug, p.CreatedBy, doc, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("insert profile: %w", err)
	}

	p.Version = 1
	return nil
}

func (r *postgresProfileRepository) GetBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	query := `SELECT document, version FROM memorial_profiles WHERE slug = $1`

	var doc []byte
	var version int64
	err := r.pool.QueryRow(ctx, query, slug).Scan(&doc, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return unmarshalProfile(doc, version)
}

func (r *postgresProfileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	query := `SELECT document, version FROM memorial_profiles ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*model.Profile
	for rows.Next() {
		var doc []byte
		var version int64
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p, err := unmarshalProfile(doc, version)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update writes the full document in a single statement guarded by the
// version stamp, so a concurrent writer can never be silently
// overwritten.
func (r *postgresProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query := `
		UPDATE memorial_profiles
		SET document = $1, version = version + 1, updated_at = $2
		WHERE slug = $3 AND version = $4
	`

	tag, err := r.pool.Exec(ctx, query, doc, p.UpdatedAt, p.Slug, p.Version)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row is gone or someone else won the race.
		exists, err := r.exists(ctx, p.Slug)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrProfileNotFound
		}
		return model.ErrVersionConflict
	}

	p.Version++
	return nil
}

func (r *postgresProfileRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM memorial_profiles WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

func (r *postgresProfileRepository) DeleteByOwner(ctx context.Context, ownerEmail string) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM memorial_profiles WHERE owner_email = $1`, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("delete profiles by owner: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *postgresProfileRepository) exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM memorial_profiles WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check profile exists: %w", err)
	}
	return exists, nil
}

func unmarshalProfile(doc []byte, version int64) (*model.Profile, error) {
	p := &model.Profile{}
	if err := json.Unmarshal(doc, p); err != nil {
		return nil, fmt.Errorf("unmarshal profile document: %w", err)
	}
	p.Version = version
	return p, nil
}
