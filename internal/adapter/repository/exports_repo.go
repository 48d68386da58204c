package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cv-generator/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// ExportsRepo stores download records in cv_exports. A repo built on a nil
// pool keeps nothing and lists nothing.
type ExportsRepo struct {
	pool *pgxpool.Pool
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

func (r *ExportsRepo) Save(ctx context.Context, e *domain.CVExport) error {
	if r.pool == nil {
		return nil
	}

	metaB, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshal export metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO cv_exports (id, session_id, title, style, file_name, file_path, file_size, status, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, style = EXCLUDED.style, file_name = EXCLUDED.file_name, file_path = EXCLUDED.file_path, file_size = EXCLUDED.file_size, status = EXCLUDED.status, metadata = EXCLUDED.metadata`,
		e.ID, e.SessionID, e.Title, string(e.Style), e.FileName, e.FilePath, e.FileSize, e.Status, metaB, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("save export %s: %w", e.ID, err)
	}
	return nil
}

// List returns the newest records first. The rows are aggregated into one
// JSON array by Postgres and decoded in a single scan.
func (r *ExportsRepo) List(ctx context.Context, limit int) ([]domain.CVExport, error) {
	out := []domain.CVExport{}
	if r.pool == nil {
		return out, nil
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	const q = `SELECT COALESCE(json_agg(row_to_json(t) ORDER BY t.created_at DESC), '[]'::json)
		FROM (SELECT id, session_id, title, style, file_name, file_path, file_size, status, metadata, created_at
			FROM cv_exports ORDER BY created_at DESC LIMIT $1) t`
	if err := queryJSON(ctx, r.pool, &out, q, limit); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return out, nil
}

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into dst.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, dst interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
