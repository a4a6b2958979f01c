package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/helpbuddy/internal/core"
)

// PassageRepo persists corpus passages and serves nearest-neighbor
// lookups over their embeddings.
type PassageRepo struct {
	db *sql.DB
}

func NewPassageRepo(db *sql.DB) *PassageRepo {
	return &PassageRepo{db: db}
}

// SavePassage writes the metadata row and its vector in one
// transaction; the vec0 row reuses the passage id as rowid.
func (r *PassageRepo) SavePassage(ctx context.Context, passage core.StoredPassage) error {
	vecBlob, err := serializeVector(passage.Embedding)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var page any
	if passage.HasPage {
		page = passage.Page
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO passages (content, page, source, chunk_id) VALUES (?, ?, ?, ?)`,
		passage.Content, page, passage.Source, passage.ChunkID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert passage: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO passages_vec (rowid, embedding) VALUES (?, ?)`,
		id, vecBlob,
	)
	if err != nil {
		return fmt.Errorf("failed to insert passage vector: %w", err)
	}

	return tx.Commit()
}

// SearchByVector returns up to k passages nearest to vector, closest
// first. Distance ordering comes from sqlite-vec; lower is better.
func (r *PassageRepo) SearchByVector(ctx context.Context, vector []float32, k int) ([]core.Passage, error) {
	vecBlob, err := serializeVector(vector)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT p.content, p.page, v.distance
		FROM passages_vec v
		JOIN passages p ON p.id = v.rowid
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance
	`
	rows, err := r.db.QueryContext(ctx, query, vecBlob, k)
	if err != nil {
		return nil, fmt.Errorf("passage search failed: %w", err)
	}
	defer rows.Close()

	var results []core.Passage
	for rows.Next() {
		var p core.Passage
		var page sql.NullInt64
		if err := rows.Scan(&p.Content, &page, &p.Score); err != nil {
			return nil, err
		}
		if page.Valid {
			p.Page = int(page.Int64)
			p.HasPage = true
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func (r *PassageRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&count)
	return count, err
}

// Reset drops every indexed passage, vectors included.
func (r *PassageRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM passages_vec`); err != nil {
		return fmt.Errorf("failed to clear passage vectors: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM passages`); err != nil {
		return fmt.Errorf("failed to clear passages: %w", err)
	}

	return tx.Commit()
}
