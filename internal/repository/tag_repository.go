package repository

import (
	"context"
	"database/sql"

	"qaplatform/internal/model"
)

type TagRepo struct{ DB *sql.DB }

func NewTagRepo(db *sql.DB) *TagRepo { return &TagRepo{DB: db} }

// PopularTag is a tag with how many questions carry it.
type PopularTag struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	QuestionCount int    `json:"question_count"`
}

// List returns all tags ordered by name, optionally filtered by a
// substring match.
func (r *TagRepo) List(ctx context.Context, search string) ([]model.Tag, error) {
	query := "SELECT id, name, description FROM tags"
	args := []any{}
	if search != "" {
		query += " WHERE name LIKE ?"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY name ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Popular returns the 20 most used tags with their question counts.
func (r *TagRepo) Popular(ctx context.Context) ([]PopularTag, error) {
	const q = `SELECT t.id, t.name, t.description, COUNT(qt.question_id) AS question_count
		FROM tags t
		LEFT JOIN question_tags qt ON qt.tag_id = t.id
		GROUP BY t.id, t.name, t.description
		ORDER BY question_count DESC, t.name ASC
		LIMIT 20`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PopularTag, 0)
	for rows.Next() {
		var t PopularTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.QuestionCount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
