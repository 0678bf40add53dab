package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"qaplatform/internal/model"
)

type QuestionRepo struct{ DB *sql.DB }

func NewQuestionRepo(db *sql.DB) *QuestionRepo { return &QuestionRepo{DB: db} }

// QuestionFilter narrows List. Page is 1-based; Limit defaults to 10.
type QuestionFilter struct {
	Page   int
	Limit  int
	Tag    string
	Search string
}

// QuestionSummary is one row of the question listing, shaped for the
// JSON response. UserVote is filled by the handler for authenticated
// viewers.
type QuestionSummary struct {
	ID                uint64          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Views             int             `json:"views"`
	Score             int             `json:"score"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Username          string          `json:"username"`
	Reputation        int             `json:"reputation"`
	AnswerCount       int             `json:"answer_count"`
	HasAcceptedAnswer bool            `json:"has_accepted_answer"`
	Tags              []string        `json:"tags"`
	UserVote          *model.VoteType `json:"userVote,omitempty"`
}

// QuestionDetail is the full question view including its answers.
type QuestionDetail struct {
	ID               uint64          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Views            int             `json:"views"`
	Score            int             `json:"score"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	UserID           uint64          `json:"user_id"`
	AcceptedAnswerID *uint64         `json:"accepted_answer_id"`
	Username         string          `json:"username"`
	Reputation       int             `json:"reputation"`
	Tags             []string        `json:"tags"`
	UserVote         *model.VoteType `json:"userVote,omitempty"`
	Answers          []AnswerDetail  `json:"answers"`
}

// List returns a page of questions with author, answer count, acceptance
// flag and tag names aggregated per row, newest first.
func (r *QuestionRepo) List(ctx context.Context, f QuestionFilter) ([]QuestionSummary, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	query := `SELECT q.id, q.title, q.description, q.views, q.score, q.created_at, q.updated_at,
		u.username, u.reputation,
		(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count,
		q.accepted_answer_id IS NOT NULL AS has_accepted_answer,
		GROUP_CONCAT(t.name) AS tags
	FROM questions q
	JOIN users u ON u.id = q.user_id
	LEFT JOIN question_tags qt ON qt.question_id = q.id
	LEFT JOIN tags t ON t.id = qt.tag_id`

	var where []string
	var args []any
	if f.Tag != "" {
		where = append(where, "t.name = ?")
		args = append(args, f.Tag)
	}
	if f.Search != "" {
		where = append(where, "(q.title LIKE ? OR q.description LIKE ?)")
		pat := "%" + f.Search + "%"
		args = append(args, pat, pat)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY q.id ORDER BY q.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]QuestionSummary, 0)
	for rows.Next() {
		var q QuestionSummary
		var tags sql.NullString
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Views, &q.Score, &q.CreatedAt, &q.UpdatedAt,
			&q.Username, &q.Reputation, &q.AnswerCount, &q.HasAcceptedAnswer, &tags); err != nil {
			return nil, err
		}
		q.Tags = splitTags(tags)
		out = append(out, q)
	}
	return out, rows.Err()
}

// GetDetail loads one question with author and tags. Answers and vote
// annotations are attached by the caller. ErrNotFound when absent.
func (r *QuestionRepo) GetDetail(ctx context.Context, id uint64) (*QuestionDetail, error) {
	const q = `SELECT q.id, q.title, q.description, q.views, q.score, q.created_at, q.updated_at,
		q.user_id, q.accepted_answer_id,
		u.username, u.reputation,
		GROUP_CONCAT(t.name) AS tags
	FROM questions q
	JOIN users u ON u.id = q.user_id
	LEFT JOIN question_tags qt ON qt.question_id = q.id
	LEFT JOIN tags t ON t.id = qt.tag_id
	WHERE q.id = ?
	GROUP BY q.id`

	var det QuestionDetail
	var accepted sql.NullInt64
	var tags sql.NullString
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.Title, &det.Description, &det.Views, &det.Score, &det.CreatedAt, &det.UpdatedAt,
		&det.UserID, &accepted, &det.Username, &det.Reputation, &tags)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if accepted.Valid {
		v := uint64(accepted.Int64)
		det.AcceptedAnswerID = &v
	}
	det.Tags = splitTags(tags)
	det.Answers = []AnswerDetail{}
	return &det, nil
}

// IncrementViews bumps the view counter. Missing rows are ignored; the
// subsequent GetDetail reports the 404.
func (r *QuestionRepo) IncrementViews(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE questions SET views = views + 1 WHERE id=?", id)
	return err
}

// Create inserts the question, resolves each tag name to a row (creating
// missing ones) and links them, all in one transaction.
func (r *QuestionRepo) Create(ctx context.Context, title, description string, authorID uint64, tags []string) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO questions (title, description, user_id) VALUES (?,?,?)",
		title, description, authorID)
	if err != nil {
		return 0, err
	}
	qid, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, name := range tags {
		var tagID uint64
		err := tx.QueryRowContext(ctx, "SELECT id FROM tags WHERE name=?", name).Scan(&tagID)
		if errors.Is(err, sql.ErrNoRows) {
			res, err := tx.ExecContext(ctx, "INSERT INTO tags (name) VALUES (?)", name)
			if err != nil {
				return 0, err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return 0, err
			}
			tagID = uint64(id)
		} else if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO question_tags (question_id, tag_id) VALUES (?,?)", qid, tagID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(qid), nil
}

// AuthorID returns the question author's id, or ErrNotFound.
func (r *QuestionRepo) AuthorID(ctx context.Context, id uint64) (uint64, error) {
	var author uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM questions WHERE id=?", id).Scan(&author)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return author, err
}

// Delete removes a question (answers and tag links cascade). ErrNotFound
// when no row was deleted.
func (r *QuestionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM questions WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func splitTags(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return []string{}
	}
	return strings.Split(s.String, ",")
}
