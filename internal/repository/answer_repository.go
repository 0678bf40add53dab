package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"qaplatform/internal/model"
)

type AnswerRepo struct{ DB *sql.DB }

func NewAnswerRepo(db *sql.DB) *AnswerRepo { return &AnswerRepo{DB: db} }

// AnswerDetail is one answer row shaped for the question detail
// response, including its author. UserVote is filled by the handler.
type AnswerDetail struct {
	ID         uint64          `json:"id"`
	Content    string          `json:"content"`
	Score      int             `json:"score"`
	IsAccepted bool            `json:"is_accepted"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	UserID     uint64          `json:"user_id"`
	Username   string          `json:"username"`
	Reputation int             `json:"reputation"`
	UserVote   *model.VoteType `json:"userVote,omitempty"`
}

// AcceptInfo carries what the acceptance engine needs to decide: the
// answer, its parent question and both authors.
type AcceptInfo struct {
	ID               uint64 // answer id
	QuestionID       uint64
	AuthorID         uint64 // answer author
	QuestionAuthorID uint64
}

// Create inserts an answer and returns its ID.
func (r *AnswerRepo) Create(ctx context.Context, questionID, authorID uint64, content string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO answers (question_id, user_id, content) VALUES (?,?,?)",
		questionID, authorID, content)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ForAccept loads the answer joined with its parent question.
// ErrNotFound when the answer does not exist.
func (r *AnswerRepo) ForAccept(ctx context.Context, answerID uint64) (AcceptInfo, error) {
	const q = `SELECT a.id, a.question_id, a.user_id, q.user_id
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.id = ?`
	var info AcceptInfo
	err := r.DB.QueryRowContext(ctx, q, answerID).Scan(
		&info.ID, &info.QuestionID, &info.AuthorID, &info.QuestionAuthorID)
	if errors.Is(err, sql.ErrNoRows) {
		return AcceptInfo{}, ErrNotFound
	}
	return info, err
}

// Accept applies the acceptance transition in one transaction: clear the
// flag on every answer of the question, set it on the chosen answer and
// point the question at it. A reader never sees two accepted answers or
// a dangling accepted_answer_id.
func (r *AnswerRepo) Accept(ctx context.Context, questionID, answerID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		"UPDATE answers SET is_accepted = FALSE WHERE question_id=?", questionID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE answers SET is_accepted = TRUE WHERE id=?", answerID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE questions SET accepted_answer_id=? WHERE id=?", answerID, questionID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByQuestion returns a question's answers with their authors,
// accepted answer first, then by score and age.
func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionID uint64) ([]AnswerDetail, error) {
	const q = `SELECT a.id, a.content, a.score, a.is_accepted, a.created_at, a.updated_at,
		a.user_id, u.username, u.reputation
	FROM answers a
	JOIN users u ON u.id = a.user_id
	WHERE a.question_id = ?
	ORDER BY a.is_accepted DESC, a.score DESC, a.created_at ASC`
	rows, err := r.DB.QueryContext(ctx, q, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AnswerDetail, 0)
	for rows.Next() {
		var a AnswerDetail
		if err := rows.Scan(&a.ID, &a.Content, &a.Score, &a.IsAccepted, &a.CreatedAt, &a.UpdatedAt,
			&a.UserID, &a.Username, &a.Reputation); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an answer. ErrNotFound when no row was deleted.
func (r *AnswerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM answers WHERE id=?", id)
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
