package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"qaplatform/internal/model"
)

// VoteRepo persists votes and keeps the target's denormalized score in
// step with the vote rows. The state transition itself is computed by
// model.ResolveVote; the repository only executes it atomically.
type VoteRepo struct{ DB *sql.DB }

func NewVoteRepo(db *sql.DB) *VoteRepo { return &VoteRepo{DB: db} }

func targetTable(t model.VoteableType) string {
	if t == model.VoteableAnswer {
		return "answers"
	}
	return "questions"
}

// TargetAuthor returns the author of the voteable row, or ErrNotFound.
func (r *VoteRepo) TargetAuthor(ctx context.Context, target model.VoteableType, id uint64) (uint64, error) {
	var author uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM "+targetTable(target)+" WHERE id=?", id).Scan(&author)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return author, err
}

// Apply runs one vote request as a single transaction: lock the voter's
// existing vote row, resolve the transition, mutate the row and add the
// resulting delta to the target's score. Either everything commits or
// nothing does, so a reader can never observe a vote row without its
// score contribution. Returns the applied score delta.
func (r *VoteRepo) Apply(ctx context.Context, voterID, targetID uint64, target model.VoteableType, direction model.VoteType) (int, error) {
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

	var existingStr string
	err = tx.QueryRowContext(ctx,
		"SELECT vote_type FROM votes WHERE user_id=? AND voteable_id=? AND voteable_type=? FOR UPDATE",
		voterID, targetID, target).Scan(&existingStr)
	var existing *model.VoteType
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no prior vote
	case err != nil:
		return 0, err
	default:
		v := model.VoteType(existingStr)
		existing = &v
	}

	next, delta := model.ResolveVote(existing, direction)
	switch {
	case next == nil:
		_, err = tx.ExecContext(ctx,
			"DELETE FROM votes WHERE user_id=? AND voteable_id=? AND voteable_type=?",
			voterID, targetID, target)
	case existing == nil:
		_, err = tx.ExecContext(ctx,
			"INSERT INTO votes (user_id, voteable_id, voteable_type, vote_type) VALUES (?,?,?,?)",
			voterID, targetID, target, *next)
	default:
		_, err = tx.ExecContext(ctx,
			"UPDATE votes SET vote_type=? WHERE user_id=? AND voteable_id=? AND voteable_type=?",
			*next, voterID, targetID, target)
	}
	if err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx,
		"UPDATE "+targetTable(target)+" SET score = score + ? WHERE id=?",
		delta, targetID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return delta, nil
}

// ForViewer returns the viewer's vote per target in one query, keyed by
// voteable id. Targets the viewer has not voted on are absent from the
// map. Replaces the per-row lookup loop the listing endpoints would
// otherwise need.
func (r *VoteRepo) ForViewer(ctx context.Context, viewerID uint64, target model.VoteableType, ids []uint64) (map[uint64]model.VoteType, error) {
	out := make(map[uint64]model.VoteType, len(ids))
	if viewerID == 0 || len(ids) == 0 {
		return out, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids)+2)
	args = append(args, viewerID, target)
	for _, id := range ids {
		args = append(args, id)
	}
	query := fmt.Sprintf(
		"SELECT voteable_id, vote_type FROM votes WHERE user_id=? AND voteable_type=? AND voteable_id IN (%s)",
		placeholders)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var vt string
		if err := rows.Scan(&id, &vt); err != nil {
			return nil, err
		}
		out[id] = model.VoteType(vt)
	}
	return out, rows.Err()
}
