package service

import (
	"context"
	"log"

	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

// VoteStore is the persistence the voting engine needs.
type VoteStore interface {
	// TargetAuthor returns the author of the voteable, or
	// repository.ErrNotFound.
	TargetAuthor(ctx context.Context, target model.VoteableType, id uint64) (uint64, error)
	// Apply runs the vote transition atomically against the current
	// stored vote and returns the score delta.
	Apply(ctx context.Context, voterID, targetID uint64, target model.VoteableType, direction model.VoteType) (int, error)
}

// ReputationHook is called after a successful vote with the content
// author and the score delta. Failures are logged, not surfaced; the
// vote itself already committed.
type ReputationHook func(ctx context.Context, authorID uint64, delta int) error

type VoteService struct {
	Store      VoteStore
	Reputation ReputationHook
}

func NewVoteService(store VoteStore, rep ReputationHook) *VoteService {
	return &VoteService{Store: store, Reputation: rep}
}

// Cast records, removes or flips the actor's vote on the target and
// returns the resulting score change. Self-votes are rejected with
// repository.ErrForbidden before anything is written.
func (s *VoteService) Cast(ctx context.Context, actor model.Actor, target model.VoteableType, id uint64, requested model.VoteType) (int, error) {
	authorID, err := s.Store.TargetAuthor(ctx, target, id)
	if err != nil {
		return 0, err
	}
	if !Authorize(actor, ActionVote, authorID) {
		return 0, repository.ErrForbidden
	}
	delta, err := s.Store.Apply(ctx, actor.ID, id, target, requested)
	if err != nil {
		return 0, err
	}
	if s.Reputation != nil && delta != 0 {
		if err := s.Reputation(ctx, authorID, delta); err != nil {
			log.Printf("[vote] reputation update failed for user %d: %v", authorID, err)
		}
	}
	return delta, nil
}
