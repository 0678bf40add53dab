package service

import (
	"context"
	"fmt"
	"log"

	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

// AcceptStore is the persistence the acceptance engine needs.
type AcceptStore interface {
	// ForAccept loads the answer with its parent question's author, or
	// repository.ErrNotFound.
	ForAccept(ctx context.Context, answerID uint64) (repository.AcceptInfo, error)
	// Accept atomically moves the accepted flag to the given answer and
	// updates the question's accepted_answer_id pointer.
	Accept(ctx context.Context, questionID, answerID uint64) error
}

type AcceptService struct {
	Store    AcceptStore
	Notifier Notifier
}

func NewAcceptService(store AcceptStore, n Notifier) *AcceptService {
	return &AcceptService{Store: store, Notifier: n}
}

// Accept marks the answer as the accepted one for its question. Only
// the question author may accept; any previously accepted answer is
// demoted in the same transaction. The answer author is notified unless
// they accepted their own answer.
func (s *AcceptService) Accept(ctx context.Context, actor model.Actor, answerID uint64) error {
	info, err := s.Store.ForAccept(ctx, answerID)
	if err != nil {
		return err
	}
	if !Authorize(actor, ActionAccept, info.QuestionAuthorID) {
		return repository.ErrForbidden
	}
	if err := s.Store.Accept(ctx, info.QuestionID, info.ID); err != nil {
		return err
	}
	if s.Notifier != nil && info.AuthorID != actor.ID {
		n := model.Notification{
			UserID:  info.AuthorID,
			Type:    model.NotificationAccept,
			Title:   "Answer Accepted",
			Message: fmt.Sprintf("%s accepted your answer", actor.Username),
			Link:    fmt.Sprintf("/questions/%d", info.QuestionID),
		}
		if err := s.Notifier.Notify(ctx, n); err != nil {
			log.Printf("[accept] notify user %d failed: %v", info.AuthorID, err)
		}
	}
	return nil
}
