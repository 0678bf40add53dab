package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

// fakeAcceptStore keeps answers in memory and mimics the transactional
// accept: clearing the old flag, setting the new one and moving the
// question pointer happen as one step.
type fakeAcceptStore struct {
	answers  map[uint64]repository.AcceptInfo
	accepted map[uint64]uint64 // questionID -> accepted answer
}

func newFakeAcceptStore() *fakeAcceptStore {
	return &fakeAcceptStore{
		answers:  map[uint64]repository.AcceptInfo{},
		accepted: map[uint64]uint64{},
	}
}

func (f *fakeAcceptStore) ForAccept(_ context.Context, answerID uint64) (repository.AcceptInfo, error) {
	info, ok := f.answers[answerID]
	if !ok {
		return repository.AcceptInfo{}, repository.ErrNotFound
	}
	return info, nil
}

func (f *fakeAcceptStore) Accept(_ context.Context, questionID, answerID uint64) error {
	f.accepted[questionID] = answerID
	return nil
}

type capturingNotifier struct {
	sent []model.Notification
}

func (n *capturingNotifier) Notify(_ context.Context, m model.Notification) error {
	n.sent = append(n.sent, m)
	return nil
}

func TestAcceptReplacesPreviousAnswer(t *testing.T) {
	store := newFakeAcceptStore()
	// Question 5 owned by user 1, answers by users 2 and 3.
	store.answers[100] = repository.AcceptInfo{ID: 100, QuestionID: 5, AuthorID: 2, QuestionAuthorID: 1}
	store.answers[101] = repository.AcceptInfo{ID: 101, QuestionID: 5, AuthorID: 3, QuestionAuthorID: 1}

	svc := NewAcceptService(store, nil)
	owner := model.Actor{ID: 1, Username: "alice"}

	require.NoError(t, svc.Accept(context.Background(), owner, 100))
	assert.Equal(t, uint64(100), store.accepted[5])

	// Accepting a second answer demotes the first.
	require.NoError(t, svc.Accept(context.Background(), owner, 101))
	assert.Equal(t, uint64(101), store.accepted[5])
}

func TestAcceptOnlyByQuestionOwner(t *testing.T) {
	store := newFakeAcceptStore()
	store.answers[100] = repository.AcceptInfo{ID: 100, QuestionID: 5, AuthorID: 2, QuestionAuthorID: 1}

	svc := NewAcceptService(store, nil)
	err := svc.Accept(context.Background(), model.Actor{ID: 2}, 100)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.Empty(t, store.accepted)
}

func TestAcceptMissingAnswer(t *testing.T) {
	svc := NewAcceptService(newFakeAcceptStore(), nil)
	err := svc.Accept(context.Background(), model.Actor{ID: 1}, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAcceptNotifiesAnswerAuthor(t *testing.T) {
	store := newFakeAcceptStore()
	store.answers[100] = repository.AcceptInfo{ID: 100, QuestionID: 5, AuthorID: 2, QuestionAuthorID: 1}

	notifier := &capturingNotifier{}
	svc := NewAcceptService(store, notifier)

	require.NoError(t, svc.Accept(context.Background(), model.Actor{ID: 1, Username: "alice"}, 100))
	require.Len(t, notifier.sent, 1)
	n := notifier.sent[0]
	assert.Equal(t, uint64(2), n.UserID)
	assert.Equal(t, model.NotificationAccept, n.Type)
	assert.Equal(t, "Answer Accepted", n.Title)
	assert.Equal(t, "alice accepted your answer", n.Message)
	assert.Equal(t, "/questions/5", n.Link)
}

func TestAcceptOwnAnswerSkipsNotification(t *testing.T) {
	store := newFakeAcceptStore()
	// Question owner answered their own question.
	store.answers[100] = repository.AcceptInfo{ID: 100, QuestionID: 5, AuthorID: 1, QuestionAuthorID: 1}

	notifier := &capturingNotifier{}
	svc := NewAcceptService(store, notifier)

	require.NoError(t, svc.Accept(context.Background(), model.Actor{ID: 1}, 100))
	assert.Equal(t, uint64(100), store.accepted[5])
	assert.Empty(t, notifier.sent)
}

func TestAcceptSameAnswerTwice(t *testing.T) {
	store := newFakeAcceptStore()
	store.answers[100] = repository.AcceptInfo{ID: 100, QuestionID: 5, AuthorID: 2, QuestionAuthorID: 1}

	svc := NewAcceptService(store, nil)
	owner := model.Actor{ID: 1}

	require.NoError(t, svc.Accept(context.Background(), owner, 100))
	require.NoError(t, svc.Accept(context.Background(), owner, 100))
	assert.Equal(t, uint64(100), store.accepted[5])
}
