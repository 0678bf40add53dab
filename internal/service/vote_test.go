package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

type mockVoteStore struct{ mock.Mock }

func (m *mockVoteStore) TargetAuthor(ctx context.Context, target model.VoteableType, id uint64) (uint64, error) {
	args := m.Called(ctx, target, id)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockVoteStore) Apply(ctx context.Context, voterID, targetID uint64, target model.VoteableType, direction model.VoteType) (int, error) {
	args := m.Called(ctx, voterID, targetID, target, direction)
	return args.Int(0), args.Error(1)
}

func TestCastMissingTarget(t *testing.T) {
	store := new(mockVoteStore)
	store.On("TargetAuthor", mock.Anything, model.VoteableQuestion, uint64(99)).
		Return(uint64(0), repository.ErrNotFound)

	svc := NewVoteService(store, nil)
	_, err := svc.Cast(context.Background(), model.Actor{ID: 1}, model.VoteableQuestion, 99, model.VoteUp)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	store.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCastOwnContentRejected(t *testing.T) {
	store := new(mockVoteStore)
	store.On("TargetAuthor", mock.Anything, model.VoteableAnswer, uint64(7)).
		Return(uint64(42), nil)

	svc := NewVoteService(store, nil)
	_, err := svc.Cast(context.Background(), model.Actor{ID: 42}, model.VoteableAnswer, 7, model.VoteDown)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	store.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCastReturnsDeltaAndFeedsReputation(t *testing.T) {
	store := new(mockVoteStore)
	store.On("TargetAuthor", mock.Anything, model.VoteableQuestion, uint64(3)).
		Return(uint64(9), nil)
	store.On("Apply", mock.Anything, uint64(1), uint64(3), model.VoteableQuestion, model.VoteUp).
		Return(1, nil)

	var gotAuthor uint64
	var gotDelta int
	svc := NewVoteService(store, func(ctx context.Context, authorID uint64, delta int) error {
		gotAuthor = authorID
		gotDelta = delta
		return nil
	})

	delta, err := svc.Cast(context.Background(), model.Actor{ID: 1}, model.VoteableQuestion, 3, model.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, delta)
	assert.Equal(t, uint64(9), gotAuthor)
	assert.Equal(t, 1, gotDelta)
}

// fakeVoteStore runs real transitions against an in-memory vote map so
// multi-step scenarios exercise the same state machine the SQL layer
// implements.
type fakeVoteStore struct {
	authors map[uint64]uint64 // targetID -> author
	votes   map[[2]uint64]model.VoteType
	scores  map[uint64]int
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{
		authors: map[uint64]uint64{},
		votes:   map[[2]uint64]model.VoteType{},
		scores:  map[uint64]int{},
	}
}

func (f *fakeVoteStore) TargetAuthor(_ context.Context, _ model.VoteableType, id uint64) (uint64, error) {
	author, ok := f.authors[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return author, nil
}

func (f *fakeVoteStore) Apply(_ context.Context, voterID, targetID uint64, _ model.VoteableType, direction model.VoteType) (int, error) {
	key := [2]uint64{voterID, targetID}
	var existing *model.VoteType
	if v, ok := f.votes[key]; ok {
		existing = &v
	}
	next, delta := model.ResolveVote(existing, direction)
	if next == nil {
		delete(f.votes, key)
	} else {
		f.votes[key] = *next
	}
	f.scores[targetID] += delta
	return delta, nil
}

func TestCastScenario(t *testing.T) {
	// Question 10 by user 1. Users 2 and 3 vote against it in sequence.
	store := newFakeVoteStore()
	store.authors[10] = 1
	svc := NewVoteService(store, nil)

	ctx := context.Background()
	userB := model.Actor{ID: 2}
	userC := model.Actor{ID: 3}

	d, err := svc.Cast(ctx, userB, model.VoteableQuestion, 10, model.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, d)
	assert.Equal(t, 1, store.scores[10])

	// Same vote again removes it.
	d, err = svc.Cast(ctx, userB, model.VoteableQuestion, 10, model.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, -1, d)
	assert.Equal(t, 0, store.scores[10])

	d, err = svc.Cast(ctx, userC, model.VoteableQuestion, 10, model.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, d)
	assert.Equal(t, -1, store.scores[10])

	// B comes back with a downvote.
	d, err = svc.Cast(ctx, userB, model.VoteableQuestion, 10, model.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, d)
	assert.Equal(t, -2, store.scores[10])

	// And flips it to an upvote.
	d, err = svc.Cast(ctx, userB, model.VoteableQuestion, 10, model.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 2, d)
	assert.Equal(t, 0, store.scores[10])
}
