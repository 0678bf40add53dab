package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qaplatform/internal/model"
)

func TestAuthorize(t *testing.T) {
	user := model.Actor{ID: 1, Role: model.RoleUser}
	other := model.Actor{ID: 2, Role: model.RoleUser}
	admin := model.Actor{ID: 3, Role: model.RoleAdmin}
	anon := model.Actor{}

	// Voting: anyone but the owner, never anonymous.
	assert.True(t, Authorize(other, ActionVote, 1))
	assert.False(t, Authorize(user, ActionVote, 1))
	assert.False(t, Authorize(anon, ActionVote, 1))

	// Accepting: only the question owner.
	assert.True(t, Authorize(user, ActionAccept, 1))
	assert.False(t, Authorize(other, ActionAccept, 1))
	assert.False(t, Authorize(anon, ActionAccept, 0))

	// Moderation: role-gated, ownership irrelevant.
	assert.True(t, Authorize(admin, ActionModerate, 1))
	assert.False(t, Authorize(user, ActionModerate, 1))

	assert.False(t, Authorize(admin, Action("unknown"), 1))
}
