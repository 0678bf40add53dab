package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

type stubCaster struct {
	delta int
	err   error

	gotActor  model.Actor
	gotTarget model.VoteableType
	gotID     uint64
	gotVote   model.VoteType
	called    bool
}

func (s *stubCaster) Cast(_ context.Context, actor model.Actor, target model.VoteableType, id uint64, requested model.VoteType) (int, error) {
	s.called = true
	s.gotActor = actor
	s.gotTarget = target
	s.gotID = id
	s.gotVote = requested
	return s.delta, s.err
}

func newVoteRequest(t *testing.T, body string, actor *model.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set("actor", *actor)
	}
	return c, rec
}

func TestVoteCastSuccess(t *testing.T) {
	caster := &stubCaster{delta: 2}
	h := NewVoteHandler(caster)

	actor := model.Actor{ID: 4, Username: "bob"}
	c, rec := newVoteRequest(t, `{"voteableId":7,"voteableType":"answer","voteType":"up"}`, &actor)

	require.NoError(t, h.Cast(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Vote recorded successfully", resp["message"])
	assert.Equal(t, float64(2), resp["scoreChange"])

	assert.Equal(t, uint64(7), caster.gotID)
	assert.Equal(t, model.VoteableAnswer, caster.gotTarget)
	assert.Equal(t, model.VoteUp, caster.gotVote)
	assert.Equal(t, actor, caster.gotActor)
}

func TestVoteCastTargetNotFound(t *testing.T) {
	caster := &stubCaster{err: repository.ErrNotFound}
	h := NewVoteHandler(caster)

	actor := model.Actor{ID: 4}
	c, rec := newVoteRequest(t, `{"voteableId":999,"voteableType":"question","voteType":"down"}`, &actor)

	require.NoError(t, h.Cast(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "question not found")
}

func TestVoteCastOwnContent(t *testing.T) {
	caster := &stubCaster{err: repository.ErrForbidden}
	h := NewVoteHandler(caster)

	actor := model.Actor{ID: 4}
	c, rec := newVoteRequest(t, `{"voteableId":7,"voteableType":"answer","voteType":"up"}`, &actor)

	require.NoError(t, h.Cast(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot vote on your own content")
}

func TestVoteCastInvalidBody(t *testing.T) {
	caster := &stubCaster{}
	h := NewVoteHandler(caster)

	actor := model.Actor{ID: 4}
	for _, body := range []string{
		`{"voteableId":0,"voteableType":"answer","voteType":"up"}`,
		`{"voteableId":7,"voteableType":"comment","voteType":"up"}`,
		`{"voteableId":7,"voteableType":"answer","voteType":"sideways"}`,
	} {
		c, rec := newVoteRequest(t, body, &actor)
		require.NoError(t, h.Cast(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.False(t, caster.called)
}

func TestVoteCastRequiresAuth(t *testing.T) {
	h := NewVoteHandler(&stubCaster{})
	c, rec := newVoteRequest(t, `{"voteableId":7,"voteableType":"answer","voteType":"up"}`, nil)

	require.NoError(t, h.Cast(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
