package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaplatform/internal/model"
	"qaplatform/internal/repository"
	"qaplatform/internal/service"
)

type acceptStoreStub struct {
	info     repository.AcceptInfo
	infoErr  error
	accepted bool
}

func (s *acceptStoreStub) ForAccept(context.Context, uint64) (repository.AcceptInfo, error) {
	return s.info, s.infoErr
}

func (s *acceptStoreStub) Accept(context.Context, uint64, uint64) error {
	s.accepted = true
	return nil
}

func newAcceptRequest(t *testing.T, answerID string, actor *model.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/answers/"+answerID+"/accept", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/answers/:id/accept")
	c.SetParamNames("id")
	c.SetParamValues(answerID)
	if actor != nil {
		c.Set("actor", *actor)
	}
	return c, rec
}

func TestAcceptAnswerSuccess(t *testing.T) {
	store := &acceptStoreStub{info: repository.AcceptInfo{ID: 8, QuestionID: 3, AuthorID: 2, QuestionAuthorID: 1}}
	h := &AnswerHandler{Accepts: service.NewAcceptService(store, nil)}

	actor := model.Actor{ID: 1, Username: "alice"}
	c, rec := newAcceptRequest(t, "8", &actor)

	require.NoError(t, h.Accept(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Answer accepted successfully")
	assert.True(t, store.accepted)
}

func TestAcceptAnswerNotOwner(t *testing.T) {
	store := &acceptStoreStub{info: repository.AcceptInfo{ID: 8, QuestionID: 3, AuthorID: 2, QuestionAuthorID: 1}}
	h := &AnswerHandler{Accepts: service.NewAcceptService(store, nil)}

	actor := model.Actor{ID: 2}
	c, rec := newAcceptRequest(t, "8", &actor)

	require.NoError(t, h.Accept(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only question owner can accept answers")
	assert.False(t, store.accepted)
}

func TestAcceptAnswerMissing(t *testing.T) {
	store := &acceptStoreStub{infoErr: repository.ErrNotFound}
	h := &AnswerHandler{Accepts: service.NewAcceptService(store, nil)}

	actor := model.Actor{ID: 1}
	c, rec := newAcceptRequest(t, "404", &actor)

	require.NoError(t, h.Accept(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Answer not found")
}

func TestAcceptAnswerBadID(t *testing.T) {
	h := &AnswerHandler{}
	actor := model.Actor{ID: 1}
	c, rec := newAcceptRequest(t, "abc", &actor)

	require.NoError(t, h.Accept(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAnswerValidation(t *testing.T) {
	h := &AnswerHandler{}
	actor := model.Actor{ID: 1}

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing question", `{"content":"long enough answer"}`, "questionId is required"},
		{"short content", `{"questionId":3,"content":"short"}`, "Content must be at least 10 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/answers", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set("actor", actor)

			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}
