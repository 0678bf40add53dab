package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuestion(t *testing.T) {
	valid := createQuestionReq{
		Title:       "How do I do the thing?",
		Description: "I tried the thing and it did not work.",
		Tags:        []string{"go", "mysql"},
	}
	assert.Empty(t, validateQuestion(valid))

	short := valid
	short.Title = "Hi"
	assert.Contains(t, validateQuestion(short), "Title")

	thin := valid
	thin.Description = "too short"
	assert.Contains(t, validateQuestion(thin), "Description")

	noTags := valid
	noTags.Tags = nil
	assert.Contains(t, validateQuestion(noTags), "tags")

	tooMany := valid
	tooMany.Tags = []string{"a", "b", "c", "d", "e", "f"}
	assert.Contains(t, validateQuestion(tooMany), "tags")

	blankTag := valid
	blankTag.Tags = []string{"go", "  "}
	assert.Contains(t, validateQuestion(blankTag), "Tags")
}

func TestValidateRegister(t *testing.T) {
	valid := registerReq{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	assert.Empty(t, validateRegister(valid))

	shortName := valid
	shortName.Username = "al"
	assert.Contains(t, validateRegister(shortName), "Username")

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Contains(t, validateRegister(badEmail), "email")

	shortPass := valid
	shortPass.Password = "12345"
	assert.Contains(t, validateRegister(shortPass), "Password")
}

func TestAtoiDefault(t *testing.T) {
	assert.Equal(t, 1, atoiDefault("", 1))
	assert.Equal(t, 3, atoiDefault("3", 1))
	assert.Equal(t, 10, atoiDefault("abc", 10))
	assert.Equal(t, 10, atoiDefault("-5", 10))
	assert.Equal(t, 10, atoiDefault("0", 10))
}
