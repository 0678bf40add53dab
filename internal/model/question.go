package model

import "time"

// Question mirrors the `questions` table. AcceptedAnswerID is nil until
// the author accepts an answer; it always points at the single answer
// whose is_accepted flag is set.
type Question struct {
	ID               uint64     // questions.id
	Title            string     // questions.title
	Description      string     // questions.description
	UserID           uint64     // questions.user_id (author)
	Score            int        // questions.score
	Views            int        // questions.views
	AcceptedAnswerID *uint64    // questions.accepted_answer_id (nullable)
	CreatedAt        time.Time  // questions.created_at
	UpdatedAt        time.Time  // questions.updated_at
}

// Answer mirrors the `answers` table. An answer is owned by its question
// through QuestionID and is removed with it.
type Answer struct {
	ID         uint64    // answers.id
	QuestionID uint64    // answers.question_id
	UserID     uint64    // answers.user_id (author)
	Content    string    // answers.content
	Score      int       // answers.score
	IsAccepted bool      // answers.is_accepted
	CreatedAt  time.Time // answers.created_at
	UpdatedAt  time.Time // answers.updated_at
}

// Tag mirrors the `tags` table; questions reference tags through the
// question_tags join table.
type Tag struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
