// Package service holds the voting and acceptance engines. Handlers
// stay thin; the rules about who may do what to whose content live
// here, behind small store interfaces so the engines test without a
// database.
package service

import "qaplatform/internal/model"

// Action names a capability-checked operation.
type Action string

const (
	ActionVote     Action = "vote"     // vote on someone else's content
	ActionAccept   Action = "accept"   // accept an answer on your own question
	ActionModerate Action = "moderate" // admin-only removal and role changes
)

// Authorize reports whether the actor may perform action against
// content owned by ownerID. Voting is barred on your own content,
// acceptance is reserved for the question author, moderation for
// admins.
func Authorize(actor model.Actor, action Action, ownerID uint64) bool {
	switch action {
	case ActionVote:
		return actor.ID != 0 && actor.ID != ownerID
	case ActionAccept:
		return actor.ID != 0 && actor.ID == ownerID
	case ActionModerate:
		return actor.Role == model.RoleAdmin
	}
	return false
}
