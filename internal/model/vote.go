package model

import "time"

// VoteType is the direction of a vote as stored in votes.vote_type.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether v is one of the two known directions.
func (v VoteType) Valid() bool { return v == VoteUp || v == VoteDown }

// VoteableType names the table a vote points at (votes.voteable_type).
type VoteableType string

const (
	VoteableQuestion VoteableType = "question"
	VoteableAnswer   VoteableType = "answer"
)

// Valid reports whether t is a known target kind.
func (t VoteableType) Valid() bool { return t == VoteableQuestion || t == VoteableAnswer }

// Vote mirrors the `votes` table. The (UserID, VoteableID, VoteableType)
// triple is unique: a user holds at most one vote per target.
type Vote struct {
	ID           uint64       // votes.id
	UserID       uint64       // votes.user_id
	VoteableID   uint64       // votes.voteable_id
	VoteableType VoteableType // votes.voteable_type
	VoteType     VoteType     // votes.vote_type
	CreatedAt    time.Time    // votes.created_at
}

// ResolveVote computes the state transition for a vote request given the
// voter's existing vote on the target (nil when none). It returns the vote
// row that should remain after the request (nil means the row is removed)
// and the delta to apply to the target's score:
//
//	none + up   -> up,   +1        none + down -> down, -1
//	up   + up   -> none, -1        down + down -> none, +1
//	up   + down -> down, -2        down + up   -> up,   +2
//
// Requesting the same direction twice retracts the vote; requesting the
// opposite direction flips it with a double-magnitude delta. The caller
// must apply the row mutation and the score delta in one transaction.
func ResolveVote(existing *VoteType, requested VoteType) (next *VoteType, delta int) {
	if existing == nil {
		v := requested
		if requested == VoteUp {
			return &v, 1
		}
		return &v, -1
	}
	if *existing == requested {
		// toggle off
		if requested == VoteUp {
			return nil, -1
		}
		return nil, 1
	}
	v := requested
	if requested == VoteUp {
		return &v, 2
	}
	return &v, -2
}
