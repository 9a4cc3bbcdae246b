// internal/domain/models/reactions.go
package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrAlreadyLiked is returned when an account likes a resource it has
	// already liked. The reaction state is left untouched.
	ErrAlreadyLiked = errors.New("already liked")
	// ErrAlreadyDisliked is the mirror error for repeated dislikes.
	ErrAlreadyDisliked = errors.New("already disliked")
)

// Tally is one side of a reaction pair: a denormalized counter plus the set
// of accounts it counts. Invariant: Total == len(By) at all times.
type Tally struct {
	Total int                  `bson:"total" json:"total"`
	By    []primitive.ObjectID `bson:"by" json:"by"`
}

// Contains reports whether id is in the tally's account set.
func (t *Tally) Contains(id primitive.ObjectID) bool {
	for _, member := range t.By {
		if member == id {
			return true
		}
	}
	return false
}

func (t *Tally) add(id primitive.ObjectID) {
	t.By = append(t.By, id)
	t.Total = len(t.By)
}

func (t *Tally) remove(id primitive.ObjectID) {
	kept := t.By[:0]
	for _, member := range t.By {
		if member != id {
			kept = append(kept, member)
		}
	}
	t.By = kept
	t.Total = len(t.By)
}

// Reactions is the like/dislike pair carried by posts and comments.
// Invariant: Likes.By and Dislikes.By are disjoint sets.
//
// Version counts reaction writes on the document. The stores' guarded
// replace pins it, so a write based on a stale read misses even when two
// intervening flips have restored the totals it saw.
type Reactions struct {
	Likes    Tally `bson:"likes" json:"likes"`
	Dislikes Tally `bson:"dislikes" json:"dislikes"`
	Version  int64 `bson:"reaction_version" json:"-"`
}

// Like records a like from account. If the account previously disliked the
// resource, the dislike is withdrawn in the same operation so the two sets
// never overlap. Returns ErrAlreadyLiked without mutating anything when the
// account is already in the like set.
func (r *Reactions) Like(account primitive.ObjectID) error {
	if r.Likes.Contains(account) {
		return ErrAlreadyLiked
	}
	if r.Dislikes.Contains(account) {
		r.Dislikes.remove(account)
	}
	r.Likes.add(account)
	return nil
}

// Dislike is the mirror of Like with the roles of the two sets swapped.
func (r *Reactions) Dislike(account primitive.ObjectID) error {
	if r.Dislikes.Contains(account) {
		return ErrAlreadyDisliked
	}
	if r.Likes.Contains(account) {
		r.Likes.remove(account)
	}
	r.Dislikes.add(account)
	return nil
}
