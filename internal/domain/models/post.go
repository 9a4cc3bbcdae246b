// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DislikeThreshold is the dislike count at which a post disappears from
// ordinary listings and becomes eligible for moderator deletion.
const DislikeThreshold = 3

// Post is a user-authored entry. Comments are referenced by id in creation
// order; the documents themselves live in the comments collection.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	AuthorID    primitive.ObjectID `bson:"author" json:"author"`

	Reactions `bson:",inline"`

	CommentIDs []primitive.ObjectID `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasComment reports whether the comment id is attached to this post.
func (p *Post) HasComment(id primitive.ObjectID) bool {
	for _, cid := range p.CommentIDs {
		if cid == id {
			return true
		}
	}
	return false
}

// Visible reports whether the post is shown to ordinary users. Moderator
// views ignore it.
func (p *Post) Visible() bool {
	return p.Dislikes.Total < DislikeThreshold
}

// ModeratorDeletable reports whether an admin-initiated deletion is allowed.
// Same count as the visibility cutoff: more than two dislikes.
func (p *Post) ModeratorDeletable() bool {
	return p.Dislikes.Total > DislikeThreshold-1
}
