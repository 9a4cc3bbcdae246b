// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is attached to exactly one post via the post's comment id list.
// CreatedBy is a display-name snapshot taken from the author's token claims
// at creation time; it does not follow later renames.
type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description string             `bson:"description" json:"description"`
	CreatedBy   string             `bson:"created_by" json:"created_by"`
	AuthorID    primitive.ObjectID `bson:"author" json:"author"`

	Reactions `bson:",inline"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
