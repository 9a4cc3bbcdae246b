// Package commentstore persists comments. Comments are referenced from their
// post's comments array; the cascade logic in the moderation policy keeps the
// two collections consistent.
package commentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrStaleReactions is returned by ReplaceReactions when the document's
// tallies changed between read and write. Callers re-read and retry.
var ErrStaleReactions = errors.New("reaction tallies changed concurrently")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// Insert stores a new comment with empty tallies.
func (s *Store) Insert(ctx context.Context, cm models.Comment) (models.Comment, error) {
	cm.ID = primitive.NewObjectID()
	if cm.Likes.By == nil {
		cm.Likes.By = []primitive.ObjectID{}
	}
	if cm.Dislikes.By == nil {
		cm.Dislikes.By = []primitive.ObjectID{}
	}
	now := time.Now()
	cm.CreatedAt = now
	cm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// GetByID loads a comment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var cm models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm); err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &cm, nil
}

// FindByIDs loads the given comments and returns them in the order of ids.
// Missing ids are skipped, not errors; a comment deleted between the post
// read and this query simply drops out of the expansion.
func (s *Store) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	if len(ids) == 0 {
		return []models.Comment{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var found []models.Comment
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Comment, len(found))
	for _, cm := range found {
		byID[cm.ID] = cm
	}
	out := make([]models.Comment, 0, len(found))
	for _, id := range ids {
		if cm, ok := byID[id]; ok {
			out = append(out, cm)
		}
	}
	return out, nil
}

// ReplaceReactions writes next over the comment's tallies, but only if the
// stored reaction version still matches the one prev was read at. Every
// reaction write bumps the version.
func (s *Store) ReplaceReactions(ctx context.Context, id primitive.ObjectID, prev, next models.Reactions) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "reaction_version": prev.Version},
		bson.M{
			"$set": bson.M{
				"likes":      next.Likes,
				"dislikes":   next.Dislikes,
				"updated_at": time.Now(),
			},
			"$inc": bson.M{"reaction_version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStaleReactions
	}
	return nil
}

// Delete removes a comment document. Returns the number deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteMany removes every comment in ids. Returns the number deleted.
func (s *Store) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
