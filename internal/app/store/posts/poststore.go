// Package poststore persists posts and their denormalized reaction tallies.
package poststore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrStaleReactions is returned by ReplaceReactions when the document's
// tallies changed between read and write. Callers re-read and retry.
var ErrStaleReactions = errors.New("reaction tallies changed concurrently")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// visibleFilter hides posts at or above the dislike threshold.
func visibleFilter() bson.M {
	return bson.M{"dislikes.total": bson.M{"$lt": models.DislikeThreshold}}
}

// Insert stores a new post with empty tallies and comment list.
func (s *Store) Insert(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = primitive.NewObjectID()
	if p.Likes.By == nil {
		p.Likes.By = []primitive.ObjectID{}
	}
	if p.Dislikes.By == nil {
		p.Dislikes.By = []primitive.ObjectID{}
	}
	if p.CommentIDs == nil {
		p.CommentIDs = []primitive.ObjectID{}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// GetByID loads a post. With visibleOnly set, posts at or above the dislike
// threshold are reported as missing, same as ordinary listings.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID, visibleOnly bool) (*models.Post, error) {
	filter := bson.M{"_id": id}
	if visibleOnly {
		filter["dislikes.total"] = bson.M{"$lt": models.DislikeThreshold}
	}
	var p models.Post
	if err := s.c.FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

// List returns posts newest-activity first, ties broken by like count.
// With visibleOnly set, hidden posts are excluded.
func (s *Store) List(ctx context.Context, visibleOnly bool) ([]models.Post, error) {
	filter := bson.M{}
	if visibleOnly {
		filter = visibleFilter()
	}
	return s.find(ctx, filter)
}

// SearchTitle returns posts whose title contains q, case-insensitively.
// The query is treated as a literal string, not a pattern.
func (s *Store) SearchTitle(ctx context.Context, q string, visibleOnly bool) ([]models.Post, error) {
	filter := bson.M{
		"title": bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"},
	}
	if visibleOnly {
		filter["dislikes.total"] = bson.M{"$lt": models.DislikeThreshold}
	}
	return s.find(ctx, filter)
}

// FindByAuthor returns every post authored by the given user, hidden ones
// included. Used by the user delete cascade.
func (s *Store) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"author": authorID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "likes.total", Value: -1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Post{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateContent rewrites the post's title and description.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, title, description string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":       title,
			"description": description,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReplaceReactions writes next over the post's tallies, but only if the
// stored reaction version still matches the one prev was read at. Every
// reaction write bumps the version, so a concurrent reaction makes the
// guarded write miss, surfacing ErrStaleReactions.
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

// PushComment appends a comment reference in creation order.
func (s *Store) PushComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": commentID}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PullComment removes a comment reference.
func (s *Store) PullComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"comments": commentID}, "$set": bson.M{"updated_at": time.Now()}},
	)
	return err
}

// Delete removes a post document. Returns the number deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
