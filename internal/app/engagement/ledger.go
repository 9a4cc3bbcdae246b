// Package engagement applies like and dislike reactions to posts and
// comments. Reactions are mutually exclusive per account: liking withdraws a
// standing dislike and vice versa, so an account is never counted on both
// sides at once.
//
// Tallies are written with a guarded replace that only lands if the
// document's reaction version still matches what was read. When two
// reactions race, the loser re-reads and reapplies, up to maxRetries
// attempts.
package engagement

import (
	"context"
	"errors"

	commentstore "github.com/inkboardhq/inkboard/internal/app/store/comments"
	poststore "github.com/inkboardhq/inkboard/internal/app/store/posts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxRetries = 3

// ErrContended is returned when a reaction loses the guarded write
// maxRetries times in a row.
var ErrContended = errors.New("reaction could not be applied, try again")

type Ledger struct {
	posts    *poststore.Store
	comments *commentstore.Store
	log      *zap.Logger
}

func New(posts *poststore.Store, comments *commentstore.Store, log *zap.Logger) *Ledger {
	return &Ledger{posts: posts, comments: comments, log: log}
}

// LikePost records a like on a post. Returns models.ErrAlreadyLiked if the
// account already likes it. Hidden posts still take reactions, so a disliker
// changing their mind can bring a post back under the threshold.
func (l *Ledger) LikePost(ctx context.Context, postID, account primitive.ObjectID) (*models.Post, error) {
	return l.applyToPost(ctx, postID, account, (*models.Reactions).Like)
}

// DislikePost records a dislike on a post. Returns
// models.ErrAlreadyDisliked if the account already dislikes it.
func (l *Ledger) DislikePost(ctx context.Context, postID, account primitive.ObjectID) (*models.Post, error) {
	return l.applyToPost(ctx, postID, account, (*models.Reactions).Dislike)
}

// LikeComment records a like on a comment.
func (l *Ledger) LikeComment(ctx context.Context, commentID, account primitive.ObjectID) (*models.Comment, error) {
	return l.applyToComment(ctx, commentID, account, (*models.Reactions).Like)
}

// DislikeComment records a dislike on a comment.
func (l *Ledger) DislikeComment(ctx context.Context, commentID, account primitive.ObjectID) (*models.Comment, error) {
	return l.applyToComment(ctx, commentID, account, (*models.Reactions).Dislike)
}

func (l *Ledger) applyToPost(ctx context.Context, postID, account primitive.ObjectID, apply func(*models.Reactions, primitive.ObjectID) error) (*models.Post, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		p, err := l.posts.GetByID(ctx, postID, false)
		if err != nil {
			return nil, err
		}

		prev := p.Reactions
		if err := apply(&p.Reactions, account); err != nil {
			return nil, err
		}

		err = l.posts.ReplaceReactions(ctx, postID, prev, p.Reactions)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, poststore.ErrStaleReactions) {
			return nil, err
		}
		l.log.Debug("post reaction write lost race, retrying",
			zap.String("post_id", postID.Hex()),
			zap.Int("attempt", attempt+1))
	}
	return nil, ErrContended
}

func (l *Ledger) applyToComment(ctx context.Context, commentID, account primitive.ObjectID, apply func(*models.Reactions, primitive.ObjectID) error) (*models.Comment, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		cm, err := l.comments.GetByID(ctx, commentID)
		if err != nil {
			return nil, err
		}

		prev := cm.Reactions
		if err := apply(&cm.Reactions, account); err != nil {
			return nil, err
		}

		err = l.comments.ReplaceReactions(ctx, commentID, prev, cm.Reactions)
		if err == nil {
			return cm, nil
		}
		if !errors.Is(err, commentstore.ErrStaleReactions) {
			return nil, err
		}
		l.log.Debug("comment reaction write lost race, retrying",
			zap.String("comment_id", commentID.Hex()),
			zap.Int("attempt", attempt+1))
	}
	return nil, ErrContended
}
