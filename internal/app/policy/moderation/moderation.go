// Package moderation implements ownership checks, the dislike-threshold rule
// for admin deletions, and the delete cascades that keep the users, posts,
// and comments collections consistent.
//
// Cascades are sequences of independent per-document writes; there is no
// multi-document transaction. A write that fails mid-sequence is surfaced as
// an internal error and the deletions already applied are kept.
package moderation

import (
	"context"
	"errors"

	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	commentstore "github.com/inkboardhq/inkboard/internal/app/store/comments"
	poststore "github.com/inkboardhq/inkboard/internal/app/store/posts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotAuthorized is returned when the acting account owns neither the
// resource nor a role that overrides ownership.
var ErrNotAuthorized = errors.New("not authorized for this resource")

type Policy struct {
	accounts *accountstore.Store
	posts    *poststore.Store
	comments *commentstore.Store
	log      *zap.Logger
}

func New(accounts *accountstore.Store, posts *poststore.Store, comments *commentstore.Store, log *zap.Logger) *Policy {
	return &Policy{accounts: accounts, posts: posts, comments: comments, log: log}
}

// EditPost rewrites the post's title and description if actor is its author.
// Hidden posts stay editable by their author.
func (p *Policy) EditPost(ctx context.Context, postID, actor primitive.ObjectID, title, description string) (*models.Post, error) {
	post, err := p.posts.GetByID(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor {
		return nil, ErrNotAuthorized
	}
	if err := p.posts.UpdateContent(ctx, postID, title, description); err != nil {
		return nil, err
	}
	return p.posts.GetByID(ctx, postID, false)
}

// DeletePostAsOwner removes the actor's own post with its comment cascade.
func (p *Policy) DeletePostAsOwner(ctx context.Context, postID, actor primitive.ObjectID) error {
	post, err := p.posts.GetByID(ctx, postID, false)
	if err != nil {
		return err
	}
	if post.AuthorID != actor {
		return ErrNotAuthorized
	}
	return p.deletePostCascade(ctx, post)
}

// DeletePostAsModerator removes the post only when its dislike count has
// crossed the threshold. A post below the threshold is left in place and
// reported with deleted=false; that is an answer, not an error.
func (p *Policy) DeletePostAsModerator(ctx context.Context, postID primitive.ObjectID) (bool, error) {
	post, err := p.posts.GetByID(ctx, postID, false)
	if err != nil {
		return false, err
	}
	if !post.ModeratorDeletable() {
		return false, nil
	}
	if err := p.deletePostCascade(ctx, post); err != nil {
		return false, err
	}
	return true, nil
}

// DeletePostAsSuperAdmin removes any post unconditionally.
func (p *Policy) DeletePostAsSuperAdmin(ctx context.Context, postID primitive.ObjectID) error {
	post, err := p.posts.GetByID(ctx, postID, false)
	if err != nil {
		return err
	}
	return p.deletePostCascade(ctx, post)
}

// deletePostCascade removes the post's comments, the post document, and the
// back-reference in the author's posts array, in that order.
func (p *Policy) deletePostCascade(ctx context.Context, post *models.Post) error {
	if _, err := p.comments.DeleteMany(ctx, post.CommentIDs); err != nil {
		p.log.Error("post cascade: deleting comments failed",
			zap.String("post_id", post.ID.Hex()), zap.Error(err))
		return err
	}
	if _, err := p.posts.Delete(ctx, post.ID); err != nil {
		p.log.Error("post cascade: deleting post failed",
			zap.String("post_id", post.ID.Hex()), zap.Error(err))
		return err
	}
	if err := p.accounts.PullPost(ctx, post.AuthorID, post.ID); err != nil {
		p.log.Error("post cascade: removing author back-reference failed",
			zap.String("post_id", post.ID.Hex()),
			zap.String("author_id", post.AuthorID.Hex()), zap.Error(err))
		return err
	}
	return nil
}

// DeleteComment removes a comment and its reference from the post. Allowed
// for the comment's author, the post's author, and moderators. The comment
// must be attached to the given post; a mismatched pair reads as missing, so
// owning some other post grants nothing here.
func (p *Policy) DeleteComment(ctx context.Context, postID, commentID, actor primitive.ObjectID, moderator bool) error {
	post, err := p.posts.GetByID(ctx, postID, false)
	if err != nil {
		return err
	}
	if !post.HasComment(commentID) {
		return mongo.ErrNoDocuments
	}
	if !moderator {
		cm, err := p.comments.GetByID(ctx, commentID)
		if err != nil {
			return err
		}
		if cm.AuthorID != actor && post.AuthorID != actor {
			return ErrNotAuthorized
		}
	}
	if err := p.posts.PullComment(ctx, postID, commentID); err != nil {
		return err
	}
	n, err := p.comments.Delete(ctx, commentID)
	if err != nil {
		p.log.Error("comment delete: document removal failed after pull",
			zap.String("comment_id", commentID.Hex()), zap.Error(err))
		return err
	}
	if n == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteUser removes a user account and everything it authored: each of the
// user's posts with its comment cascade, then the account document.
func (p *Policy) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	posts, err := p.posts.FindByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range posts {
		if err := p.deletePostCascade(ctx, &posts[i]); err != nil {
			p.log.Error("user cascade aborted mid-sequence",
				zap.String("user_id", userID.Hex()),
				zap.String("post_id", posts[i].ID.Hex()), zap.Error(err))
			return err
		}
	}
	n, err := p.accounts.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteAdmin removes an admin account. Admins author nothing, so there is
// no cascade.
func (p *Policy) DeleteAdmin(ctx context.Context, adminID primitive.ObjectID) error {
	n, err := p.accounts.DeleteAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if n == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ToggleUserStatus flips a user between active and inactive and returns the
// new status.
func (p *Policy) ToggleUserStatus(ctx context.Context, userID primitive.ObjectID) (string, error) {
	u, err := p.accounts.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	next := models.StatusActive
	if u.Status == models.StatusActive {
		next = models.StatusInactive
	}
	if err := p.accounts.SetUserStatus(ctx, userID, next); err != nil {
		return "", err
	}
	return next, nil
}
