package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an active, subscribed user account. The password field
// holds the given value as-is; pass a bcrypt hash when the test exercises
// login.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, passwordHash string) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	acct := models.Account{
		ID:         primitive.NewObjectID(),
		Email:      email,
		Password:   passwordHash,
		Name:       name,
		Role:       models.RoleUser,
		Status:     models.StatusActive,
		Subscribed: true,
		PostIDs:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, acct); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return acct
}

// CreateInactiveUser inserts a user account with inactive status.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, name, email string) models.Account {
	f.t.Helper()

	acct := f.CreateUser(ctx, name, email, "unused")
	_, err := f.db.Collection("users").UpdateByID(ctx, acct.ID,
		bson.M{"$set": bson.M{"status": models.StatusInactive}})
	if err != nil {
		f.t.Fatalf("failed to deactivate test user: %v", err)
	}
	acct.Status = models.StatusInactive
	return acct
}

// CreateUnsubscribedUser inserts an active user that has not subscribed.
func (f *Fixtures) CreateUnsubscribedUser(ctx context.Context, name, email string) models.Account {
	f.t.Helper()

	acct := f.CreateUser(ctx, name, email, "unused")
	_, err := f.db.Collection("users").UpdateByID(ctx, acct.ID,
		bson.M{"$set": bson.M{"subscribed": false}})
	if err != nil {
		f.t.Fatalf("failed to unsubscribe test user: %v", err)
	}
	acct.Subscribed = false
	return acct
}

// CreateAdmin inserts an admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.Account {
	f.t.Helper()
	return f.createStaff(ctx, "admins", models.RoleAdmin, name, email)
}

// CreateSuperAdmin inserts a superadmin account.
func (f *Fixtures) CreateSuperAdmin(ctx context.Context, name, email string) models.Account {
	f.t.Helper()
	return f.createStaff(ctx, "superadmins", models.RoleSuperAdmin, name, email)
}

func (f *Fixtures) createStaff(ctx context.Context, coll string, role models.Role, name, email string) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	acct := models.Account{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  "unused",
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection(coll).InsertOne(ctx, acct); err != nil {
		f.t.Fatalf("failed to create test %s: %v", role, err)
	}
	return acct
}

// CreatePost inserts a post by the given author and records the back-reference
// on the author's user document.
func (f *Fixtures) CreatePost(ctx context.Context, author primitive.ObjectID, title, description string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.Post{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		AuthorID:    author,
		Reactions: models.Reactions{
			Likes:    models.Tally{By: []primitive.ObjectID{}},
			Dislikes: models.Tally{By: []primitive.ObjectID{}},
		},
		CommentIDs: []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	_, err := f.db.Collection("users").UpdateByID(ctx, author,
		bson.M{"$push": bson.M{"posts": post.ID}})
	if err != nil {
		f.t.Fatalf("failed to link test post to author: %v", err)
	}
	return post
}

// DislikePost adds n distinct synthetic dislikes directly to a post.
func (f *Fixtures) DislikePost(ctx context.Context, postID primitive.ObjectID, n int) {
	f.t.Helper()

	by := make([]primitive.ObjectID, n)
	for i := range by {
		by[i] = primitive.NewObjectID()
	}
	_, err := f.db.Collection("posts").UpdateByID(ctx, postID,
		bson.M{"$set": bson.M{
			"dislikes.total": n,
			"dislikes.by":    by,
		}})
	if err != nil {
		f.t.Fatalf("failed to set dislikes on test post: %v", err)
	}
}

// CreateComment inserts a comment on the given post and appends its id to the
// post's comment list.
func (f *Fixtures) CreateComment(ctx context.Context, postID primitive.ObjectID, author models.Account, description string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	comment := models.Comment{
		ID:          primitive.NewObjectID(),
		Description: description,
		CreatedBy:   author.Name,
		AuthorID:    author.ID,
		Reactions: models.Reactions{
			Likes:    models.Tally{By: []primitive.ObjectID{}},
			Dislikes: models.Tally{By: []primitive.ObjectID{}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	_, err := f.db.Collection("posts").UpdateByID(ctx, postID,
		bson.M{"$push": bson.M{"comments": comment.ID}})
	if err != nil {
		f.t.Fatalf("failed to link test comment to post: %v", err)
	}
	return comment
}
