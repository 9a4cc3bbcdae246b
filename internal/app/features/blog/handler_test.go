package blog_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkboardhq/inkboard/internal/app/engagement"
	"github.com/inkboardhq/inkboard/internal/app/features/blog"
	"github.com/inkboardhq/inkboard/internal/app/policy/moderation"
	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	commentstore "github.com/inkboardhq/inkboard/internal/app/store/comments"
	poststore "github.com/inkboardhq/inkboard/internal/app/store/posts"
	"github.com/inkboardhq/inkboard/internal/app/system/auth"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"github.com/inkboardhq/inkboard/internal/testutil"
	"go.uber.org/zap"
)

type blogEnv struct {
	handler  *blog.Handler
	fixtures *testutil.Fixtures
	accounts *accountstore.Store
	posts    *poststore.Store
	comments *commentstore.Store
}

func setupBlog(t *testing.T) blogEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	accounts := accountstore.New(db)
	posts := poststore.New(db)
	comments := commentstore.New(db)
	ledger := engagement.New(posts, comments, zap.NewNop())
	policy := moderation.New(accounts, posts, comments, zap.NewNop())
	return blogEnv{
		handler:  blog.NewHandler(accounts, posts, comments, ledger, policy, zap.NewNop()),
		fixtures: testutil.NewFixtures(t, db),
		accounts: accounts,
		posts:    posts,
		comments: comments,
	}
}

func authedJSON(method, target string, payload any, ident *auth.Identity) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return auth.WithTestIdentity(req, ident)
}

func TestHandleCreatePost(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	req := authedJSON("POST", "/post", map[string]string{
		"title":       "A Fresh Post",
		"description": "Something to read",
	}, testutil.IdentityFor(user))
	rec := httptest.NewRecorder()

	env.handler.HandleCreatePost(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	posts, err := env.posts.List(ctx, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "A Fresh Post" {
		t.Fatalf("post not stored: %+v", posts)
	}

	// Back-reference recorded on the author
	acct, err := env.accounts.FindUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindUserByID failed: %v", err)
	}
	if len(acct.PostIDs) != 1 || acct.PostIDs[0] != posts[0].ID {
		t.Errorf("author posts: %v", acct.PostIDs)
	}
}

func TestHandleCreatePost_ShortTitle(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	req := authedJSON("POST", "/post", map[string]string{
		"title":       "abc",
		"description": "Something to read",
	}, testutil.IdentityFor(user))
	rec := httptest.NewRecorder()

	env.handler.HandleCreatePost(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestServePost_ExpandsComments(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	post := env.fixtures.CreatePost(ctx, user.ID, "Discussed", "text")
	env.fixtures.CreateComment(ctx, post.ID, user, "first")
	env.fixtures.CreateComment(ctx, post.ID, user, "second")

	req := httptest.NewRequest("GET", "/post/"+post.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "postID", post.ID.Hex())
	rec := httptest.NewRecorder()

	env.handler.ServePost(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Post struct {
			Title    string `json:"title"`
			Comments []struct {
				Description string `json:"description"`
				CreatedBy   string `json:"created_by"`
			} `json:"comments"`
		} `json:"post"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Post.Title != "Discussed" {
		t.Errorf("title: got %q", body.Post.Title)
	}
	if len(body.Post.Comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(body.Post.Comments))
	}
	if body.Post.Comments[0].Description != "first" || body.Post.Comments[1].Description != "second" {
		t.Errorf("comment order wrong: %+v", body.Post.Comments)
	}
	if body.Post.Comments[0].CreatedBy != "Author" {
		t.Errorf("created_by: got %q", body.Post.Comments[0].CreatedBy)
	}
}

func TestServePost_HiddenReadsAsMissing(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	post := env.fixtures.CreatePost(ctx, user.ID, "Hated", "text")
	env.fixtures.DislikePost(ctx, post.ID, models.DislikeThreshold)

	req := httptest.NewRequest("GET", "/post/"+post.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "postID", post.ID.Hex())
	rec := httptest.NewRecorder()

	env.handler.ServePost(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeSearch_MissingQuery(t *testing.T) {
	env := setupBlog(t)

	req := httptest.NewRequest("GET", "/posts/search", nil)
	rec := httptest.NewRecorder()

	env.handler.ServeSearch(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestHandleSubscribe_OneWay(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := env.fixtures.CreateUnsubscribedUser(ctx, "Sub", "sub@example.com")
	ident := testutil.IdentityFor(user)

	req := authedJSON("PUT", "/subscription", nil, ident)
	rec := httptest.NewRecorder()
	env.handler.HandleSubscribe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first subscribe: got status %d: %s", rec.Code, rec.Body.String())
	}

	req = authedJSON("PUT", "/subscription", nil, ident)
	rec = httptest.NewRecorder()
	env.handler.HandleSubscribe(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("second subscribe: got status %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleLikePost_RepeatConflicts(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	reader := env.fixtures.CreateUser(ctx, "Reader", "reader@example.com", "hash")
	post := env.fixtures.CreatePost(ctx, author.ID, "Likeable", "text")

	like := func() *httptest.ResponseRecorder {
		req := authedJSON("POST", "/posts/"+post.ID.Hex()+"/like", nil, testutil.IdentityFor(reader))
		req = testutil.WithChiURLParam(req, "postID", post.ID.Hex())
		rec := httptest.NewRecorder()
		env.handler.HandleLikePost(rec, req)
		return rec
	}

	if rec := like(); rec.Code != http.StatusOK {
		t.Fatalf("first like: got status %d: %s", rec.Code, rec.Body.String())
	}
	if rec := like(); rec.Code != http.StatusConflict {
		t.Errorf("repeat like: got status %d, want %d", rec.Code, http.StatusConflict)
	}

	stored, _ := env.posts.GetByID(ctx, post.ID, true)
	if stored.Likes.Total != 1 {
		t.Errorf("likes total: got %d, want 1", stored.Likes.Total)
	}
}

func TestHandleAddComment_HiddenPost(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	reader := env.fixtures.CreateUser(ctx, "Reader", "reader@example.com", "hash")
	post := env.fixtures.CreatePost(ctx, author.ID, "Hated", "text")
	env.fixtures.DislikePost(ctx, post.ID, models.DislikeThreshold)

	// Hiding removes a post from listings, not from the discussion
	req := authedJSON("POST", "/posts/"+post.ID.Hex()+"/comment",
		map[string]string{"description": "still here"}, testutil.IdentityFor(reader))
	req = testutil.WithChiURLParam(req, "postID", post.ID.Hex())
	rec := httptest.NewRecorder()

	env.handler.HandleAddComment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := env.posts.GetByID(ctx, post.ID, false)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(stored.CommentIDs) != 1 {
		t.Errorf("got %d comment refs, want 1", len(stored.CommentIDs))
	}
}

func TestHandleAddComment(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	reader := env.fixtures.CreateUser(ctx, "Reader Name", "reader@example.com", "hash")
	post := env.fixtures.CreatePost(ctx, author.ID, "Open Thread", "text")

	req := authedJSON("POST", "/posts/"+post.ID.Hex()+"/comment",
		map[string]string{"description": "great read"}, testutil.IdentityFor(reader))
	req = testutil.WithChiURLParam(req, "postID", post.ID.Hex())
	rec := httptest.NewRecorder()

	env.handler.HandleAddComment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	stored, _ := env.posts.GetByID(ctx, post.ID, true)
	if len(stored.CommentIDs) != 1 {
		t.Fatalf("post comment refs: %v", stored.CommentIDs)
	}
	cm, err := env.comments.GetByID(ctx, stored.CommentIDs[0])
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if cm.CreatedBy != "Reader Name" {
		t.Errorf("created_by snapshot: got %q", cm.CreatedBy)
	}
	if cm.AuthorID != reader.ID {
		t.Errorf("author id: got %v", cm.AuthorID)
	}
}

func TestHandleDeletePost_Ownership(t *testing.T) {
	env := setupBlog(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := env.fixtures.CreateUser(ctx, "Owner", "owner@example.com", "hash")
	intruder := env.fixtures.CreateUser(ctx, "Intruder", "intruder@example.com", "hash")
	post := env.fixtures.CreatePost(ctx, owner.ID, "Mine", "text")

	del := func(ident *auth.Identity) *httptest.ResponseRecorder {
		req := authedJSON("DELETE", "/posts/"+post.ID.Hex(), nil, ident)
		req = testutil.WithChiURLParam(req, "postID", post.ID.Hex())
		rec := httptest.NewRecorder()
		env.handler.HandleDeletePost(rec, req)
		return rec
	}

	if rec := del(testutil.IdentityFor(intruder)); rec.Code != http.StatusForbidden {
		t.Errorf("intruder delete: got status %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := del(testutil.IdentityFor(owner)); rec.Code != http.StatusOK {
		t.Errorf("owner delete: got status %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := env.posts.GetByID(ctx, post.ID, false); err == nil {
		t.Error("post still present after owner delete")
	}
}
