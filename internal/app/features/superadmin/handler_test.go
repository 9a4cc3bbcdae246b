package superadmin_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkboardhq/inkboard/internal/app/features/superadmin"
	"github.com/inkboardhq/inkboard/internal/app/policy/moderation"
	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	commentstore "github.com/inkboardhq/inkboard/internal/app/store/comments"
	poststore "github.com/inkboardhq/inkboard/internal/app/store/posts"
	"github.com/inkboardhq/inkboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type superEnv struct {
	handler  *superadmin.Handler
	fixtures *testutil.Fixtures
	accounts *accountstore.Store
	posts    *poststore.Store
}

func setupSuperAdmin(t *testing.T) superEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	accounts := accountstore.New(db)
	posts := poststore.New(db)
	comments := commentstore.New(db)
	policy := moderation.New(accounts, posts, comments, zap.NewNop())
	return superEnv{
		handler:  superadmin.NewHandler(accounts, policy, zap.NewNop()),
		fixtures: testutil.NewFixtures(t, db),
		accounts: accounts,
		posts:    posts,
	}
}

func TestServeAdmins(t *testing.T) {
	env := setupSuperAdmin(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	env.fixtures.CreateAdmin(ctx, "Bravo Admin", "b@example.com")
	env.fixtures.CreateAdmin(ctx, "Alpha Admin", "a@example.com")

	req := httptest.NewRequest("GET", "/admins", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeAdmins(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Admins []struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		} `json:"admins"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body.Admins) != 2 {
		t.Fatalf("got %d admins, want 2", len(body.Admins))
	}
	if body.Admins[0].Name != "Alpha Admin" {
		t.Errorf("expected name sort, got %q first", body.Admins[0].Name)
	}
	for _, a := range body.Admins {
		if a.Password != "" {
			t.Errorf("password leaked for %q", a.Name)
		}
	}
}

func TestHandleDeleteAdmin(t *testing.T) {
	env := setupSuperAdmin(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adminAcct := env.fixtures.CreateAdmin(ctx, "Gone Soon", "gone@example.com")

	req := httptest.NewRequest("DELETE", "/deleteadmin/"+adminAcct.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "adminID", adminAcct.ID.Hex())
	rec := httptest.NewRecorder()
	env.handler.HandleDeleteAdmin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}

	// Repeat deletion reports not found
	req = httptest.NewRequest("DELETE", "/deleteadmin/"+adminAcct.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "adminID", adminAcct.ID.Hex())
	rec = httptest.NewRecorder()
	env.handler.HandleDeleteAdmin(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleDeletePost_NoThreshold(t *testing.T) {
	env := setupSuperAdmin(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := env.fixtures.CreateUser(ctx, "Author", "author@example.com", "hash")
	post := env.fixtures.CreatePost(ctx, user.ID, "Zero Dislikes", "text")

	req := httptest.NewRequest("DELETE", "/deletepost/"+post.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "postID", post.ID.Hex())
	rec := httptest.NewRecorder()
	env.handler.HandleDeletePost(rec, req)

	// No dislike threshold applies at this tier
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := env.posts.GetByID(ctx, post.ID, false); err == nil {
		t.Error("post still present")
	}
}

func TestHandleDeletePost_Missing(t *testing.T) {
	env := setupSuperAdmin(t)

	missing := primitive.NewObjectID().Hex()
	req := httptest.NewRequest("DELETE", "/deletepost/"+missing, nil)
	req = testutil.WithChiURLParam(req, "postID", missing)
	rec := httptest.NewRecorder()
	env.handler.HandleDeletePost(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}
