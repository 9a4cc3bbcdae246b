package tokens_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/inkboardhq/inkboard/internal/app/system/tokens"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNew_RejectsShortSecret(t *testing.T) {
	_, err := tokens.New("too-short", "inkboard")
	if err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc, err := tokens.New(testSecret, "inkboard")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	id := primitive.NewObjectID()
	raw, err := svc.Issue(id, models.RoleAdmin, "admin@test.com", "Ada Admin")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.AccountID != id.Hex() {
		t.Errorf("AccountID: got %q, want %q", claims.AccountID, id.Hex())
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role: got %q, want %q", claims.Role, models.RoleAdmin)
	}
	if claims.Email != "admin@test.com" {
		t.Errorf("Email: got %q, want %q", claims.Email, "admin@test.com")
	}
	if claims.Name != "Ada Admin" {
		t.Errorf("Name: got %q, want %q", claims.Name, "Ada Admin")
	}
	if claims.Issuer != "inkboard" {
		t.Errorf("Issuer: got %q, want %q", claims.Issuer, "inkboard")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected issued-at and expiry claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != tokens.TTL {
		t.Errorf("validity window: got %v, want %v", got, tokens.TTL)
	}
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	svc, err := tokens.New(testSecret, "inkboard")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	raw, err := svc.Issue(primitive.NewObjectID(), models.RoleUser, "u@test.com", "U")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip a character in the payload segment
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d segments", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, tokens.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	svc1, err := tokens.New(testSecret, "inkboard")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	svc2, err := tokens.New(strings.Repeat("x", 32), "inkboard")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	raw, err := svc1.Issue(primitive.NewObjectID(), models.RoleUser, "u@test.com", "U")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc2.Verify(raw); !errors.Is(err, tokens.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc, err := tokens.New(testSecret, "inkboard")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, tokens.ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}
