// Package tokens issues and verifies the signed bearer tokens that carry a
// request's identity and role claims.
//
// Tokens are HS256 JWTs with a fixed one-hour validity and no refresh
// mechanism: an expired token simply fails verification and the caller must
// log in again. Verification trusts the signature and embedded claims and
// never consults storage, so role or status changes made after issuance do
// not invalidate outstanding tokens until they expire. Live account status
// is re-checked separately by the gates package where it matters.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TTL is the fixed validity window for issued tokens.
const TTL = time.Hour

// MinSecretLen is the smallest accepted signing secret, in bytes.
const MinSecretLen = 32

// ErrInvalidToken covers bad signatures, malformed tokens, and expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload embedded in every issued token. The JSON keys match
// the platform's wire format.
type Claims struct {
	jwt.RegisteredClaims

	AccountID string      `json:"userId"`
	Role      models.Role `json:"role"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
}

// Service signs and verifies tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	issuer string
}

// New builds a token Service. Secrets shorter than MinSecretLen are refused.
func New(secret, issuer string) (*Service, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("tokens: secret must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}
	return &Service{secret: []byte(secret), issuer: issuer}, nil
}

// Issue signs a token binding the account id, role, email, and display name.
// Expiry is fixed at TTL from now.
func (s *Service) Issue(id primitive.ObjectID, role models.Role, email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.Hex(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
		AccountID: id.Hex(),
		Role:      role,
		Email:     email,
		Name:      name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("tokens: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and validity window and returns the embedded
// claims. Any failure maps to ErrInvalidToken; callers need not distinguish
// malformed from expired.
func (s *Service) Verify(raw string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	if _, err := primitive.ObjectIDFromHex(claims.AccountID); err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
