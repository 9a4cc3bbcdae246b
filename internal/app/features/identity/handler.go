// Package identity serves signup, login, and password change for the three
// account variants. The same handler is mounted once per variant; the role is
// fixed by the mount, not by the request body.
package identity

import (
	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	"github.com/inkboardhq/inkboard/internal/app/system/ratelimit"
	"github.com/inkboardhq/inkboard/internal/app/system/tokens"
	"go.uber.org/zap"
)

// bcryptCost matches the work factor the platform has always hashed with.
const bcryptCost = 12

type Handler struct {
	Accounts *accountstore.Store
	Tokens   *tokens.Service
	Limits   *ratelimit.LoginLimiter
	Log      *zap.Logger
}

func NewHandler(accounts *accountstore.Store, tokens *tokens.Service, limits *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{Accounts: accounts, Tokens: tokens, Limits: limits, Log: logger}
}
