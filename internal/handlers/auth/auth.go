package auth

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Package auth provides the login and profile handlers guarding the admin
// endpoints. There is a single admin account, configured from the environment.
// The HTTP methods are implemented in separate files (login.go, me.go).

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = 60 * time.Minute

// Handler checks credentials against the configured admin account.
type Handler struct {
	username     string
	passwordHash []byte // nil disables login
	jwtSecret    string
	log          *zap.Logger
}

// New hashes the admin password once so logins never compare plaintext.
// An empty password leaves login disabled.
func New(username, password, jwtSecret string, log *zap.Logger) (*Handler, error) {
	h := &Handler{username: username, jwtSecret: jwtSecret, log: log}
	if password == "" {
		return h, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	h.passwordHash = hash
	return h, nil
}

// Enabled reports whether an admin password was configured.
func (h *Handler) Enabled() bool { return h.passwordHash != nil }
