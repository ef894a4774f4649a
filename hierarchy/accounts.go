package hierarchy

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/fault"
	"github.com/jacentio/lattice/model"
	"github.com/jacentio/lattice/store"
)

// Register creates an account. The username must be unique.
func (e *Engine) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fault.Transient(err)
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := e.store.CreateUser(ctx, u); err != nil {
		return nil, mapStoreErr(err, "Username is not available")
	}

	e.logger.Info("user registered", "user", u.ID, "username", username)
	return u, nil
}

// Login verifies credentials and returns the account. The same fault covers
// an unknown username and a wrong password.
func (e *Engine) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := e.store.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.Unauthenticated("Incorrect Username/Password")
	}
	if err != nil {
		return nil, fault.Transient(err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, fault.Unauthenticated("Incorrect Username/Password")
	}
	return u, nil
}
