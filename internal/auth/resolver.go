package auth

import (
	"context"
	"errors"

	"tickets-p2p/internal/domain"
	"tickets-p2p/internal/repository"
)

// ErrUnauthenticated covers every way a presented credential can fail:
// bad signature, expiry, or a subject that matches no user. Callers get no
// finer detail than this.
var ErrUnauthenticated = errors.New("could not validate credentials")

// SessionResolver turns a bearer token into the authenticated user behind it.
// Resolution is read-only: the token contributes nothing but the subject id,
// and the user record is re-read on every call so stale claims cannot leak
// profile data.
type SessionResolver struct {
	codec *Codec
	users repository.UserRepository
}

func NewSessionResolver(codec *Codec, users repository.UserRepository) *SessionResolver {
	return &SessionResolver{codec: codec, users: users}
}

func (r *SessionResolver) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := r.codec.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
