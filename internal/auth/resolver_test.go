package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"tickets-p2p/internal/domain"
	"tickets-p2p/internal/repository"
)

type fakeUsersRepo struct {
	user *domain.User
	err  error
}

func (f *fakeUsersRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUsersRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || f.user.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.user, nil
}

func TestSessionResolver_Success(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret", time.Hour)
	alice := &domain.User{ID: 1, Username: "alice", Email: "a@x.com", IsActive: true}
	resolver := NewSessionResolver(codec, &fakeUsersRepo{user: alice})

	tok, err := codec.Issue(alice.ID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := resolver.Resolve(context.Background(), tok)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.ID != alice.ID || got.Username != "alice" {
		t.Fatalf("resolved wrong user: %+v", got)
	}
}

func TestSessionResolver_BadToken(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret", time.Hour)
	resolver := NewSessionResolver(codec, &fakeUsersRepo{})

	for _, tok := range []string{"", "garbage"} {
		if _, err := resolver.Resolve(context.Background(), tok); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("token %q: expected ErrUnauthenticated, got %v", tok, err)
		}
	}
}

func TestSessionResolver_ExpiredToken(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret", time.Hour)
	alice := &domain.User{ID: 1}
	resolver := NewSessionResolver(codec, &fakeUsersRepo{user: alice})

	tok, err := codec.IssueWithTTL(alice.ID, -time.Second)
	if err != nil {
		t.Fatalf("IssueWithTTL error: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), tok); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSessionResolver_UnknownSubject(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret", time.Hour)
	resolver := NewSessionResolver(codec, &fakeUsersRepo{user: &domain.User{ID: 1}})

	tok, err := codec.Issue(99)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), tok); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSessionResolver_RepositoryFailure(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret", time.Hour)
	boom := errors.New("db down")
	resolver := NewSessionResolver(codec, &fakeUsersRepo{err: boom})

	tok, err := codec.Issue(1)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), tok)
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error passthrough, got %v", err)
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("infrastructure failure must not look like an auth failure")
	}
}
