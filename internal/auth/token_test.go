package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCodec_IssueAndVerify(t *testing.T) {
	t.Parallel()

	c := NewCodec("super-secret", 30*time.Minute)

	tok, err := c.Issue(42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("subject mismatch: got %d want 42", userID)
	}
}

func TestCodec_Expired(t *testing.T) {
	t.Parallel()

	c := NewCodec("secret", 30*time.Minute)

	tok, err := c.IssueWithTTL(1, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueWithTTL error: %v", err)
	}

	_, err = c.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	t.Parallel()

	c := NewCodec("secret", 30*time.Minute)

	tok, err := c.Issue(7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// flip the last character of the signature segment
	last := tok[len(tok)-1]
	flipped := "A"
	if last == 'A' {
		flipped = "B"
	}
	tampered := tok[:len(tok)-1] + flipped

	_, err = c.Verify(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_TamperedAndExpired(t *testing.T) {
	t.Parallel()

	c := NewCodec("secret", 30*time.Minute)

	tok, err := c.IssueWithTTL(7, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueWithTTL error: %v", err)
	}
	flipped := "A"
	if tok[len(tok)-1] == 'A' {
		flipped = "B"
	}
	tampered := tok[:len(tok)-1] + flipped

	// signature failure wins over expiry
	if _, err := c.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewCodec("right-secret", time.Hour).Issue(7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewCodec("wrong-secret", time.Hour).Verify(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	t.Parallel()

	c := NewCodec("k", time.Hour)
	for _, tok := range []string{"", "garbage", "not.a.jwt", strings.Repeat("x", 200)} {
		if _, err := c.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestCodec_NonPositiveSubject(t *testing.T) {
	t.Parallel()

	// a structurally valid token whose subject cannot be a user id
	c := NewCodec("k", time.Hour)
	tok, err := c.IssueWithTTL(0, time.Hour)
	if err != nil {
		t.Fatalf("IssueWithTTL error: %v", err)
	}

	if _, err := c.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for non-positive subject, got %v", err)
	}
}
