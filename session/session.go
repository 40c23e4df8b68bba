// Package session keeps what a visitor's browser would otherwise hold on to
// between page loads: who is logged in and the round they are composing.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maxmalik/FORE/model"
	"github.com/maxmalik/FORE/workflow"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string
	User      *model.User
	Draft     *workflow.Draft
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Draft:     workflow.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.User != nil
}

// Login replaces the user and throws away any round in progress.
func (s *Session) Login(u *model.User) {
	s.User = u
	s.Draft = workflow.New()
}

// normalize fixes up a session read back from storage.
func (s *Session) normalize() {
	if s.Draft == nil {
		s.Draft = workflow.New()
	}
	s.Draft.Normalize()
}

// Store persists sessions. Get returns ErrNotFound for unknown or expired
// sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error

	// Claim atomically marks key as taken for the session. It reports false
	// when the key was already taken. A claim lasts as long as a session
	// would unless it is released.
	Claim(ctx context.Context, id, key string) (bool, error)
	Release(ctx context.Context, id, key string) error
}
