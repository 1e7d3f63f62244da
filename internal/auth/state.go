// Package auth holds the client session: who is signed in, with which token,
// and whether that user may enter the back-office.
package auth

import (
	"context"
	"encoding/json"
	"errors"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/logger"
	"fireworks-storefront/internal/repository/clientstate"
)

// Session is the persisted authentication record. Build it with newSession so
// the derived flags always agree with User and Token.
type Session struct {
	User            *domain.User `json:"user"`
	Token           *string      `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsAdmin         bool         `json:"isAdmin"`
}

func newSession(user *domain.User, token *string) Session {
	s := Session{User: user, Token: token}
	s.IsAuthenticated = user != nil && token != nil
	s.IsAdmin = user != nil && user.IsAdmin()
	return s
}

// BearerToken returns the token, or "" when logged out.
func (s Session) BearerToken() string {
	if s.Token == nil {
		return ""
	}
	return *s.Token
}

func (s Session) clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Token != nil {
		tok := *s.Token
		out.Token = &tok
	}
	return out
}

// State owns the session for one client process. It is not safe for concurrent
// use; the storefront App serializes access.
type State struct {
	repo    clientstate.Repository
	logger  *logger.Logger
	session Session
}

// New returns a logged-out State that persists through repo.
func New(repo clientstate.Repository, log *logger.Logger) *State {
	if repo == nil {
		repo = clientstate.NewMemory()
	}
	return &State{repo: repo, logger: logger.OrNop(log), session: newSession(nil, nil)}
}

// Restore loads the session saved under clientstate.KeyAuth. A missing or
// unreadable record yields a logged-out State.
func Restore(ctx context.Context, repo clientstate.Repository, log *logger.Logger) *State {
	s := New(repo, log)
	data, err := s.repo.Load(ctx, clientstate.KeyAuth)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error(ctx, "load persisted session", err)
		}
		return s
	}
	var stored Session
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn(ctx, "discarding unreadable persisted session")
		return s
	}
	s.session = newSession(stored.User, stored.Token)
	if s.session.User != nil {
		s.logger.Base().Debug().Int64("user_id", s.session.User.ID).Bool("admin", s.session.IsAdmin).Msg("session restored")
	}
	return s
}

// Session returns a copy of the current session.
func (s *State) Session() Session {
	return s.session.clone()
}

// Login replaces the session wholesale.
func (s *State) Login(ctx context.Context, user domain.User, token string) {
	s.session = newSession(&user, &token)
	s.persist(ctx)
}

// Logout resets to the logged-out default and removes the persisted record.
func (s *State) Logout(ctx context.Context) {
	s.session = newSession(nil, nil)
	if err := s.repo.Delete(ctx, clientstate.KeyAuth); err != nil {
		s.logger.Error(ctx, "delete persisted session", err)
	}
}

// UpdateUser swaps the user record, keeping the token. The admin flag follows
// the new role.
func (s *State) UpdateUser(ctx context.Context, user domain.User) {
	s.session = newSession(&user, s.session.Token)
	s.persist(ctx)
}

func (s *State) persist(ctx context.Context) {
	data, err := json.Marshal(s.session)
	if err != nil {
		s.logger.Error(ctx, "encode session", err)
		return
	}
	if err := s.repo.Save(ctx, clientstate.KeyAuth, data); err != nil {
		s.logger.Error(ctx, "persist session", err)
	}
}
