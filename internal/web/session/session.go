// Package session keeps the signed-in user of the web client.
//
// The web process holds one Session for every browser: signing in from one
// tab signs in all of them.
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"

	auth "personalportal/internal/auth/model"
	"personalportal/internal/web/apiclient"
	"personalportal/pkg/logger"
)

// Authenticator is the part of the API client the session needs.
type Authenticator interface {
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
}

// State is a snapshot handed to subscribers.
type State struct {
	User          *auth.UserInfo
	Authenticated bool
}

type Session struct {
	mu     sync.Mutex
	user   *auth.UserInfo
	token  string
	nextID int
	subs   map[int]func(State)
}

func New() *Session {
	return &Session{subs: make(map[int]func(State))}
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *Session) CurrentUser() *auth.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Login asks the API to check the credentials. Every failure comes back as
// an unsuccessful response with a message for the login form. The state only
// changes, and subscribers are only notified, on success.
func (s *Session) Login(ctx context.Context, api Authenticator, req auth.LoginRequest) *auth.LoginResponse {
	resp, err := api.Login(ctx, req)
	if err != nil {
		logger.Sugar.Warnf("Login for %q failed: %v", req.Username, err)
		return &auth.LoginResponse{Message: loginFailure(err)}
	}
	if resp == nil {
		return &auth.LoginResponse{Message: "Invalid response from server"}
	}
	if !resp.Success || resp.User == nil {
		return resp
	}

	user := *resp.User
	s.mu.Lock()
	s.user = &user
	s.token = resp.Token
	s.mu.Unlock()

	s.notify()
	return resp
}

func loginFailure(err error) string {
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("API returned error: %d", se.Code)
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return "Cannot connect to API. Please ensure the API is running. Error: " + err.Error()
	}
	return "Login error: " + err.Error()
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers fn to run after every login and logout. The returned
// function removes it.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// notify runs the subscribers without holding the lock, so they may call
// back into the session.
func (s *Session) notify() {
	s.mu.Lock()
	state := State{Authenticated: s.user != nil}
	if s.user != nil {
		u := *s.user
		state.User = &u
	}
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
