package academy

import (
	"context"
	"fmt"
	"sync"
)

// AuthContext holds the signed-in session. Init rehydrates it from the store,
// Login and Signup populate it, Logout clears it.
type AuthContext struct {
	client *Client
	store  SessionStore

	mu      sync.RWMutex
	session *StoredSession
}

// NewAuthContext binds a client to a session store.
func NewAuthContext(client *Client, store SessionStore) *AuthContext {
	return &AuthContext{client: client, store: store}
}

// Init loads any persisted session. A stored entry without a token is ignored.
func (a *AuthContext) Init() error {
	s, err := a.store.Load()
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if s != nil && s.Token != "" {
		a.session = s
	} else {
		a.session = nil
	}
	return nil
}

// Login exchanges email/password for a session.
func (a *AuthContext) Login(ctx context.Context, email, password string) (*User, error) {
	return a.authenticate(ctx, "/functions/v1/auth-login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Signup creates an account and signs it in.
func (a *AuthContext) Signup(ctx context.Context, email, password, fullName string) (*User, error) {
	return a.authenticate(ctx, "/functions/v1/auth-signup", map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	})
}

func (a *AuthContext) authenticate(ctx context.Context, path string, body map[string]string) (*User, error) {
	var out StoredSession
	if err := a.client.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("server returned no token")
	}
	if err := a.store.Save(&out); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.session = &out
	a.mu.Unlock()

	u := out.User
	return &u, nil
}

// Logout forgets the session locally and in the store.
func (a *AuthContext) Logout() error {
	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()
	return a.store.Clear()
}

// LoggedIn reports whether a session is held.
func (a *AuthContext) LoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session != nil
}

// User returns the signed-in user, or nil.
func (a *AuthContext) User() *User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return nil
	}
	u := a.session.User
	return &u
}

// Token returns the bearer token, or "".
func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.Token
}
