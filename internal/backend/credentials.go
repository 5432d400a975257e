package backend

import (
	"context"
	"net/http"
	"sync"
)

// Credentials holds the backend cookies of one console session.
type Credentials struct {
	mu      sync.Mutex
	cookies map[string]string
	dirty   bool
}

// NewCredentials seeds credentials from a stored cookie set.
func NewCredentials(cookies map[string]string) *Credentials {
	c := &Credentials{cookies: make(map[string]string, len(cookies))}
	for name, value := range cookies {
		c.cookies[name] = value
	}
	return c
}

// Snapshot returns a copy of the current cookie set.
func (c *Credentials) Snapshot() map[string]string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.cookies))
	for name, value := range c.cookies {
		out[name] = value
	}
	return out
}

// Changed reports whether the backend set or cleared cookies since the last call,
// and resets the flag.
func (c *Credentials) Changed() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := c.dirty
	c.dirty = false
	return changed
}

// Clear drops every cookie.
func (c *Credentials) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cookies) > 0 {
		c.dirty = true
	}
	c.cookies = map[string]string{}
}

func (c *Credentials) apply(req *http.Request) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func (c *Credentials) absorb(resp *http.Response) {
	if c == nil {
		return
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cookie := range cookies {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
		} else {
			c.cookies[cookie.Name] = cookie.Value
		}
		c.dirty = true
	}
}

type credentialsKey struct{}

// WithCredentials scopes backend calls made with ctx to the given session cookies.
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials bound to ctx, or nil.
func CredentialsFrom(ctx context.Context) *Credentials {
	if ctx == nil {
		return nil
	}
	creds, _ := ctx.Value(credentialsKey{}).(*Credentials)
	return creds
}
