// Package apiclient is a typed client for the ERP API. It replaces ambient
// browser-storage session state with an explicit Session object owned by the
// caller: the bearer token and cached profile live on the session, and any
// 401 from the server invalidates it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNoSession is returned when an authenticated call is made without a
// valid session.
var ErrNoSession = errors.New("apiclient: no active session")

// APIError is a non-2xx response decoded from the server's message envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: %d %s", e.Status, e.Message)
}

// Unauthorized reports whether the error is a 401 APIError.
func Unauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// Profile mirrors the server's public profile fields.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Position     string `json:"position,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Session holds the authenticated identity. It is invalidated in place when
// the server answers 401, so callers observing Valid() == false know to
// re-authenticate.
type Session struct {
	Token   string
	Profile Profile
}

// Valid reports whether the session carries a token.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

func (s *Session) invalidate() {
	if s == nil {
		return
	}
	s.Token = ""
	s.Profile = Profile{}
}

// Client talks to the ERP API. Not safe for concurrent mutation of the
// session; callers coordinating concurrent use should guard it themselves.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client with an empty session.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: &Session{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the client's session object.
func (c *Client) Session() *Session {
	return c.session
}

type authEnvelope struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
}

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Profile, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users", in, &env, false); err != nil {
		return nil, err
	}
	c.session.Token = env.Token
	c.session.Profile = env.User
	return &c.session.Profile, nil
}

// Login authenticates and starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Profile, error) {
	body := map[string]string{"email": email, "password": password}
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &env, false); err != nil {
		return nil, err
	}
	c.session.Token = env.Token
	c.session.Profile = env.User
	return &c.session.Profile, nil
}

// Profile fetches the profile from the server and refreshes the cached copy.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, &p, true); err != nil {
		return nil, err
	}
	c.session.Profile = p
	return &c.session.Profile, nil
}

// UpdateProfileInput carries a partial profile update; empty fields are left
// unchanged by the server.
type UpdateProfileInput struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Company      string `json:"company,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Position     string `json:"position,omitempty"`
	Password     string `json:"password,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// UpdateProfile applies a partial update and refreshes the session with the
// server's new token and profile.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*Profile, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", in, &env, true); err != nil {
		return nil, err
	}
	c.session.Token = env.Token
	c.session.Profile = env.User
	return &c.session.Profile, nil
}

// Enquiry mirrors the server's enquiry representation. ID is the
// human-facing display id (ENQ-xxx); SystemID is the storage key the
// /:id routes expect.
type Enquiry struct {
	ID            string    `json:"id"`
	SystemID      string    `json:"_id"`
	Customer      string    `json:"customer"`
	ContactPerson string    `json:"contactPerson"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Product       string    `json:"product"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	Date          time.Time `json:"date"`
}

// CreateEnquiryInput is the public submission payload.
type CreateEnquiryInput struct {
	Customer           string `json:"customer"`
	ContactPerson      string `json:"contactPerson"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Product            string `json:"product"`
	Quantity           int    `json:"quantity"`
	Specifications     string `json:"specifications,omitempty"`
	Timeline           string `json:"timeline,omitempty"`
	Budget             string `json:"budget,omitempty"`
	MaterialPreference string `json:"materialPreference,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// CreateEnquiry submits a public enquiry; no session required.
func (c *Client) CreateEnquiry(ctx context.Context, in CreateEnquiryInput) (*Enquiry, error) {
	var e Enquiry
	if err := c.do(ctx, http.MethodPost, "/api/enquiries", in, &e, false); err != nil {
		return nil, err
	}
	return &e, nil
}

// Enquiries lists all enquiries, newest first.
func (c *Client) Enquiries(ctx context.Context) ([]Enquiry, error) {
	var out []Enquiry
	if err := c.do(ctx, http.MethodGet, "/api/enquiries", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one JSON round trip. An authed call without a valid session
// fails fast with ErrNoSession; a 401 response invalidates the session
// before the error is returned.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	if authed && !c.session.Valid() {
		return ErrNoSession
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.session.invalidate()
		}
		var env struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&env)
		if env.Message == "" {
			env.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("apiclient: decode response: %w", err)
		}
	}
	return nil
}
