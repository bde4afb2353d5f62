package client

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Role values mirrored from the server's credential claims.
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// Principal is the identity claimed by the stored credential, decoded
// locally without signature verification. Only the server's gate proves
// validity; this copy exists for display and navigation decisions.
type Principal struct {
	SubjectID string   `json:"id"`
	Roles     []string `json:"roles"`
}

// HasRole reports whether the principal claims the given role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, held := range p.Roles {
		if held == role {
			return true
		}
	}
	return false
}

// State is a read-only snapshot of the session.
type State struct {
	IsAuthenticated bool
	Principal       *Principal
	Credential      string
}

// Session is the process-wide client session store. It has exactly two
// states, Anonymous and Authenticated, and exactly two transitions, Login
// and Logout. The credential is mirrored into durable storage so a restart
// rehydrates the authenticated state optimistically: the stored credential
// is trusted until a protected call is rejected, at which point the client
// forces Logout. That reactive-invalidation model is deliberate; there is no
// expiry timer and no proactive revalidation on load.
type Session struct {
	mu            sync.Mutex
	authenticated bool
	principal     *Principal
	credential    string
	store         CredentialStore
}

// NewSession builds an anonymous session backed by the given store.
func NewSession(store CredentialStore) *Session {
	return &Session{store: store}
}

// Load rehydrates the session from durable storage. A stored credential is
// taken as proof of continued authentication without a server round-trip.
func (s *Session) Load() error {
	credential, err := s.store.Read()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if credential == "" {
		s.authenticated = false
		s.principal = nil
		s.credential = ""
		return nil
	}
	s.authenticated = true
	s.credential = credential
	s.principal = unverifiedPrincipal(credential)
	return nil
}

// Login transitions Anonymous -> Authenticated and mirrors the credential
// into durable storage. All three fields change atomically.
func (s *Session) Login(principal Principal, credential string) error {
	if err := s.store.Write(credential); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.principal = &principal
	s.credential = credential
	return nil
}

// Logout transitions to Anonymous and clears durable storage. Calling it
// while already Anonymous is a no-op.
func (s *Session) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.principal = nil
	s.credential = ""
	return nil
}

// Current returns a snapshot of the session state.
func (s *Session) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		IsAuthenticated: s.authenticated,
		Principal:       s.principal,
		Credential:      s.credential,
	}
}

// CredentialLooksExpired peeks at the stored credential's expiry claim
// without verifying the signature. It is an optional local check; callers
// that want stricter startup behavior may Logout when it returns true. It is
// never called implicitly, keeping the optimistic-trust model intact.
func (s *Session) CredentialLooksExpired(now time.Time) bool {
	s.mu.Lock()
	credential := s.credential
	s.mu.Unlock()
	if credential == "" {
		return false
	}
	var claims struct {
		ExpiresAt int64 `json:"exp"`
	}
	if !decodeJWTPayload(credential, &claims) || claims.ExpiresAt == 0 {
		return false
	}
	return now.After(time.Unix(claims.ExpiresAt, 0))
}

// unverifiedPrincipal decodes the credential payload without checking the
// signature. Returns nil when the payload is unreadable; the session stays
// optimistically authenticated either way.
func unverifiedPrincipal(credential string) *Principal {
	var principal Principal
	if !decodeJWTPayload(credential, &principal) || principal.SubjectID == "" {
		return nil
	}
	return &principal
}

func decodeJWTPayload(credential string, out any) bool {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}
