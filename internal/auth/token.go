package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// Decode failure modes. A credential is valid iff its signature verifies
// against the configured secret and its expiry, when present, has not passed;
// validity is never proven by a lookup.
var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpiredCredential = errors.New("expired credential")
)

// Principal is the decoded identity attached to an authorized request. It
// lives only for the request that produced it and is never persisted.
type Principal struct {
	SubjectID string
	Roles     []domain.Role
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role domain.Role) bool {
	for _, held := range p.Roles {
		if held == role {
			return true
		}
	}
	return false
}

// TokenManager issues and decodes signed bearer credentials.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload.
type Claims struct {
	SubjectID string        `json:"id"`
	Roles     []domain.Role `json:"roles"`
	jwt.RegisteredClaims
}

// Issue builds and signs a credential for the subject.
func (tm *TokenManager) Issue(subjectID string, roles []domain.Role) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies a credential and returns its principal. It is a pure
// function over the secret and the input string: no I/O, no shared state.
func (tm *TokenManager) Decode(raw string) (*Principal, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, ErrInvalidCredential
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidCredential
	}
	if claims.SubjectID == "" || len(claims.Roles) == 0 {
		return nil, ErrInvalidCredential
	}
	return &Principal{SubjectID: claims.SubjectID, Roles: claims.Roles}, nil
}
