package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultVisitorTTL = 365 * 24 * time.Hour

var ErrInvalidVisitorToken = errors.New("invalid visitor token")

// VisitorService issues and verifies the signed cookie that identifies a
// browser across requests. The token carries only a random visitor id; the
// API credentials stay server side in the credential store.
type VisitorService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewVisitorService(secret string, ttl time.Duration) *VisitorService {
	if ttl <= 0 {
		ttl = DefaultVisitorTTL
	}
	return &VisitorService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is how long an issued visitor token stays valid.
func (s *VisitorService) TTL() time.Duration { return s.ttl }

// Issue mints a new visitor id and its signed token.
func (s *VisitorService) Issue() (id, token string, err error) {
	id = uuid.NewString()
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign visitor token: %w", err)
	}
	return id, token, nil
}

// Parse verifies token and returns the visitor id it carries.
func (s *VisitorService) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return "", ErrInvalidVisitorToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidVisitorToken
	}
	return claims.Subject, nil
}

// TokenExpiry reads the exp claim of an API token without verifying it. The
// API's signing key is not known here; this is only used to show when a
// stored login runs out.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
