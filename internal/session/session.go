package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when no bearer token is configured.
	ErrMissingToken = errors.New("no auth token configured")

	// ErrMissingDeviceID is returned when no device identifier is
	// configured. Every API request must carry one.
	ErrMissingDeviceID = errors.New("no device id configured")
)

// Session is the authenticated cashier context injected into the API
// client and the settlement flow. Token acquisition and refresh happen
// elsewhere (login is out of scope); the session only consumes a token
// it was handed.
type Session struct {
	Token    string
	DeviceID string

	// Filled from the token claims, best-effort.
	StaffID   int64
	Role      string
	ExpiresAt time.Time
}

// New builds a session from a bearer token and device id. The token's
// claims are decoded without signature verification — the server is
// the one that verifies; the client only needs the staff id and expiry
// for display and payload assembly.
func New(token, deviceID string) (*Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	s := &Session{Token: token, DeviceID: deviceID}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decoding token claims: %w", err)
	}

	if sub, err := claims.GetSubject(); err == nil {
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			s.StaffID = id
		}
	}

	if role, ok := claims["role"].(string); ok {
		s.Role = role
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}

	return s, nil
}

// Expired reports whether the token's expiry has passed. Sessions
// without an exp claim never report expired.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// AuthHeaders returns the headers attached to every API request.
func (s *Session) AuthHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + s.Token,
		"deviceId":      s.DeviceID,
	}
}
