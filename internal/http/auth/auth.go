package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxStaffID ctxKey = "staff_id"

// Middleware verifies the bearer token and requires a deviceId header
// on every request, mirroring what the client sends. The token's
// subject is the staff id; handlers read it back with StaffID.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("deviceId") == "" {
				http.Error(w, "missing deviceId header", http.StatusUnauthorized)
				return
			}

			authHeader := r.Header.Get("Authorization")

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}

			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()

			if sub, err := claims.GetSubject(); err == nil {
				if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
					ctx = context.WithValue(ctx, ctxStaffID, id)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffID returns the authenticated staff id from the request context,
// zero when the token carried no numeric subject.
func StaffID(ctx context.Context) int64 {
	id, _ := ctx.Value(ctxStaffID).(int64)
	return id
}
