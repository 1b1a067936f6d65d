package auth

import (
	"context"
	"os"

	jwt "github.com/golang-jwt/jwt/v4"
)

// JWTKey signs and verifies access tokens. HS256, shared secret.
var JWTKey = []byte(jwtKeyFromEnv())

func jwtKeyFromEnv() string {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return key
	}
	return "school-library-dev-key"
}

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	}
	return "", false
}

type Claims struct {
	Profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity every gated operation receives
// explicitly. A nil principal means the request is unauthenticated.
type Principal struct {
	Username string
	Role     Role
}

// CanAccess is the authorization gate: it grants only when a principal is
// present and its role is an element of allowed. There is no role
// hierarchy; ADMIN passes only where ADMIN is listed.
func CanAccess(p *Principal, allowed ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range allowed {
		if p.Role == r {
			return true
		}
	}
	return false
}

type ctxKey int

const principalKey ctxKey = 1

func SetAuthContext(ctx context.Context, username, role string) context.Context {
	r, ok := ParseRole(role)
	if !ok {
		return ctx
	}
	return context.WithValue(ctx, principalKey, &Principal{Username: username, Role: r})
}

// PrincipalFromContext returns nil when the request carried no valid identity.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
