package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aolivares/school-library-service/pkg/auth"
)

func TestCanAccess(t *testing.T) {
	t.Parallel()

	admin := &auth.Principal{Username: "root", Role: auth.RoleAdmin}
	user := &auth.Principal{Username: "ana", Role: auth.RoleUser}

	var tests = []struct {
		name    string
		p       *auth.Principal
		allowed []auth.Role
		want    bool
	}{
		{"nil principal denied", nil, []auth.Role{auth.RoleAdmin, auth.RoleUser}, false},
		{"nil principal denied empty set", nil, nil, false},
		{"user denied admin-only", user, []auth.Role{auth.RoleAdmin}, false},
		{"admin allowed in mixed set", admin, []auth.Role{auth.RoleAdmin, auth.RoleUser}, true},
		{"user allowed in mixed set", user, []auth.Role{auth.RoleAdmin, auth.RoleUser}, true},
		// no implicit hierarchy: ADMIN passes only where listed
		{"admin denied user-only", admin, []auth.Role{auth.RoleUser}, false},
		{"empty allowed set denies all", admin, nil, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, auth.CanAccess(tt.p, tt.allowed...))
		})
	}
}

func TestAuthContext(t *testing.T) {
	t.Parallel()

	ctx := auth.SetAuthContext(context.Background(), "ana", "USER")
	p := auth.PrincipalFromContext(ctx)
	require.NotNil(t, p)
	require.Equal(t, "ana", p.Username)
	require.Equal(t, auth.RoleUser, p.Role)

	// unknown role leaves the context unauthenticated
	ctx = auth.SetAuthContext(context.Background(), "eve", "SUPERUSER")
	require.Nil(t, auth.PrincipalFromContext(ctx))

	require.Nil(t, auth.PrincipalFromContext(context.Background()))
}
