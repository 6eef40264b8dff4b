package models

import "testing"

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleSuperAdmin, true},
		{RoleAdmin, true},
		{RoleUser, false},
	}
	for _, tc := range cases {
		u := &User{Role: tc.role}
		if got := u.IsAdmin(); got != tc.want {
			t.Errorf("IsAdmin(%s): got %v, want %v", tc.role, got, tc.want)
		}
	}
}
