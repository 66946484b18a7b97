package domain

import "testing"

func TestCanAccess_Table(t *testing.T) {
	cases := []struct {
		role     Role
		category Category
		want     bool
	}{
		{RoleAdmin, CategoryUserManagement, true},
		{RoleAdmin, CategoryMarketManagement, false},
		{RoleAdmin, CategoryOwnProfile, true},
		{RoleManager, CategoryUserManagement, false},
		{RoleManager, CategoryMarketManagement, true},
		{RoleManager, CategoryOwnProfile, true},
		{RoleBuyer, CategoryUserManagement, false},
		{RoleBuyer, CategoryMarketManagement, false},
		{RoleBuyer, CategoryOwnProfile, true},
		{RoleSeller, CategoryUserManagement, false},
		{RoleSeller, CategoryMarketManagement, false},
		{RoleSeller, CategoryOwnProfile, true},
	}

	for _, tc := range cases {
		if got := CanAccess(tc.role, tc.category); got != tc.want {
			t.Errorf("CanAccess(%s, %s) = %v, want %v", tc.role, tc.category, got, tc.want)
		}
	}
}

func TestCanAccess_UnknownRoleDenied(t *testing.T) {
	for _, cat := range []Category{CategoryUserManagement, CategoryMarketManagement, CategoryOwnProfile} {
		if CanAccess(Role("superuser"), cat) {
			t.Errorf("unknown role granted %s", cat)
		}
	}
}

// Navigation must agree with the grants table: a link only appears when the
// corresponding route category is accessible (and vice versa for the
// management areas).
func TestNavLinksFor_AgreesWithGrants(t *testing.T) {
	for _, role := range Roles() {
		links := NavLinksFor(role)

		hasUserLinks := false
		hasMarketLink := false
		for _, l := range links {
			if len(l.Href) > len("/dashboard/users/") && l.Href[:len("/dashboard/users/")] == "/dashboard/users/" {
				hasUserLinks = true
			}
			if l.Href == "/dashboard/markets" {
				hasMarketLink = true
			}
		}

		if hasUserLinks != CanAccess(role, CategoryUserManagement) {
			t.Errorf("role %s: user-management links %v, grant %v", role, hasUserLinks, CanAccess(role, CategoryUserManagement))
		}
		if hasMarketLink != CanAccess(role, CategoryMarketManagement) {
			t.Errorf("role %s: markets link %v, grant %v", role, hasMarketLink, CanAccess(role, CategoryMarketManagement))
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range Roles() {
		got, err := ParseRole(string(role))
		if err != nil {
			t.Fatalf("ParseRole(%s) returned error: %v", role, err)
		}
		if got != role {
			t.Fatalf("ParseRole(%s) = %s", role, got)
		}
	}

	for _, raw := range []string{"", "unknown", "Admin", "admins", "gestionnaire"} {
		if _, err := ParseRole(raw); err != ErrInvalidRole {
			t.Errorf("ParseRole(%q): expected ErrInvalidRole, got %v", raw, err)
		}
	}
}

func TestHubTitle(t *testing.T) {
	if HubTitle(RoleAdmin) != "Admin Hub" {
		t.Errorf("unexpected admin title: %s", HubTitle(RoleAdmin))
	}
	if HubTitle(RoleManager) != "Manager Hub" {
		t.Errorf("unexpected manager title: %s", HubTitle(RoleManager))
	}
	if HubTitle(RoleBuyer) != "Marketplace Hub" {
		t.Errorf("unexpected buyer title: %s", HubTitle(RoleBuyer))
	}
}
