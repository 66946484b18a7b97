package domain

// Category is a guarded area of the dashboard. Every protected route
// declares exactly one category.
type Category string

const (
	CategoryUserManagement   Category = "user-management"
	CategoryMarketManagement Category = "market-management"
	CategoryOwnProfile       Category = "own-profile"
)

// grants is the role authorization table: the single source of truth for
// both route guarding and navigation-link visibility. Anything not listed
// here is denied.
var grants = map[Role]map[Category]struct{}{
	RoleAdmin: {
		CategoryUserManagement: {},
		CategoryOwnProfile:     {},
	},
	RoleManager: {
		CategoryMarketManagement: {},
		CategoryOwnProfile:       {},
	},
	RoleBuyer: {
		CategoryOwnProfile: {},
	},
	RoleSeller: {
		CategoryOwnProfile: {},
	},
}

// CanAccess reports whether role may use the given category. Pure lookup,
// default deny.
func CanAccess(role Role, category Category) bool {
	_, ok := grants[role][category]
	return ok
}

// NavLink is a navigation entry presented to an authenticated user.
type NavLink struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// NavLinksFor derives the navigation for a role from the grants table, so
// link visibility can never diverge from route access.
func NavLinksFor(role Role) []NavLink {
	links := []NavLink{}
	if CanAccess(role, CategoryUserManagement) {
		for _, r := range Roles() {
			links = append(links, NavLink{
				Title: r.Label(),
				Href:  "/dashboard/users/" + string(r),
			})
		}
	}
	if CanAccess(role, CategoryMarketManagement) {
		links = append(links, NavLink{Title: "Markets", Href: "/dashboard/markets"})
	}
	if CanAccess(role, CategoryOwnProfile) {
		links = append(links, NavLink{Title: "My Profile", Href: "/dashboard/profile"})
	}
	return links
}

// HubTitle returns the dashboard heading shown for a role.
func HubTitle(role Role) string {
	switch role {
	case RoleManager:
		return "Manager Hub"
	case RoleAdmin:
		return "Admin Hub"
	default:
		return "Marketplace Hub"
	}
}
