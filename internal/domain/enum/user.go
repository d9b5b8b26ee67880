package enum

// UserRole is the role assigned to a user account
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleCashier UserRole = "CASHIER"
)

// IsValid reports whether the role is a known value
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// Permissions returns the permission names granted to the role
func (r UserRole) Permissions() []string {
	switch r {
	case RoleAdmin:
		return []string{
			"view-dashboard",
			"manage-products",
			"manage-categories",
			"manage-units",
			"manage-sales",
			"manage-kds",
			"manage-tables",
			"manage-pricelists",
			"manage-sessions",
			"manage-shifts",
			"manage-purchases",
			"manage-settings",
			"manage-users",
			"view-reports",
		}
	case RoleCashier:
		return []string{
			"view-dashboard",
			"manage-sales",
			"manage-kds",
			"manage-sessions",
			"manage-shifts",
		}
	}
	return nil
}
