package journal

// Role is an account's access level. The zero value is not valid; accounts
// are always created with an explicit role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Capability names an action whose availability depends on the role.
type Capability string

const (
	// CapListAccounts gates the full account listing.
	CapListAccounts Capability = "accounts:list"
)

// Can reports whether the role grants the capability. Every authenticated
// role may create roadtrips, reviews, and magazines; only the listed
// capabilities are restricted.
func (r Role) Can(c Capability) bool {
	switch c {
	case CapListAccounts:
		return r == RoleAdmin
	default:
		return true
	}
}
