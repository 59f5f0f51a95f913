package domain

// Role gates what a portal user may see and do.
type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleOfficial Role = "official"
	RoleAdmin    Role = "admin"
)

// CanManage reports whether the role may view all complaints and change status.
func (r Role) CanManage() bool {
	return r == RoleOfficial || r == RoleAdmin
}

// Profile is the subset of the portal user profile this service reads.
type Profile struct {
	ID   string `db:"id"   json:"id"`
	Role Role   `db:"role" json:"role"`
}
