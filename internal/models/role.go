package models

// Role gates privileged company actions. Stored as text; every mutation
// boundary validates against the closed set below.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleMember:
		return true
	}
	return false
}

// CanManage reports whether the role may edit jobs, change application
// statuses and read company chats. Plain members may not.
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleManager
}
