package domain

// Role of an authenticated principal
type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// IsValid returns true for one of the three known roles
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleOwner || r == RoleAdmin
}

// Principal is the authenticated caller, resolved by the transport layer and
// passed explicitly into every command. The engine never reads ambient
// security state.
type Principal struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for platform administrators
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanManageRestaurant returns true if the principal is an admin or the owner
// of the restaurant identified by ownerID
func (p Principal) CanManageRestaurant(ownerID int64) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
