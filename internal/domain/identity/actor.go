package identity

import (
	"github.com/google/uuid"
)

// Role represents the authorization level of a user within a tenant
type Role string

const (
	RoleWorker     Role = "WORKER"
	RoleSupervisor Role = "SUPERVISOR"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleWorker, RoleSupervisor, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// rank orders roles; unknown roles rank below worker
func (r Role) rank() int {
	switch r {
	case RoleWorker:
		return 1
	case RoleSupervisor:
		return 2
	case RoleManager:
		return 3
	case RoleAdmin:
		return 4
	}
	return 0
}

// AtLeast reports whether the role grants the privileges of the given role
func (r Role) AtLeast(other Role) bool {
	return r.rank() >= other.rank()
}

// Actor identifies the authenticated user performing an operation.
// Services receive it explicitly instead of reading auth state from context.
type Actor struct {
	UserID   uuid.UUID
	Username string
	TenantID uuid.UUID
	Role     Role
}

// NewActor creates an actor value
func NewActor(userID uuid.UUID, username string, tenantID uuid.UUID, role Role) Actor {
	return Actor{
		UserID:   userID,
		Username: username,
		TenantID: tenantID,
		Role:     role,
	}
}

// IsSupervisorOrAbove reports whether the actor may perform elevated operations
// such as rejecting documents or returning them to a previous status.
func (a Actor) IsSupervisorOrAbove() bool {
	return a.Role.AtLeast(RoleSupervisor)
}

// IsAdmin reports whether the actor has full administrative rights.
func (a Actor) IsAdmin() bool {
	return a.Role.AtLeast(RoleAdmin)
}

// DisplayName returns the name recorded in audit trails.
func (a Actor) DisplayName() string {
	if a.Username != "" {
		return a.Username
	}
	return a.UserID.String()
}
