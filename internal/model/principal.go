package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleTecnico UserRole = "TECNICO"
)

// Principal is the authenticated caller as extracted from the access token.
// For technicians UserID is the technician id.
type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsTecnico() bool {
	return p.Role == UserRoleTecnico
}

// OwnsOrder reports whether the principal may act on the order: admins
// always, technicians only when assigned to it.
func (p Principal) OwnsOrder(order *ServiceOrder) bool {
	if p.IsAdmin() {
		return true
	}
	return order.TechnicianID != nil && *order.TechnicianID == p.UserID
}
