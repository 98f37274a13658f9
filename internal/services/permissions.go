package services

import "github.com/spinthreads/wheel-backend/internal/models"

// Capability names a privileged operation. Every privileged code path goes
// through Can rather than checking role strings or ad hoc flags inline.
type Capability string

const (
	CapTriggerSpin    Capability = "spin:trigger"
	CapResetGame      Capability = "game:reset"
	CapManageUsers    Capability = "users:manage"
	CapManageSettings Capability = "settings:manage"
	CapManageCodes    Capability = "codes:manage"
	CapManageCatalog  Capability = "catalog:manage"
	CapManageWinners  Capability = "winners:manage"
)

// Can reports whether the actor holds the capability. Today every
// capability maps to the operator role; keeping the indirection means a
// finer-grained model only changes this one function.
func Can(actor *models.User, cap Capability) bool {
	if actor == nil {
		return false
	}
	return actor.Role == models.RoleOperator
}
