package scheduling

import "hospital-visit-server/internal/models"

// Actor is the authenticated caller of a scheduling operation. HospitalID is
// set for organization admins and scopes them to their own hospital.
type Actor struct {
	UserID     string
	Role       models.Role
	HospitalID string
}

// Operation names a mutating or privileged scheduling operation.
type Operation string

const (
	OpBook         Operation = "book"
	OpChangeStatus Operation = "change-status"
	OpCancel       Operation = "cancel"
	OpSetPhase     Operation = "set-phase"
	OpMoveQueue    Operation = "move-queue"
	OpBulkReorder  Operation = "bulk-reorder"
	OpReconcile    Operation = "reconcile"
	OpViewQueue    Operation = "view-queue"
)

// capabilities is the per-operation role table. Ownership and hospital scope
// are checked separately against the target appointment or partition.
var capabilities = map[Operation]map[models.Role]bool{
	OpBook: {
		models.RolePatient:  true,
		models.RoleAdmin:    true,
		models.RoleOrgAdmin: true,
	},
	OpChangeStatus: {
		models.RoleDoctor:   true,
		models.RoleAdmin:    true,
		models.RoleOrgAdmin: true,
	},
	OpCancel: {
		models.RolePatient:  true,
		models.RoleDoctor:   true,
		models.RoleAdmin:    true,
		models.RoleOrgAdmin: true,
	},
	OpSetPhase: {
		models.RoleDoctor: true,
		models.RoleAdmin:  true,
	},
	OpMoveQueue: {
		models.RoleDoctor:   true,
		models.RoleAdmin:    true,
		models.RoleOrgAdmin: true,
	},
	OpBulkReorder: {
		models.RoleDoctor:   true,
		models.RoleAdmin:    true,
		models.RoleOrgAdmin: true,
	},
	OpReconcile: {
		models.RoleDoctor:   true,
		models.RoleAdmin:    true,
		models.RoleOrgAdmin: true,
	},
	OpViewQueue: {
		models.RoleDoctor:   true,
		models.RoleAdmin:    true,
		models.RoleOrgAdmin: true,
	},
}

// Allowed reports whether the actor's role may invoke op at all.
func Allowed(actor Actor, op Operation) bool {
	return capabilities[op][actor.Role]
}
