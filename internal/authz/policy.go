package authz

import "github.com/BruksfildServices01/salon-platform/internal/models"

type Action string

const (
	ActionSalonCreate       Action = "salon.create"
	ActionSalonApprove      Action = "salon.approve"
	ActionSalonSettings     Action = "salon.settings"
	ActionCatalogManage     Action = "catalog.manage"
	ActionPromotionCreate   Action = "promotion.create"
	ActionStaffManage       Action = "staff.manage"
	ActionStaffSchedule     Action = "staff.schedule"
	ActionAppointmentBook   Action = "appointment.book"
	ActionAppointmentModify Action = "appointment.modify"
	ActionAppointmentFinish Action = "appointment.complete"
	ActionCustomerHistory   Action = "customer.history"
	ActionCartManage        Action = "cart.manage"
	ActionReviewCreate      Action = "review.create"
	ActionReviewRespond     Action = "review.respond"
	ActionNotificationRead  Action = "notification.read"
	ActionNotificationSend  Action = "notification.send"
	ActionAdminStats        Action = "admin.stats"
)

// Relation is an ownership predicate between the caller and a resource.
type Relation int

const (
	RelNone Relation = iota
	// RelSubject: the caller is the user the resource belongs to
	// (customer of an appointment or cart, reviewer, recipient).
	RelSubject
	// RelSalonOwner: the caller owns the salon the resource lives in.
	RelSalonOwner
	// RelStaffMember: the caller is the staff member the resource
	// is about (assigned stylist, managed availability).
	RelStaffMember
	// RelSalonStaff: the caller works at the resource's salon.
	RelSalonStaff
)

// Policy says who may perform an action. Roles empty means any
// authenticated caller. Ownership is looked up by the caller's role and
// falls back to Default.
type Policy struct {
	Roles     []string
	Ownership map[string]Relation
	Default   Relation
}

var (
	ownerOnly   = []string{models.RoleOwner}
	staffOwner  = []string{models.RoleStaff, models.RoleOwner}
	ownerAdmin  = []string{models.RoleOwner, models.RoleAdmin}
	ownerOfShop = map[string]Relation{models.RoleOwner: RelSalonOwner}
)

// DefaultPolicies is the permission table for every protected action.
func DefaultPolicies() map[Action]Policy {
	return map[Action]Policy{
		ActionSalonCreate:     {Roles: ownerOnly},
		ActionSalonApprove:    {Roles: []string{models.RoleAdmin}},
		ActionSalonSettings:   {Roles: ownerOnly, Ownership: ownerOfShop},
		ActionCatalogManage:   {Roles: ownerOnly, Ownership: ownerOfShop},
		ActionPromotionCreate: {Roles: ownerOnly, Ownership: ownerOfShop},
		ActionStaffManage:     {Roles: ownerOnly, Ownership: ownerOfShop},
		ActionStaffSchedule: {
			Roles: staffOwner,
			Ownership: map[string]Relation{
				models.RoleStaff: RelStaffMember,
				models.RoleOwner: RelSalonOwner,
			},
		},

		ActionAppointmentBook:   {},
		ActionAppointmentModify: {Default: RelSubject},
		ActionAppointmentFinish: {
			Roles: staffOwner,
			Ownership: map[string]Relation{
				models.RoleStaff: RelStaffMember,
				models.RoleOwner: RelSalonOwner,
			},
		},
		ActionCustomerHistory: {
			Roles: staffOwner,
			Ownership: map[string]Relation{
				models.RoleStaff: RelSalonStaff,
				models.RoleOwner: RelSalonOwner,
			},
		},

		ActionCartManage: {Default: RelSubject},

		ActionReviewCreate:  {Default: RelSubject},
		ActionReviewRespond: {Roles: ownerAdmin, Ownership: ownerOfShop},

		ActionNotificationRead: {Default: RelSubject},
		ActionNotificationSend: {Roles: ownerAdmin},

		ActionAdminStats: {Roles: []string{models.RoleAdmin}},
	}
}
