package authz

import (
	"slices"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
)

type Caller struct {
	UserID uint
	Role   string
}

// Resource carries the identities an ownership predicate needs. Only
// the fields relevant to the action have to be filled.
type Resource struct {
	SubjectUserID     uint
	SalonOwnerID      uint
	StaffUserID       uint
	SalonStaffUserIDs []uint
}

type Authorizer struct {
	policies map[Action]Policy
}

func New(policies map[Action]Policy) *Authorizer {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Authorizer{policies: policies}
}

// CheckRole evaluates the role tier only. It runs before the resource
// is loaded.
func (a *Authorizer) CheckRole(caller Caller, action Action) error {
	p, ok := a.policies[action]
	if !ok {
		return httperr.Forbidden("forbidden", "Action is not permitted.")
	}
	if len(p.Roles) > 0 && !slices.Contains(p.Roles, caller.Role) {
		return httperr.Forbidden("insufficient_role", "Your role cannot perform this action.")
	}
	return nil
}

// Authorize evaluates both tiers against a loaded resource.
func (a *Authorizer) Authorize(caller Caller, action Action, res Resource) error {
	if err := a.CheckRole(caller, action); err != nil {
		return err
	}

	p := a.policies[action]
	rel, ok := p.Ownership[caller.Role]
	if !ok {
		rel = p.Default
	}

	if !holds(rel, caller, res) {
		return httperr.Forbidden("not_owner", "You do not have access to this resource.")
	}
	return nil
}

func holds(rel Relation, caller Caller, res Resource) bool {
	switch rel {
	case RelNone:
		return true
	case RelSubject:
		return res.SubjectUserID != 0 && res.SubjectUserID == caller.UserID
	case RelSalonOwner:
		return res.SalonOwnerID != 0 && res.SalonOwnerID == caller.UserID
	case RelStaffMember:
		return res.StaffUserID != 0 && res.StaffUserID == caller.UserID
	case RelSalonStaff:
		return slices.Contains(res.SalonStaffUserIDs, caller.UserID)
	default:
		return false
	}
}
