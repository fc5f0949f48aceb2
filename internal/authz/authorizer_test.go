package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

func TestCheckRole(t *testing.T) {
	az := New(nil)

	customer := Caller{UserID: 1, Role: models.RoleCustomer}
	owner := Caller{UserID: 2, Role: models.RoleOwner}

	err := az.CheckRole(customer, ActionSalonCreate)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	assert.NoError(t, az.CheckRole(owner, ActionSalonCreate))
	assert.NoError(t, az.CheckRole(customer, ActionAppointmentBook))

	err = az.CheckRole(owner, Action("unknown"))
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestAuthorizeOwnership(t *testing.T) {
	az := New(nil)

	tests := []struct {
		name   string
		caller Caller
		action Action
		res    Resource
		allow  bool
	}{
		{
			name:   "customer cancels own appointment",
			caller: Caller{UserID: 5, Role: models.RoleCustomer},
			action: ActionAppointmentModify,
			res:    Resource{SubjectUserID: 5},
			allow:  true,
		},
		{
			name:   "owner cannot cancel a customer's appointment",
			caller: Caller{UserID: 9, Role: models.RoleOwner},
			action: ActionAppointmentModify,
			res:    Resource{SubjectUserID: 5, SalonOwnerID: 9},
			allow:  false,
		},
		{
			name:   "assigned staff completes",
			caller: Caller{UserID: 7, Role: models.RoleStaff},
			action: ActionAppointmentFinish,
			res:    Resource{StaffUserID: 7, SalonOwnerID: 9},
			allow:  true,
		},
		{
			name:   "other staff cannot complete",
			caller: Caller{UserID: 8, Role: models.RoleStaff},
			action: ActionAppointmentFinish,
			res:    Resource{StaffUserID: 7, SalonOwnerID: 9},
			allow:  false,
		},
		{
			name:   "salon owner completes",
			caller: Caller{UserID: 9, Role: models.RoleOwner},
			action: ActionAppointmentFinish,
			res:    Resource{StaffUserID: 7, SalonOwnerID: 9},
			allow:  true,
		},
		{
			name:   "owner of another salon cannot complete",
			caller: Caller{UserID: 10, Role: models.RoleOwner},
			action: ActionAppointmentFinish,
			res:    Resource{SalonOwnerID: 9},
			allow:  false,
		},
		{
			name:   "customer cannot complete",
			caller: Caller{UserID: 5, Role: models.RoleCustomer},
			action: ActionAppointmentFinish,
			res:    Resource{SubjectUserID: 5},
			allow:  false,
		},
		{
			name:   "admin responds to any review",
			caller: Caller{UserID: 1, Role: models.RoleAdmin},
			action: ActionReviewRespond,
			res:    Resource{SalonOwnerID: 9},
			allow:  true,
		},
		{
			name:   "staff of salon reads customer history",
			caller: Caller{UserID: 7, Role: models.RoleStaff},
			action: ActionCustomerHistory,
			res:    Resource{SalonOwnerID: 9, SalonStaffUserIDs: []uint{6, 7}},
			allow:  true,
		},
		{
			name:   "missing owner never matches",
			caller: Caller{UserID: 0, Role: models.RoleOwner},
			action: ActionCatalogManage,
			res:    Resource{},
			allow:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := az.Authorize(tt.caller, tt.action, tt.res)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsKind(err, httperr.KindForbidden), "got %v", err)
			}
		})
	}
}
