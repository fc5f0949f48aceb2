package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-platform/internal/authz"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-platform/internal/dto"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
	az   *authz.Authorizer
}

func NewListAppointments(
	repo domain.Repository,
	az *authz.Authorizer,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		az:   az,
	}
}

// Mine lists the caller's appointments: staff see the ones assigned to
// them, everyone else the ones they booked.
func (uc *ListAppointments) Mine(
	ctx context.Context,
	caller authz.Caller,
) ([]dto.AppointmentListDTO, error) {

	if caller.Role == models.RoleStaff {
		return uc.repo.ListForStaffUser(ctx, caller.UserID)
	}
	return uc.repo.ListForCustomer(ctx, caller.UserID, false)
}

// History is the caller's visit history, newest first.
func (uc *ListAppointments) History(
	ctx context.Context,
	caller authz.Caller,
) ([]dto.AppointmentListDTO, error) {
	return uc.repo.ListForCustomer(ctx, caller.UserID, true)
}

// StaffDay is one staff member's booked and completed appointments on
// date (YYYY-MM-DD) in the salon's timezone.
func (uc *ListAppointments) StaffDay(
	ctx context.Context,
	caller authz.Caller,
	staffID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	st, err := uc.repo.GetStaff(ctx, staffID)
	if err != nil {
		return nil, notFound(err, "staff_not_found", "Staff member not found.")
	}

	salon, err := uc.repo.GetSalon(ctx, st.SalonID)
	if err != nil {
		return nil, notFound(err, "salon_not_found", "Salon not found.")
	}

	if err := uc.az.Authorize(caller, authz.ActionStaffSchedule, authz.Resource{
		StaffUserID:  st.UserID,
		SalonOwnerID: salon.OwnerID,
	}); err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx, salon.ID)
	if err != nil {
		return nil, err
	}
	tz := timezone.DefaultTimezone
	if settings != nil {
		tz = settings.Timezone
	}

	if date == "" {
		date = timezone.NowIn(tz).Format("2006-01-02")
	}
	start, end, err := timezone.DayBounds(date, tz)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD.")
	}

	return uc.repo.ListForStaffBetween(ctx, st.ID, start, end, []string{
		string(domain.StatusBooked),
		string(domain.StatusCompleted),
	})
}

// CustomerHistory lets the salon's owner or staff see one customer's
// visits at that salon.
func (uc *ListAppointments) CustomerHistory(
	ctx context.Context,
	caller authz.Caller,
	salonID uint,
	customerID uint,
) ([]dto.AppointmentListDTO, error) {

	if err := uc.az.CheckRole(caller, authz.ActionCustomerHistory); err != nil {
		return nil, err
	}

	salon, err := uc.repo.GetSalon(ctx, salonID)
	if err != nil {
		return nil, notFound(err, "salon_not_found", "Salon not found.")
	}

	staffIDs, err := uc.repo.ListSalonStaffUserIDs(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.az.Authorize(caller, authz.ActionCustomerHistory, authz.Resource{
		SalonOwnerID:      salon.OwnerID,
		SalonStaffUserIDs: staffIDs,
	}); err != nil {
		return nil, err
	}

	return uc.repo.ListForCustomerAtSalon(ctx, salon.ID, customerID)
}
