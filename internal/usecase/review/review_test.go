package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/infra/repository"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/testutil"
)

type countingDeliverer struct{ n int }

func (d *countingDeliverer) Deliver(_ context.Context, notes ...models.Notification) {
	d.n += len(notes)
}

type fixture struct {
	db        *gorm.DB
	create    *CreateReview
	respond   *RespondReview
	list      *ListReviews
	delivered *countingDeliverer

	customer *models.User
	owner    *models.User
	salon    *models.Salon
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repo := repository.NewReviewGormRepository(db)
	az := authz.New(nil)
	d := &countingDeliverer{}

	owner := testutil.CreateUser(t, db, models.RoleOwner)
	return &fixture{
		db:        db,
		create:    NewCreateReview(repo, audit.Discard{}, az),
		respond:   NewRespondReview(repo, audit.Discard{}, az, d),
		list:      NewListReviews(repo),
		delivered: d,
		customer:  testutil.CreateUser(t, db, models.RoleCustomer),
		owner:     owner,
		salon:     testutil.CreateSalon(t, db, owner.ID, 1),
	}
}

func (f *fixture) appointment(t *testing.T, status string) *models.Appointment {
	t.Helper()
	svc := testutil.CreateService(t, f.db, f.salon.ID, "30.00")
	ap := &models.Appointment{
		UserID:    f.customer.ID,
		SalonID:   f.salon.ID,
		ServiceID: svc.ID,
		Price:     svc.Price,
		Status:    status,
	}
	require.NoError(t, f.db.Create(ap).Error)
	return ap
}

func callerOf(u *models.User) authz.Caller {
	return authz.Caller{UserID: u.ID, Role: u.Role}
}

func TestCreateReviewRequiresCompletedAppointment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, status := range []string{"booked", "cancelled"} {
		ap := f.appointment(t, status)
		_, err := f.create.Execute(ctx, callerOf(f.customer), CreateInput{AppointmentID: ap.ID, Rating: 5})
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidState), status)
	}
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &models.Review{}))
}

func TestCreateReviewOncePerAppointment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ap := f.appointment(t, "completed")

	rv, err := f.create.Execute(ctx, callerOf(f.customer), CreateInput{AppointmentID: ap.ID, Rating: 4, Comment: " lovely "})
	require.NoError(t, err)
	assert.Equal(t, f.salon.ID, rv.SalonID)
	assert.Equal(t, "lovely", rv.Comment)

	_, err = f.create.Execute(ctx, callerOf(f.customer), CreateInput{AppointmentID: ap.ID, Rating: 5})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &models.Review{}))
}

func TestCreateReviewValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ap := f.appointment(t, "completed")

	_, err := f.create.Execute(ctx, callerOf(f.customer), CreateInput{AppointmentID: ap.ID, Rating: 6})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = f.create.Execute(ctx, callerOf(f.customer), CreateInput{AppointmentID: 9999, Rating: 3})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	stranger := testutil.CreateUser(t, f.db, models.RoleCustomer)
	_, err = f.create.Execute(ctx, callerOf(stranger), CreateInput{AppointmentID: ap.ID, Rating: 3})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestRespondNotifiesReviewer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ap := f.appointment(t, "completed")

	rv, err := f.create.Execute(ctx, callerOf(f.customer), CreateInput{AppointmentID: ap.ID, Rating: 2})
	require.NoError(t, err)

	otherOwner := testutil.CreateUser(t, f.db, models.RoleOwner)
	_, err = f.respond.Execute(ctx, callerOf(otherOwner), rv.ID, "sorry")
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	_, err = f.respond.Execute(ctx, callerOf(f.customer), rv.ID, "sorry")
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	out, err := f.respond.Execute(ctx, callerOf(f.owner), rv.ID, "We will do better.")
	require.NoError(t, err)
	assert.Equal(t, "We will do better.", out.Response)
	require.NotNil(t, out.RespondedAt)

	var stored models.Review
	require.NoError(t, f.db.First(&stored, rv.ID).Error)
	assert.Equal(t, "We will do better.", stored.Response)
	assert.NotNil(t, stored.RespondedAt)

	var notes []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", f.customer.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, f.salon.Name)
	assert.Equal(t, 1, f.delivered.n)

	admin := testutil.CreateUser(t, f.db, models.RoleAdmin)
	_, err = f.respond.Execute(ctx, callerOf(admin), rv.ID, "Admin follow-up.")
	require.NoError(t, err)
}

func TestListReviewsAverage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	empty, err := f.list.Execute(ctx, f.salon.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Reviews)

	for _, rating := range []int{5, 4} {
		ap := f.appointment(t, "completed")
		_, err := f.create.Execute(ctx, callerOf(f.customer), CreateInput{AppointmentID: ap.ID, Rating: rating})
		require.NoError(t, err)
	}

	res, err := f.list.Execute(ctx, f.salon.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 4.5, res.AverageRating)

	_, err = f.list.Execute(ctx, 9999)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
