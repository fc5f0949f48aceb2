package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/testutil"
)

func TestLoyaltyBalances(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLoyaltyGormRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, models.RoleOwner)
	customer := testutil.CreateUser(t, db, models.RoleCustomer)
	a := testutil.CreateSalon(t, db, owner.ID, 1)
	b := testutil.CreateSalon(t, db, owner.ID, 1)

	testutil.SetLoyalty(t, db, customer.ID, a.ID, 150)
	testutil.SetLoyalty(t, db, customer.ID, b.ID, 20)

	list, err := repo.ListForUser(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.Name, list[0].SalonName)
	assert.Equal(t, int64(150), list[0].Points)

	none, err := repo.Get(ctx, customer.ID, 9999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), none.Points)

	loyal, err := repo.LoyalCustomers(ctx, a.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, []uint{customer.ID}, loyal)

	loyal, err = repo.LoyalCustomers(ctx, b.ID, 100)
	require.NoError(t, err)
	assert.Empty(t, loyal)
}

func TestAwardPointsCreatesThenIncrements(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	owner := testutil.CreateUser(t, db, models.RoleOwner)
	customer := testutil.CreateUser(t, db, models.RoleCustomer)
	salon := testutil.CreateSalon(t, db, owner.ID, 1)

	require.NoError(t, awardPoints(ctx, db, customer.ID, salon.ID, 0, now))
	bal := testutil.LoyaltyOf(t, db, customer.ID, salon.ID)
	assert.NotZero(t, bal.ID)
	assert.NotNil(t, bal.LastEarned)

	require.NoError(t, awardPoints(ctx, db, customer.ID, salon.ID, 40, now))
	require.NoError(t, awardPoints(ctx, db, customer.ID, salon.ID, 2, now))
	bal = testutil.LoyaltyOf(t, db, customer.ID, salon.ID)
	assert.Equal(t, int64(42), bal.Points)
	assert.Equal(t, int64(42), bal.LifetimePoints)

	ok, err := redeemPoints(ctx, db, customer.ID, salon.ID, 43)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = redeemPoints(ctx, db, customer.ID, salon.ID, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	bal = testutil.LoyaltyOf(t, db, customer.ID, salon.ID)
	assert.Equal(t, int64(0), bal.Points)
	assert.Equal(t, int64(42), bal.LifetimePoints)
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Loyalty{}))
}
