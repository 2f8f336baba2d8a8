package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-services-admin/internal/domain"
)

func TestServiceCreateDefaults(t *testing.T) {
	db := newTestDB(t)
	services := NewServiceService(db, nil)

	svc, err := services.Create(context.Background(), CreateServiceInput{
		Name: "House Cleaning", Category: "Cleaning", Price: 80, Duration: "2 hours",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceStatusActive, svc.Status)
	assert.Equal(t, 0, svc.ProvidersCount)
	assert.NotEmpty(t, svc.ID)
}

func TestServiceFindAllSearchAndSort(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	services := NewServiceService(db, nil)

	for _, in := range []CreateServiceInput{
		{Name: "House Cleaning", Category: "Cleaning", Price: 80, Duration: "2 hours"},
		{Name: "Office Cleaning", Category: "Cleaning", Price: 150, Duration: "4 hours", Status: "INACTIVE"},
		{Name: "Leak Repair", Category: "Plumbing", Price: 120, Duration: "1 hour"},
	} {
		_, err := services.Create(ctx, in)
		require.NoError(t, err)
	}

	// 大小写不敏感搜索
	res, err := services.FindAll(ctx, ServiceQuery{Search: "CLEAN"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = services.FindAll(ctx, ServiceQuery{Category: "plumb"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	res, err = services.FindAll(ctx, ServiceQuery{Status: "INACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	res, err = services.FindAll(ctx, ServiceQuery{ListParams: ListParams{SortBy: "price", SortOrder: "asc"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, float64(80), res.Items[0].Price)
	assert.Equal(t, float64(150), res.Items[2].Price)

	res, err = services.FindAll(ctx, ServiceQuery{ListParams: ListParams{Sort: "price:desc", SortBy: "name", SortOrder: "asc"}})
	require.NoError(t, err)
	assert.Equal(t, float64(150), res.Items[0].Price)
}

func TestServiceFindAllPagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	services := NewServiceService(db, nil)

	for i := 0; i < 12; i++ {
		_, err := services.Create(ctx, CreateServiceInput{
			Name: "Svc", Category: "Cleaning", Price: 10, Duration: "1 hour",
		})
		require.NoError(t, err)
	}

	res, err := services.FindAll(ctx, ServiceQuery{ListParams: ListParams{Page: 2, Limit: 5}})
	require.NoError(t, err)
	assert.Len(t, res.Items, 5)
	assert.Equal(t, int64(12), res.Total)
	assert.Equal(t, 3, res.Pagination.TotalPages)

	// pageSize 覆盖 limit
	res, err = services.FindAll(ctx, ServiceQuery{ListParams: ListParams{Limit: 5, PageSize: 12}})
	require.NoError(t, err)
	assert.Len(t, res.Items, 12)
}

func TestServiceUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	services := NewServiceService(db, nil)

	svc, err := services.Create(ctx, CreateServiceInput{
		Name: "House Cleaning", Category: "Cleaning", Price: 80, Duration: "2 hours",
	})
	require.NoError(t, err)

	price := FlexFloat(95)
	got, err := services.Update(ctx, svc.ID, UpdateServiceInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, float64(95), got.Price)
	assert.Equal(t, "House Cleaning", got.Name)

	_, err = services.Update(ctx, "missing", UpdateServiceInput{})
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
}

func TestServiceSoftDeleteHidesFromList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	services := NewServiceService(db, nil)

	svc, err := services.Create(ctx, CreateServiceInput{
		Name: "House Cleaning", Category: "Cleaning", Price: 80, Duration: "2 hours",
	})
	require.NoError(t, err)

	require.NoError(t, services.SoftDelete(ctx, svc.ID))
	require.NoError(t, services.SoftDelete(ctx, svc.ID))

	res, err := services.FindAll(ctx, ServiceQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)

	var appErr *Error
	err = services.SoftDelete(ctx, "never-existed")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
}

func TestServiceStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	services := NewServiceService(db, nil)

	for _, in := range []CreateServiceInput{
		{Name: "A", Category: "Cleaning", Price: 80, Duration: "2 hours"},
		{Name: "B", Category: "Cleaning", Price: 90, Duration: "2 hours", Status: "INACTIVE"},
		{Name: "C", Category: "Plumbing", Price: 120, Duration: "1 hour"},
	} {
		_, err := services.Create(ctx, in)
		require.NoError(t, err)
	}

	res, err := services.FindAll(ctx, ServiceQuery{})
	require.NoError(t, err)
	_, err = NewBookingService(db, nil).Create(ctx, bookingInput(res.Items[0].ID))
	require.NoError(t, err)

	st, err := services.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalServices)
	assert.Equal(t, int64(2), st.ActiveServices)
	assert.Equal(t, int64(1), st.InactiveServices)
	assert.Equal(t, int64(1), st.TotalBookings)
	assert.Len(t, st.Categories, 2)
}

func TestServiceStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	st, err := NewServiceService(db, nil).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.TotalServices)
	assert.NotNil(t, st.Categories)
}

func TestServiceFindByIDIncludesBookings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := seedService(t, db, "House Cleaning")

	_, err := NewBookingService(db, nil).Create(ctx, bookingInput(svc.ID))
	require.NoError(t, err)

	got, err := NewServiceService(db, nil).FindByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Len(t, got.Bookings, 1)
}
