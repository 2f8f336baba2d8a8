package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"home-services-admin/internal/domain"
)

func seedService(t *testing.T, db *gorm.DB, name string) *domain.Service {
	t.Helper()
	svc, err := NewServiceService(db, nil).Create(context.Background(), CreateServiceInput{
		Name: name, Category: "Cleaning", Price: 80, Duration: "2 hours",
	})
	require.NoError(t, err)
	return svc
}

func bookingInput(serviceID string) CreateBookingInput {
	return CreateBookingInput{
		ServiceID:     serviceID,
		ServiceName:   "House Cleaning",
		CustomerName:  "Sarah Kim",
		CustomerPhone: "555-0001",
		Date:          "2024-09-02",
		Time:          "10:00",
		Provider:      "Maria Lopez",
		Price:         80,
		Address:       "123 Maple St",
	}
}

func TestBookingCreateDefaultsPending(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, "House Cleaning")
	bookings := NewBookingService(db, nil)

	b, err := bookings.Create(context.Background(), bookingInput(svc.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, b.Status)
	assert.NotEmpty(t, b.ID)
	require.NotNil(t, b.Service)
	assert.Equal(t, svc.ID, b.Service.ID)
}

func TestBookingCreateRejectsMissingService(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db, nil)

	_, err := bookings.Create(context.Background(), bookingInput("no-such-id"))
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindDomain, appErr.Kind)
	assert.Equal(t, "Service not found", appErr.Msg)
}

func TestBookingCreateRejectsDeletedService(t *testing.T) {
	db := newTestDB(t)
	svc := seedService(t, db, "House Cleaning")
	ctx := context.Background()

	require.NoError(t, NewServiceService(db, nil).SoftDelete(ctx, svc.ID))

	_, err := NewBookingService(db, nil).Create(ctx, bookingInput(svc.ID))
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindDomain, appErr.Kind)

	// 失败时不应落任何预约行
	var n int64
	require.NoError(t, db.Unscoped().Model(&domain.Booking{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestBookingUpdateRevalidatesService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alive := seedService(t, db, "House Cleaning")
	doomed := seedService(t, db, "Leak Repair")
	bookings := NewBookingService(db, nil)

	b, err := bookings.Create(ctx, bookingInput(alive.ID))
	require.NoError(t, err)

	require.NoError(t, NewServiceService(db, nil).SoftDelete(ctx, doomed.ID))

	_, err = bookings.Update(ctx, b.ID, UpdateBookingInput{ServiceID: &doomed.ID})
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindDomain, appErr.Kind)

	// 预约本身不应被改动
	got, err := bookings.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, alive.ID, got.ServiceID)
}

func TestBookingUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := seedService(t, db, "House Cleaning")
	bookings := NewBookingService(db, nil)

	b, err := bookings.Create(ctx, bookingInput(svc.ID))
	require.NoError(t, err)

	got, err := bookings.Update(ctx, b.ID, UpdateBookingInput{Status: strPtr("CONFIRMED")})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)
	assert.Equal(t, "Sarah Kim", got.CustomerName)

	_, err = bookings.Update(ctx, "missing", UpdateBookingInput{})
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
}

func TestBookingFindAllFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := seedService(t, db, "House Cleaning")
	bookings := NewBookingService(db, nil)

	for i, date := range []string{"2024-09-01", "2024-09-10", "2024-09-20"} {
		in := bookingInput(svc.ID)
		in.Date = date
		in.CustomerName = fmt.Sprintf("Customer %d", i)
		if i == 2 {
			in.Status = "COMPLETED"
		}
		_, err := bookings.Create(ctx, in)
		require.NoError(t, err)
	}

	res, err := bookings.FindAll(ctx, BookingQuery{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	// 日期区间要求两端都给
	res, err = bookings.FindAll(ctx, BookingQuery{DateFrom: "2024-09-05", DateTo: "2024-09-15"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	res, err = bookings.FindAll(ctx, BookingQuery{DateFrom: "2024-09-05"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)

	res, err = bookings.FindAll(ctx, BookingQuery{Search: "customer 1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	// 超出末页给空列表
	res, err = bookings.FindAll(ctx, BookingQuery{ListParams: ListParams{Page: 9, Limit: 10}})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Len(t, res.Items, 0)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 1, res.Pagination.TotalPages)
}

func TestBookingSoftDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := seedService(t, db, "House Cleaning")
	bookings := NewBookingService(db, nil)

	b, err := bookings.Create(ctx, bookingInput(svc.ID))
	require.NoError(t, err)

	require.NoError(t, bookings.SoftDelete(ctx, b.ID))
	// 重复删除保持幂等
	require.NoError(t, bookings.SoftDelete(ctx, b.ID))

	_, err = bookings.FindByID(ctx, b.ID)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)

	err = bookings.SoftDelete(ctx, "never-existed")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)

	// 软删的行还在表里
	var n int64
	require.NoError(t, db.Unscoped().Model(&domain.Booking{}).Where("id = ?", b.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestBookingByService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedService(t, db, "House Cleaning")
	b := seedService(t, db, "Leak Repair")
	bookings := NewBookingService(db, nil)

	for i := 0; i < 2; i++ {
		_, err := bookings.Create(ctx, bookingInput(a.ID))
		require.NoError(t, err)
	}
	_, err := bookings.Create(ctx, bookingInput(b.ID))
	require.NoError(t, err)

	got, err := bookings.ByService(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = bookings.ByService(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestBookingStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := seedService(t, db, "House Cleaning")
	bookings := NewBookingService(db, nil)

	for _, status := range []string{"", "", "CONFIRMED", "COMPLETED", "CANCELLED", "IN_PROGRESS", "CONFIRMED"} {
		in := bookingInput(svc.ID)
		in.Status = status
		_, err := bookings.Create(ctx, in)
		require.NoError(t, err)
	}

	st, err := bookings.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), st.TotalBookings)
	assert.Equal(t, int64(2), st.PendingBookings)
	assert.Equal(t, int64(2), st.ConfirmedBookings)
	assert.Equal(t, int64(1), st.InProgressBookings)
	assert.Equal(t, int64(1), st.CompletedBookings)
	assert.Equal(t, int64(1), st.CancelledBookings)
	assert.Len(t, st.StatusDistribution, 5)
	assert.Len(t, st.RecentBookings, 5)
}

func TestBookingStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	st, err := NewBookingService(db, nil).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.TotalBookings)
	assert.NotNil(t, st.StatusDistribution)
	assert.NotNil(t, st.RecentBookings)
}

func TestBookingNotFoundError(t *testing.T) {
	db := newTestDB(t)
	_, err := NewBookingService(db, nil).FindByID(context.Background(), "missing")
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "Booking not found", appErr.Msg)
}
