package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExpandDays_InclusiveOfBothEndpoints(t *testing.T) {
	days := ExpandDays([]model.DateRange{{Start: day(2024, 6, 10), End: day(2024, 6, 12)}})

	assert.Equal(t, []time.Time{day(2024, 6, 10), day(2024, 6, 11), day(2024, 6, 12)}, days)
}

func TestExpandDays_FlattensInOrder(t *testing.T) {
	days := ExpandDays([]model.DateRange{
		{Start: day(2024, 7, 1), End: day(2024, 7, 2)},
		{Start: day(2024, 6, 30), End: day(2024, 6, 30)},
	})

	assert.Equal(t, []time.Time{day(2024, 7, 1), day(2024, 7, 2), day(2024, 6, 30)}, days)
}

func TestExpandDays_CrossesMonthAndIgnoresTimeOfDay(t *testing.T) {
	days := ExpandDays([]model.DateRange{{
		Start: time.Date(2024, 2, 28, 15, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}})

	assert.Equal(t, []time.Time{day(2024, 2, 28), day(2024, 2, 29), day(2024, 3, 1)}, days)
}

func TestExpandDays_Empty(t *testing.T) {
	assert.Empty(t, ExpandDays(nil))
}

func TestBookingRepository_BookedDates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, discard())
	repo.now = func() time.Time { return time.Date(2024, 6, 1, 17, 45, 0, 0, time.UTC) }

	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_date, end_date")).
		WithArgs(int64(4), day(2024, 6, 1), "checked-in").
		WillReturnRows(pgxmock.NewRows([]string{"start_date", "end_date"}).
			AddRow(day(2024, 6, 10), day(2024, 6, 11)).
			AddRow(day(2024, 5, 30), day(2024, 6, 2)))

	days, err := repo.BookedDates(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2024, 6, 10), day(2024, 6, 11),
		day(2024, 5, 30), day(2024, 5, 31), day(2024, 6, 1), day(2024, 6, 2),
	}, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_BookedDates_BackendError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, discard())
	repo.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	cause := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_date, end_date")).
		WithArgs(int64(4), day(2024, 6, 1), "checked-in").
		WillReturnError(cause)

	_, err = repo.BookedDates(context.Background(), 4)

	require.Error(t, err)
	assert.Equal(t, model.KindBackend, model.KindOf(err))
	assert.Equal(t, "Bookings could not get loaded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_DeleteOwned_NotOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, discard())
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1 AND guest_id = $2")).
		WithArgs(int64(10), int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.DeleteOwned(context.Background(), 10, 2)

	assert.ErrorIs(t, err, model.ErrNotAuthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_DeleteOwned(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, discard())
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings")).
		WithArgs(int64(10), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteOwned(context.Background(), 10, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCabinRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCabinRepository(mock, discard())
	mock.ExpectQuery(regexp.QuoteMeta("FROM cabins WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "name", "description", "image", "max_capacity", "regular_price", "discount"}))

	_, err = repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, model.ErrCabinNotFound)
	assert.Equal(t, model.KindNotFound, model.KindOf(err))
}

func TestCabinRepository_List_RejectsMalformedRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCabinRepository(mock, discard())
	mock.ExpectQuery(regexp.QuoteMeta("FROM cabins")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "max_capacity", "regular_price", "discount", "image"}).
			AddRow(int64(1), "001", int32(2), int32(250), int32(0), nil))

	_, err = repo.List(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Cabins could not be loaded", err.Error())
}

func TestGuestRepository_GetByEmail_Absent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewGuestRepository(mock, discard())
	mock.ExpectQuery(regexp.QuoteMeta("FROM guests WHERE email = $1")).
		WithArgs("new@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "full_name", "email", "national_id", "nationality", "country_flag"}))

	guest, err := repo.GetByEmail(context.Background(), "new@example.com")

	require.NoError(t, err)
	assert.Nil(t, guest)
}

func TestBookingRepository_UpdateOwned_NotOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, discard())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND guest_id = $2")).
		WithArgs(int64(10), int64(2), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err = repo.UpdateOwned(context.Background(), 10, 2, model.BookingUpdate{NumGuests: 3})

	assert.ErrorIs(t, err, model.ErrNotAuthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create_ParsesReturnedRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, discard())
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "created_at", "start_date", "end_date", "num_nights", "num_guests",
			"cabin_price", "extras_price", "total_price", "status", "has_breakfast", "is_paid",
			"observations", "cabin_id", "guest_id",
		}).AddRow(
			int64(99), created, day(2024, 6, 10), day(2024, 6, 13), int32(3), int32(2),
			int32(600), int32(0), int32(600), "unconfirmed", false, false,
			nil, int64(7), int64(1),
		))

	b, err := repo.Create(context.Background(), model.NewBooking{
		StartDate: day(2024, 6, 10),
		EndDate:   day(2024, 6, 13),
		NumNights: 3,
		NumGuests: 2,
		Status:    model.StatusUnconfirmed,
		CabinID:   7,
		GuestID:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(99), b.ID)
	assert.Equal(t, 600, b.TotalPrice)
	assert.Equal(t, model.StatusUnconfirmed, b.Status)
	assert.Nil(t, b.Observations)
	assert.NoError(t, mock.ExpectationsWereMet())
}
