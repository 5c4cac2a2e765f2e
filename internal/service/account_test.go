package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

type accountFixture struct {
	guests    *mockGuests
	bookings  *mockBookings
	countries *mockCountries
	reval     *mockRevalidator
	svc       *AccountService
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		guests:    &mockGuests{},
		bookings:  &mockBookings{},
		countries: &mockCountries{},
		reval:     &mockRevalidator{},
	}
	f.svc = NewAccountService(f.guests, f.bookings, f.countries, f.reval, discard)
	return f
}

func TestValidNationalID(t *testing.T) {
	accepted := []string{"abc123", "ABCDEF", "123456789012", "a1B2c3D4"}
	rejected := []string{"", "abc12", "1234567890123", "abc 123", "abc-123", "ábc123", "abc123\n"}

	for _, id := range accepted {
		assert.True(t, validNationalID(id), id)
	}
	for _, id := range rejected {
		assert.False(t, validNationalID(id), id)
	}
}

func TestSplitNationality(t *testing.T) {
	name, flag := splitNationality("Portugal%https://flagcdn.com/pt.svg")
	assert.Equal(t, "Portugal", name)
	require.NotNil(t, flag)
	assert.Equal(t, "https://flagcdn.com/pt.svg", *flag)

	name, flag = splitNationality("Portugal")
	assert.Equal(t, "Portugal", name)
	assert.Nil(t, flag)

	name, flag = splitNationality("A%b%c")
	assert.Equal(t, "A", name)
	require.NotNil(t, flag)
	assert.Equal(t, "b%c", *flag)
}

func TestTruncateObservations(t *testing.T) {
	assert.Equal(t, "short", truncateObservations("short"))
	assert.Len(t, truncateObservations(strings.Repeat("x", 1000)), 1000)
	assert.Len(t, truncateObservations(strings.Repeat("x", 1001)), 1000)
	assert.Equal(t, 1000, len([]rune(truncateObservations(strings.Repeat("é", 1200)))))
}

func TestUpdateProfile_Success(t *testing.T) {
	f := newAccountFixture()
	flag := "https://flagcdn.com/pt.svg"
	f.guests.On("Update", mock.Anything, int64(1), model.GuestUpdate{
		NationalID:  "AB1234",
		Nationality: "Portugal",
		CountryFlag: &flag,
	}).Return(&model.Guest{ID: 1, NationalID: "AB1234", Nationality: "Portugal", CountryFlag: &flag}, nil)
	f.reval.On("Revalidate", mock.Anything, "/account/profile").Return(nil)

	guest, err := f.svc.UpdateProfile(context.Background(), guestA, ProfileForm{
		NationalID:  "AB1234",
		Nationality: "Portugal%" + flag,
	})

	require.NoError(t, err)
	assert.Equal(t, "Portugal", guest.Nationality)
	mock.AssertExpectationsForObjects(t, f.guests, f.reval)
}

func TestUpdateProfile_RejectsNationalID(t *testing.T) {
	for _, id := range []string{"abc", "abc-1234", "abcdefghijklm", ""} {
		f := newAccountFixture()

		_, err := f.svc.UpdateProfile(context.Background(), guestA, ProfileForm{NationalID: id, Nationality: "Portugal%x"})

		var domainErr *model.Error
		require.ErrorAs(t, err, &domainErr, id)
		assert.Equal(t, "Must be alphanumeric", domainErr.Message)
		assert.Equal(t, "nationalID", domainErr.Field)
		assert.Empty(t, f.guests.Calls)
	}
}

func TestUpdateProfile_RequiresNationality(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.UpdateProfile(context.Background(), guestA, ProfileForm{NationalID: "AB1234", Nationality: "%https://x"})

	var domainErr *model.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Please select your nationality", domainErr.Message)
	assert.Empty(t, f.guests.Calls)
}

func TestUpdateProfile_MissingFlagStoredAsNull(t *testing.T) {
	f := newAccountFixture()
	f.guests.On("Update", mock.Anything, int64(1), model.GuestUpdate{NationalID: "AB1234", Nationality: "Portugal"}).
		Return(&model.Guest{ID: 1}, nil)
	f.reval.On("Revalidate", mock.Anything, mock.Anything).Return(errors.New("cache down"))

	_, err := f.svc.UpdateProfile(context.Background(), guestA, ProfileForm{NationalID: "AB1234", Nationality: "Portugal"})

	require.NoError(t, err)
	f.guests.AssertExpectations(t)
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.UpdateProfile(context.Background(), nil, ProfileForm{NationalID: "AB1234", Nationality: "Portugal"})

	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestReservation_RefusesOtherGuest(t *testing.T) {
	f := newAccountFixture()
	f.bookings.On("GetByID", mock.Anything, int64(42)).Return(&model.Booking{ID: 42, GuestID: 1}, nil)

	_, err := f.svc.Reservation(context.Background(), guestB, 42)
	assert.ErrorIs(t, err, model.ErrNotAuthorized)

	b, err := f.svc.Reservation(context.Background(), guestA, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), b.ID)
}

func TestReservations_NeverNil(t *testing.T) {
	f := newAccountFixture()
	f.bookings.On("ListByGuest", mock.Anything, int64(1)).Return(nil, nil)

	bookings, err := f.svc.Reservations(context.Background(), guestA)

	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestProfile_UnknownGuest(t *testing.T) {
	f := newAccountFixture()
	f.guests.On("GetByEmail", mock.Anything, "a@example.com").Return(nil, nil)

	_, err := f.svc.Profile(context.Background(), guestA)

	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}
