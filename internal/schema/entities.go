package schema

import (
	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

// ParseCabin validates a full cabin row.
func ParseCabin(r Record) (*model.Cabin, error) {
	var c collector
	cabin := &model.Cabin{
		ID:           c.id(r, "id"),
		CreatedAt:    c.time(r, "created_at"),
		Name:         c.str(r, "name"),
		Description:  c.str(r, "description"),
		Discount:     c.int(r, "discount"),
		Image:        c.str(r, "image"),
		MaxCapacity:  c.int(r, "max_capacity"),
		RegularPrice: c.int(r, "regular_price"),
	}
	if c.err != nil {
		return nil, c.err
	}
	return cabin, nil
}

func parseCabinSummary(r Record) (model.Cabin, error) {
	var c collector
	cabin := model.Cabin{
		ID:           c.id(r, "id"),
		Name:         c.str(r, "name"),
		MaxCapacity:  c.int(r, "max_capacity"),
		RegularPrice: c.int(r, "regular_price"),
		Discount:     c.int(r, "discount"),
		Image:        c.str(r, "image"),
	}
	return cabin, c.err
}

// ParseCabinSummaries validates the rows of the cabin list.
func ParseCabinSummaries(rows []Record) ([]model.Cabin, error) {
	cabins := make([]model.Cabin, 0, len(rows))
	for i, r := range rows {
		cabin, err := parseCabinSummary(r)
		if err != nil {
			return nil, indexed(i, err)
		}
		cabins = append(cabins, cabin)
	}
	return cabins, nil
}

// ParseGuest validates a guest row.
func ParseGuest(r Record) (*model.Guest, error) {
	var c collector
	guest := &model.Guest{
		ID:          c.id(r, "id"),
		CreatedAt:   c.time(r, "created_at"),
		FullName:    c.str(r, "full_name"),
		Email:       c.str(r, "email"),
		NationalID:  c.str(r, "national_id"),
		Nationality: c.str(r, "nationality"),
		CountryFlag: c.nullableStr(r, "country_flag"),
	}
	if c.err != nil {
		return nil, c.err
	}
	return guest, nil
}

func status(c *collector, r Record) model.BookingStatus {
	s := model.BookingStatus(c.str(r, "status"))
	if c.err == nil && !s.Valid() {
		c.err = fieldError("status", "invalid literal %q, expected unconfirmed, checked-in or checked-out", s)
	}
	return s
}

// ParseBooking validates a full booking row.
func ParseBooking(r Record) (*model.Booking, error) {
	var c collector
	booking := &model.Booking{
		ID:           c.id(r, "id"),
		CreatedAt:    c.time(r, "created_at"),
		StartDate:    c.time(r, "start_date"),
		EndDate:      c.time(r, "end_date"),
		NumNights:    c.int(r, "num_nights"),
		NumGuests:    c.int(r, "num_guests"),
		CabinPrice:   c.int(r, "cabin_price"),
		ExtrasPrice:  c.int(r, "extras_price"),
		TotalPrice:   c.int(r, "total_price"),
		Status:       status(&c, r),
		HasBreakfast: c.bool(r, "has_breakfast"),
		IsPaid:       c.bool(r, "is_paid"),
		Observations: c.nullableStr(r, "observations"),
		CabinID:      c.id(r, "cabin_id"),
		GuestID:      c.id(r, "guest_id"),
	}
	if c.err != nil {
		return nil, c.err
	}
	return booking, nil
}

func parseGuestBooking(r Record) (model.GuestBooking, error) {
	var c collector
	b := model.GuestBooking{
		ID:         c.id(r, "id"),
		CreatedAt:  c.time(r, "created_at"),
		StartDate:  c.time(r, "start_date"),
		EndDate:    c.time(r, "end_date"),
		NumGuests:  c.int(r, "num_guests"),
		NumNights:  c.int(r, "num_nights"),
		Status:     status(&c, r),
		TotalPrice: c.int(r, "total_price"),
		CabinID:    c.id(r, "cabin_id"),
		GuestID:    c.id(r, "guest_id"),
	}
	cabin := c.record(r, "cabins")
	if c.err == nil {
		b.Cabin = model.CabinRef{Name: c.str(cabin, "name"), Image: c.str(cabin, "image")}
		if se, ok := c.err.(*Error); ok {
			c.err = &Error{Field: "cabins." + se.Field, Message: se.Message}
		}
	}
	return b, c.err
}

// ParseGuestBookings validates the rows of a guest's reservation list.
func ParseGuestBookings(rows []Record) ([]model.GuestBooking, error) {
	bookings := make([]model.GuestBooking, 0, len(rows))
	for i, r := range rows {
		b, err := parseGuestBooking(r)
		if err != nil {
			return nil, indexed(i, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ParseDateRanges validates start/end pairs of booked intervals.
func ParseDateRanges(rows []Record) ([]model.DateRange, error) {
	ranges := make([]model.DateRange, 0, len(rows))
	for i, r := range rows {
		var c collector
		dr := model.DateRange{Start: c.time(r, "start_date"), End: c.time(r, "end_date")}
		if c.err != nil {
			return nil, indexed(i, c.err)
		}
		if dr.End.Before(dr.Start) {
			return nil, indexed(i, fieldError("end_date", "must not be before start_date"))
		}
		ranges = append(ranges, dr)
	}
	return ranges, nil
}

// ParseSettings validates the singleton settings row.
func ParseSettings(r Record) (*model.Settings, error) {
	var c collector
	s := &model.Settings{
		MinBookingLength:    c.int(r, "min_booking_length"),
		MaxBookingLength:    c.int(r, "max_booking_length"),
		MaxGuestsPerBooking: c.int(r, "max_guests_per_booking"),
		BreakfastPrice:      c.int(r, "breakfast_price"),
	}
	if c.err != nil {
		return nil, c.err
	}
	return s, nil
}

// ParseCountries validates the data array of the countries API.
func ParseCountries(items []any) ([]model.Country, error) {
	countries := make([]model.Country, 0, len(items))
	for i, item := range items {
		r, ok := item.(map[string]any)
		if !ok {
			return nil, indexed(i, fieldError("item", "expected object, received %T", item))
		}
		var c collector
		country := model.Country{Name: c.str(r, "name"), Flag: c.str(r, "flag")}
		if c.err != nil {
			return nil, indexed(i, c.err)
		}
		countries = append(countries, country)
	}
	return countries, nil
}
