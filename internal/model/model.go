// Package model defines the core domain types for the cabin booking system.
package model

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusUnconfirmed BookingStatus = "unconfirmed"
	StatusCheckedIn   BookingStatus = "checked-in"
	StatusCheckedOut  BookingStatus = "checked-out"
)

// Valid reports whether s is one of the known lifecycle states.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusUnconfirmed, StatusCheckedIn, StatusCheckedOut:
		return true
	}
	return false
}

// Cabin is a rentable unit. List queries only fill the summary columns.
type Cabin struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image"`
	MaxCapacity  int       `json:"max_capacity"`
	RegularPrice int       `json:"regular_price"`
	Discount     int       `json:"discount"`
}

// CabinPrice is the pricing projection of a cabin.
type CabinPrice struct {
	RegularPrice int `json:"regular_price"`
	Discount     int `json:"discount"`
}

// Nightly returns the discounted price of one night.
func (p CabinPrice) Nightly() int {
	return p.RegularPrice - p.Discount
}

// Guest is the internal identity record correlated 1:1 with a provider email.
type Guest struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	NationalID  string    `json:"national_id"`
	Nationality string    `json:"nationality"`
	CountryFlag *string   `json:"country_flag"`
}

// NewGuest is the payload used to provision a guest on first sign-in.
type NewGuest struct {
	Email    string
	FullName string
}

// GuestUpdate holds the guest-editable profile fields.
type GuestUpdate struct {
	NationalID  string
	Nationality string
	CountryFlag *string
}

// Booking is a reservation of a cabin by a guest.
type Booking struct {
	ID           int64         `json:"id"`
	CreatedAt    time.Time     `json:"created_at"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	NumNights    int           `json:"num_nights"`
	NumGuests    int           `json:"num_guests"`
	CabinPrice   int           `json:"cabin_price"`
	ExtrasPrice  int           `json:"extras_price"`
	TotalPrice   int           `json:"total_price"`
	Status       BookingStatus `json:"status"`
	HasBreakfast bool          `json:"has_breakfast"`
	IsPaid       bool          `json:"is_paid"`
	Observations *string       `json:"observations"`
	CabinID      int64         `json:"cabin_id"`
	GuestID      int64         `json:"guest_id"`
}

// CabinRef is the slice of cabin data shown next to a guest's booking.
type CabinRef struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// GuestBooking is a booking row as listed in the guest's account area.
type GuestBooking struct {
	ID         int64         `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    time.Time     `json:"end_date"`
	NumNights  int           `json:"num_nights"`
	NumGuests  int           `json:"num_guests"`
	Status     BookingStatus `json:"status"`
	TotalPrice int           `json:"total_price"`
	CabinID    int64         `json:"cabin_id"`
	GuestID    int64         `json:"guest_id"`
	Cabin      CabinRef      `json:"cabin"`
}

// NewBooking is a fully assembled booking ready to be persisted.
type NewBooking struct {
	StartDate    time.Time
	EndDate      time.Time
	NumNights    int
	NumGuests    int
	CabinPrice   int
	ExtrasPrice  int
	TotalPrice   int
	Status       BookingStatus
	HasBreakfast bool
	IsPaid       bool
	Observations *string
	CabinID      int64
	GuestID      int64
}

// BookingUpdate holds the guest-editable booking fields.
type BookingUpdate struct {
	NumGuests    int
	Observations *string
}

// Settings bounds booking parameters. There is exactly one row.
type Settings struct {
	MinBookingLength    int `json:"min_booking_length"`
	MaxBookingLength    int `json:"max_booking_length"`
	MaxGuestsPerBooking int `json:"max_guests_per_booking"`
	BreakfastPrice      int `json:"breakfast_price"`
}

// Country is an entry of the remote country list.
type Country struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Session is the authenticated principal attached to a request. GuestID is
// the ownership key for every booking mutation.
type Session struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
	GuestID int64  `json:"guest_id"`
}
