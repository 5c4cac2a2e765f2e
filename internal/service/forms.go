package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

// MaxObservationsLength caps the free-text observations of a booking.
const MaxObservationsLength = 1000

var nationalIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{6,12}$`)

// BookingDraft is the part of a reservation picked on the date selector.
// A nil date means the guest has not picked it yet.
type BookingDraft struct {
	CabinID   int64
	StartDate *time.Time
	EndDate   *time.Time
}

// ReservationForm holds the raw reservation form fields.
type ReservationForm struct {
	NumGuests    string
	Observations string
}

// EditReservationForm holds the raw fields of the edit-reservation form.
type EditReservationForm struct {
	BookingID    string
	NumGuests    string
	Observations string
}

// ProfileForm holds the raw fields of the guest profile form.
type ProfileForm struct {
	NationalID  string
	Nationality string
}

// Outcome is the result of a successful mutation: the affected booking
// and where the caller should be sent next.
type Outcome struct {
	Booking  *model.Booking
	Redirect string
}

func parsePositive(field, raw, message string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 1 {
		return 0, model.Validation(field, message)
	}
	return n, nil
}

// truncateObservations trims text to MaxObservationsLength runes.
// Overlong text is cut, never rejected.
func truncateObservations(text string) string {
	if len(text) <= MaxObservationsLength {
		return text
	}
	runes := []rune(text)
	if len(runes) <= MaxObservationsLength {
		return text
	}
	return string(runes[:MaxObservationsLength])
}

// optionalObservations returns nil for a blank field. Otherwise the text is
// stored as written, truncated to MaxObservationsLength.
func optionalObservations(text string) *string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = truncateObservations(text)
	return &text
}

func validNationalID(id string) bool {
	return nationalIDPattern.MatchString(id)
}

// splitNationality decodes the "<name>%<flagURL>" value of the country select.
func splitNationality(raw string) (name string, flag *string) {
	name, f, found := strings.Cut(raw, "%")
	if found && f != "" {
		flag = &f
	}
	return name, flag
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nightsBetween(start, end time.Time) int {
	return int(startOfDay(end).Sub(startOfDay(start)).Hours() / 24)
}
