package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

func bookingRow() Record {
	return Record{
		"id":            int64(7),
		"created_at":    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		"start_date":    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		"end_date":      time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		"num_nights":    int32(2),
		"num_guests":    int32(3),
		"cabin_price":   int32(500),
		"extras_price":  int32(0),
		"total_price":   int32(500),
		"status":        "unconfirmed",
		"has_breakfast": false,
		"is_paid":       false,
		"observations":  nil,
		"cabin_id":      int64(1),
		"guest_id":      int64(42),
	}
}

func TestParseBooking(t *testing.T) {
	b, err := ParseBooking(bookingRow())
	require.NoError(t, err)

	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, 2, b.NumNights)
	assert.Equal(t, model.StatusUnconfirmed, b.Status)
	assert.Nil(t, b.Observations)
	assert.Equal(t, int64(42), b.GuestID)
}

func TestParseBooking_RejectsUnknownStatus(t *testing.T) {
	row := bookingRow()
	row["status"] = "cancelled"

	_, err := ParseBooking(row)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "status", se.Field)
}

func TestParseBooking_ReportsFirstViolation(t *testing.T) {
	row := bookingRow()
	row["num_guests"] = "three"
	delete(row, "guest_id")

	_, err := ParseBooking(row)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "num_guests", se.Field)
}

func TestParseCabin(t *testing.T) {
	row := Record{
		"id":            int64(3),
		"created_at":    "2024-01-02T10:00:00Z",
		"name":          "001",
		"description":   "Cosy",
		"discount":      float64(50),
		"image":         "https://img/001.jpg",
		"max_capacity":  int32(4),
		"regular_price": json.Number("250"),
	}

	cabin, err := ParseCabin(row)
	require.NoError(t, err)

	assert.Equal(t, "001", cabin.Name)
	assert.Equal(t, 50, cabin.Discount)
	assert.Equal(t, 250, cabin.RegularPrice)
	assert.Equal(t, 2024, cabin.CreatedAt.Year())
}

func TestParseCabin_RejectsFractionalPrice(t *testing.T) {
	row := Record{
		"id": int64(3), "created_at": "2024-01-02", "name": "001", "description": "",
		"discount": 0.5, "image": "", "max_capacity": int32(4), "regular_price": int32(250),
	}

	_, err := ParseCabin(row)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "discount", se.Field)
}

func TestParseCabinSummaries_IndexesErrors(t *testing.T) {
	rows := []Record{
		{"id": int64(1), "name": "a", "max_capacity": int32(2), "regular_price": int32(100), "discount": int32(0), "image": "x"},
		{"id": int64(2), "name": nil, "max_capacity": int32(2), "regular_price": int32(100), "discount": int32(0), "image": "x"},
	}

	_, err := ParseCabinSummaries(rows)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "[1].name", se.Field)
}

func TestParseGuest_NullableFlag(t *testing.T) {
	row := Record{
		"id": int64(9), "created_at": time.Now(), "full_name": "Jonas Schmedtmann",
		"email": "jonas@example.com", "national_id": "", "nationality": "", "country_flag": nil,
	}

	g, err := ParseGuest(row)
	require.NoError(t, err)
	assert.Nil(t, g.CountryFlag)

	row["country_flag"] = "https://flagcdn.com/pt.svg"
	g, err = ParseGuest(row)
	require.NoError(t, err)
	require.NotNil(t, g.CountryFlag)
	assert.Equal(t, "https://flagcdn.com/pt.svg", *g.CountryFlag)
}

func TestParseGuestBookings_NestedCabin(t *testing.T) {
	row := bookingRow()
	row["cabins"] = map[string]any{"name": "002", "image": "img"}

	list, err := ParseGuestBookings([]Record{row})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "002", list[0].Cabin.Name)

	row["cabins"] = map[string]any{"name": "002"}
	_, err = ParseGuestBookings([]Record{row})
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "[0].cabins.image", se.Field)
}

func TestParseDateRanges_RejectsInvertedRange(t *testing.T) {
	rows := []Record{{"start_date": "2024-06-12", "end_date": "2024-06-10"}}

	_, err := ParseDateRanges(rows)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "[0].end_date", se.Field)
}

func TestParseCountries(t *testing.T) {
	var payload struct {
		Data []any `json:"data"`
	}
	raw := `{"data":[{"name":"Portugal","flag":"https://flags/pt.svg"},{"name":"Japan","flag":"https://flags/jp.svg"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	countries, err := ParseCountries(payload.Data)
	require.NoError(t, err)
	assert.Equal(t, []model.Country{
		{Name: "Portugal", Flag: "https://flags/pt.svg"},
		{Name: "Japan", Flag: "https://flags/jp.svg"},
	}, countries)

	_, err = ParseCountries([]any{"Portugal"})
	assert.Error(t, err)
}
