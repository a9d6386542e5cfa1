package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// Required columns of a raw reservation export. PII columns are
// optional: absent ones resolve to empty identity fields.
var requiredColumns = []string{
	"reservation_number", "arrival_date", "departure_date",
	"stay_year", "stay_month", "stay_day",
	"building_code", "rate_category",
	"zip_postal_code", "country_code",
}

var dateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006"}

// LoadFile reads a raw reservation CSV into records. Schema
// validation here is limited to column presence; value-level
// validation belongs to the pipeline.
func LoadFile(path string) ([]*models.GuestRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("batch file has no data rows")
	}

	header := rows[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range requiredColumns {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return cleanValue(row[i])
	}

	records := make([]*models.GuestRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec := &models.GuestRecord{
			BuildingCode:      field(row, "building_code"),
			RateCategory:      strings.ToLower(field(row, "rate_category")),
			GroupTypeCode:     field(row, "group_type_code"),
			GroupName:         field(row, "group_name"),
			ZipPostalCode:     field(row, "zip_postal_code"),
			StateProvinceCode: field(row, "state_province_code"),
			CityCode:          field(row, "city_code"),
			CountryCode:       field(row, "country_code"),
			FirstName:         field(row, "first_name"),
			LastName:          field(row, "last_name"),
			Address1:          field(row, "address_1"),
			Address2:          field(row, "address_2"),
			PhoneNumber:       field(row, "phone_number"),
			HomePhoneNumber:   field(row, "home_phone_number"),
			CellPhoneNumber:   field(row, "cell_phone_number"),
			EmailAddress:      field(row, "email_address"),
			InternetAddress:   field(row, "internet_address"),
		}

		rec.ReservationNumber, err = strconv.ParseInt(field(row, "reservation_number"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad reservation number: %w", n+2, err)
		}

		if rec.ArrivalDate, err = parseDate(field(row, "arrival_date")); err != nil {
			return nil, fmt.Errorf("row %d: bad arrival date: %w", n+2, err)
		}
		if rec.DepartureDate, err = parseDate(field(row, "departure_date")); err != nil {
			return nil, fmt.Errorf("row %d: bad departure date: %w", n+2, err)
		}
		if rec.StayDate, err = stayDate(
			field(row, "stay_year"), field(row, "stay_month"), field(row, "stay_day"),
		); err != nil {
			return nil, fmt.Errorf("row %d: bad stay date: %w", n+2, err)
		}

		if v := field(row, "numberofbednights"); v != "" {
			if bn, err := strconv.Atoi(v); err == nil {
				rec.NumberOfBednights = bn
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// PartitionRateCategory splits records into billable room rows and the
// non-room reject set (meals, retail, day passes).
func PartitionRateCategory(records []*models.GuestRecord) (room, nonRoom []*models.GuestRecord) {
	for _, r := range records {
		if r.RateCategory == models.RateCategoryRoom {
			room = append(room, r)
		} else {
			nonRoom = append(nonRoom, r)
		}
	}
	return room, nonRoom
}

// cleanValue trims and clears the textual null placeholders pandas
// exports leave behind.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "null":
		return ""
	}
	return s
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func stayDate(year, month, day string) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad stay year %q", year)
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad stay month %q", month)
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad stay day %q", day)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}
