package models

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"
)

// DateLayout is the output format of calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component
type Date struct {
	time.Time
}

// NewDate truncates a timestamp to its calendar day
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String formats the date as YYYY-MM-DD, empty when unset
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalCSV implements gocsv.TypeMarshaller
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// MarshalJSON writes the date as a YYYY-MM-DD string or null
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v)
	default:
		t, err := time.Parse(DateLayout, string(toBytes(v)))
		if err != nil {
			return err
		}
		*d = Date{Time: t}
	}
	return nil
}

// ZoneID is a nullable ward or neighbourhood reference
type ZoneID struct {
	ID    int64
	Valid bool
}

// Zone returns a valid zone reference
func Zone(id int64) ZoneID {
	return ZoneID{ID: id, Valid: true}
}

// MarshalCSV implements gocsv.TypeMarshaller
func (z ZoneID) MarshalCSV() (string, error) {
	if !z.Valid {
		return "", nil
	}
	return strconv.FormatInt(z.ID, 10), nil
}

// MarshalJSON writes the id or null
func (z ZoneID) MarshalJSON() ([]byte, error) {
	if !z.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(z.ID, 10)), nil
}

// Value implements driver.Valuer
func (z ZoneID) Value() (driver.Value, error) {
	if !z.Valid {
		return nil, nil
	}
	return z.ID, nil
}

// Scan implements sql.Scanner
func (z *ZoneID) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*z = ZoneID{}
	case int64:
		*z = Zone(v)
	default:
		id, err := strconv.ParseInt(string(toBytes(v)), 10, 64)
		if err != nil {
			return err
		}
		*z = Zone(id)
	}
	return nil
}

// Measure is a nullable numeric reading
type Measure struct {
	Float64 float64
	Valid   bool
}

// Measured returns a valid reading
func Measured(v float64) Measure {
	return Measure{Float64: v, Valid: true}
}

// MarshalCSV implements gocsv.TypeMarshaller, an empty cell when null
func (m Measure) MarshalCSV() (string, error) {
	if !m.Valid {
		return "", nil
	}
	return strconv.FormatFloat(m.Float64, 'f', -1, 64), nil
}

// MarshalJSON writes the value or null
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Float64)
}

// Value implements driver.Valuer
func (m Measure) Value() (driver.Value, error) {
	if !m.Valid {
		return nil, nil
	}
	return m.Float64, nil
}

// Scan implements sql.Scanner
func (m *Measure) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Measure{}
	case float64:
		*m = Measured(v)
	case int64:
		*m = Measured(float64(v))
	default:
		f, err := strconv.ParseFloat(string(toBytes(v)), 64)
		if err != nil {
			return err
		}
		*m = Measured(f)
	}
	return nil
}

func toBytes(v interface{}) []byte {
	switch b := v.(type) {
	case []byte:
		return b
	case string:
		return []byte(b)
	}
	return nil
}
