package clean

import (
	"math"
	"strings"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/table"
)

// Payment method tokens used by the station feed
const (
	PaymentKey         = "KEY"
	PaymentPhone       = "PHONE"
	PaymentTransitCard = "TRANSITCARD"
	PaymentCreditCard  = "CREDITCARD"
)

// PaymentFlags is the one-hot expansion of a station's payment methods
type PaymentFlags struct {
	Key         bool
	Phone       bool
	TransitCard bool
	CreditCard  bool
}

// ParsePaymentMethods splits a string-encoded list such as
// "['KEY', 'CREDITCARD']" or "('KEY', 'CREDITCARD')" into its tokens.
// Empty and whitespace-only tokens are discarded.
func ParsePaymentMethods(raw string) []string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	} else {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		for _, tok := range strings.FieldsFunc(part, func(r rune) bool { return r == '\'' || r == '"' }) {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// EncodePaymentMethods maps tokens onto the fixed payment columns.
// Tokens that match no column are returned as unknown.
func EncodePaymentMethods(tokens []string) (PaymentFlags, []string) {
	var flags PaymentFlags
	var unknown []string
	for _, tok := range tokens {
		switch strings.ToUpper(tok) {
		case PaymentKey:
			flags.Key = true
		case PaymentPhone:
			flags.Phone = true
		case PaymentTransitCard:
			flags.TransitCard = true
		case PaymentCreditCard:
			flags.CreditCard = true
		default:
			unknown = append(unknown, tok)
		}
	}
	return flags, unknown
}

// CleanStations converts a normalized station table into stations with
// one-hot payment columns. Ward and first use are filled by later stages.
func CleanStations(t *table.Table) ([]models.Station, *Report) {
	report := NewReport("stations")
	report.RowsIn = t.Len()

	out := make([]models.Station, 0, t.Len())
	for i := range t.Rows {
		id, err := ParseInt(t.Get(i, "station_id"), 32)
		if err != nil {
			report.Drop("bad_id")
			continue
		}

		lat, errLat := ParseFloat(t.Get(i, "lat"))
		lon, errLon := ParseFloat(t.Get(i, "lon"))
		if errLat != nil || errLon != nil || math.IsNaN(lat) || math.IsNaN(lon) {
			report.Drop("bad_coordinates")
			continue
		}

		capacity, err := ParseInt(t.Get(i, "capacity"), 32)
		if err != nil {
			report.Drop("bad_capacity")
			continue
		}

		flags, unknown := EncodePaymentMethods(ParsePaymentMethods(t.Get(i, "rental_methods")))
		report.Fix("unknown_payment_method", len(unknown))

		out = append(out, models.Station{
			ID:              int32(id),
			Name:            text(t.Get(i, "name")),
			Lat:             lat,
			Lon:             lon,
			Address:         text(t.Get(i, "address")),
			Capacity:        int(capacity),
			RentKey:         flags.Key,
			RentPhone:       flags.Phone,
			RentTransitCard: flags.TransitCard,
			RentCreditCard:  flags.CreditCard,
		})
	}

	report.RowsOut = len(out)
	return out, report
}
