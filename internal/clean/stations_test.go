package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/civic-etl-go/internal/table"
)

func TestParsePaymentMethods(t *testing.T) {
	cases := map[string][]string{
		"('KEY', 'CREDITCARD')":                  {"KEY", "CREDITCARD"},
		"['KEY', 'TRANSITCARD', 'PHONE']":        {"KEY", "TRANSITCARD", "PHONE"},
		`["KEY"]`:                                {"KEY"},
		"['KEY', '', ' ']":                       {"KEY"},
		"[]":                                     nil,
		"":                                       nil,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePaymentMethods(raw), raw)
	}
}

func TestEncodePaymentMethods(t *testing.T) {
	flags, unknown := EncodePaymentMethods(ParsePaymentMethods("('KEY', 'CREDITCARD')"))
	assert.Equal(t, PaymentFlags{Key: true, CreditCard: true}, flags)
	assert.Empty(t, unknown)

	flags, unknown = EncodePaymentMethods([]string{"phone", "CASH"})
	assert.Equal(t, PaymentFlags{Phone: true}, flags)
	assert.Equal(t, []string{"CASH"}, unknown)
}

func TestCleanStations(t *testing.T) {
	raw := table.New("station_id", "name", "lat", "lon", "address", "capacity", "rental_methods")
	raw.Append("7000", "Fort York  Blvd / Capreol Ct", "43.639832", "-79.395954", "", "35", "['KEY', 'CREDITCARD', 'CASH']")
	raw.Append("bad", "Nowhere", "43.6", "-79.3", "", "10", "[]")
	raw.Append("7001", "Lower Jarvis St", "", "-79.3", "", "10", "[]")
	raw.Append("7002", "St. George St", "43.66", "-79.39", "", "lots", "[]")

	stations, report := CleanStations(raw)
	require.Len(t, stations, 1)

	s := stations[0]
	assert.Equal(t, int32(7000), s.ID)
	assert.Equal(t, 35, s.Capacity)
	assert.True(t, s.RentKey)
	assert.True(t, s.RentCreditCard)
	assert.False(t, s.RentPhone)
	assert.False(t, s.RentTransitCard)
	assert.False(t, s.WardID.Valid)
	assert.True(t, s.FirstUse.IsZero())

	assert.Equal(t, 1, report.Dropped["bad_id"])
	assert.Equal(t, 1, report.Dropped["bad_coordinates"])
	assert.Equal(t, 1, report.Dropped["bad_capacity"])
	assert.Equal(t, 1, report.Fixed["unknown_payment_method"])
}
