package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnakeKey(t *testing.T) {
	cases := map[string]string{
		"clientName":             "client_name",
		"clientFinalPaymentDate": "client_final_payment_date",
		"notes":                  "notes",
		"id":                     "id",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, CamelToSnakeKey(input))
	}
}

func TestSnakeToCamelKey(t *testing.T) {
	cases := map[string]string{
		"client_name":                 "clientName",
		"commission_rate_amount":      "commissionRateAmount",
		"notes":                       "notes",
		"booking_travel_date":         "bookingTravelDate",
		"supplier_final_payment_date": "supplierFinalPaymentDate",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, SnakeToCamelKey(input))
	}
}

// TestCaseConversionRoundTrip checks the conversions invert each other
// for the field names the API actually uses.
func TestCaseConversionRoundTrip(t *testing.T) {
	keys := []string{
		"clientName", "clientEmail", "clientPhone", "clientPostalCode",
		"clientStreetAddress", "clientCity", "clientProvince", "clientCountry",
		"travelDate", "clientFinalPaymentDate", "supplierFinalPaymentDate",
		"bookingDate", "invoicedDate", "referenceCode", "amount", "notes",
		"invoiced", "paid", "paymentDate", "dateCreated",
		"confirmationNumber", "supplier", "dateOfBirth",
		"rate", "commission", "commissionRateAmount",
	}
	for _, key := range keys {
		assert.Equal(t, key, SnakeToCamelKey(CamelToSnakeKey(key)), key)
	}
}

func TestCamelToSnakeMapNested(t *testing.T) {
	input := map[string]any{
		"clientName": "Ada",
		"relatedData": map[string]any{
			"personDetails": []any{
				map[string]any{"dateOfBirth": int64(100)},
			},
		},
	}

	result := CamelToSnakeMap(input)

	assert.Equal(t, "Ada", result["client_name"])
	related, ok := result["related_data"].(map[string]any)
	assert.True(t, ok)
	people, ok := related["person_details"].([]any)
	assert.True(t, ok)
	person, ok := people[0].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, int64(100), person["date_of_birth"])
}

func TestSnakeToCamelMap(t *testing.T) {
	input := map[string]any{
		"client_name":            "Ada",
		"commission_rate_amount": 12.5,
		"paid":                   true,
	}

	result := SnakeToCamelMap(input)

	assert.Equal(t, "Ada", result["clientName"])
	assert.Equal(t, 12.5, result["commissionRateAmount"])
	assert.Equal(t, true, result["paid"])
}
