package client

// Client is an agency customer record. Every client belongs to exactly
// one user (UserID); all reads and writes are filtered by that owner.
// Timestamps are unix seconds.
type Client struct {
	ID                  uint64 `gorm:"primaryKey" json:"id"`
	UserID              string `gorm:"index" json:"userId"`
	ClientName          string `json:"clientName"`
	ClientEmail         string `json:"clientEmail"`
	ClientPhone         string `json:"clientPhone"`
	ClientPostalCode    string `json:"clientPostalCode"`
	ClientStreetAddress string `json:"clientStreetAddress"`
	ClientCity          string `json:"clientCity"`
	ClientProvince      string `json:"clientProvince"`
	ClientCountry       string `json:"clientCountry"`
	Notes               string `json:"notes"`
	PaymentDate         *int64 `json:"paymentDate"`
	FinalPaymentDate    *int64 `json:"finalPaymentDate"`
	DateCreated         int64  `json:"dateCreated"`
}
