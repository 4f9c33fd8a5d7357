package commission

// Commission tracks the agent's earnings on a booking. Client and booking
// details are snapshotted at creation time so the record survives later
// edits to either; snapshot fields are never refreshed. The computed
// CommissionRateAmount is Commission multiplied by Rate percent.
type Commission struct {
	ID                   uint64  `gorm:"primaryKey" json:"id"`
	BookingID            uint64  `gorm:"index" json:"bookingId"`
	UserID               string  `gorm:"index" json:"userId"`
	ClientID             uint64  `json:"clientId"`
	ClientName           string  `json:"clientName"`
	Supplier             string  `json:"supplier"`
	BookingTravelDate    int64   `json:"bookingTravelDate"`
	ConfirmationNumber   string  `json:"confirmationNumber"`
	FinalPaymentDate     int64   `json:"finalPaymentDate"`
	Rate                 float64 `json:"rate"`
	Commission           float64 `json:"commission"`
	CommissionRateAmount float64 `json:"commissionRateAmount"`
	Invoiced             bool    `json:"invoiced"`
	Paid                 bool    `json:"paid"`
	PaymentDate          *int64  `json:"paymentDate"`
	DateCreated          int64   `json:"dateCreated"`
}
