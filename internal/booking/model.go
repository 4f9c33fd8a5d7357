package booking

// Booking is the central travel record. It hangs off a Client and carries
// five dependent collections that are always written and deleted together
// with it. Ownership is indirect: a booking belongs to whoever owns its
// client. All date columns are unix seconds.
type Booking struct {
	ID                       uint64  `gorm:"primaryKey" json:"id"`
	ClientID                 uint64  `gorm:"index" json:"clientId"`
	TravelDate               int64   `json:"travelDate"`
	ClientFinalPaymentDate   int64   `json:"clientFinalPaymentDate"`
	SupplierFinalPaymentDate int64   `json:"supplierFinalPaymentDate"`
	BookingDate              int64   `json:"bookingDate"`
	InvoicedDate             int64   `json:"invoicedDate"`
	ReferenceCode            string  `json:"referenceCode"`
	Amount                   float64 `json:"amount"`
	Notes                    string  `json:"notes"`
	Invoiced                 bool    `json:"invoiced"`
	Paid                     bool    `json:"paid"`
	PaymentDate              *int64  `json:"paymentDate"`
	DateCreated              int64   `json:"dateCreated"`
}

type Confirmation struct {
	ID                 uint64 `gorm:"primaryKey" json:"id"`
	BookingID          uint64 `gorm:"index" json:"bookingId"`
	ConfirmationNumber string `json:"confirmationNumber"`
	Supplier           string `json:"supplier"`
}

type PersonDetail struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	BookingID   uint64 `gorm:"index" json:"bookingId"`
	Name        string `json:"name"`
	DateOfBirth int64  `json:"dateOfBirth"`
}

type SignificantDate struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	BookingID uint64 `gorm:"index" json:"bookingId"`
	Date      int64  `json:"date"`
}

type EmailAddress struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	BookingID uint64 `gorm:"index" json:"bookingId"`
	Email     string `json:"email"`
}

type PhoneNumber struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	BookingID uint64 `gorm:"index" json:"bookingId"`
	Phone     string `json:"phone"`
}

// Relations bundles the five dependent collections of a booking.
type Relations struct {
	Confirmations    []Confirmation    `json:"confirmations"`
	PersonDetails    []PersonDetail    `json:"personDetails"`
	SignificantDates []SignificantDate `json:"significantDates"`
	EmailAddresses   []EmailAddress    `json:"emailAddresses"`
	PhoneNumbers     []PhoneNumber     `json:"phoneNumbers"`
}

// BookingWithRelations is the read shape returned by the API: the booking
// row merged with its dependent collections.
type BookingWithRelations struct {
	Booking
	Relations
}

// RelationUpdates carries the dependent collections of a partial update.
// A nil slice pointer means the payload did not mention that collection,
// so it is left untouched.
type RelationUpdates struct {
	Confirmations    *[]Confirmation
	PersonDetails    *[]PersonDetail
	SignificantDates *[]SignificantDate
	EmailAddresses   *[]EmailAddress
	PhoneNumbers     *[]PhoneNumber
}

// UpcomingFinalPayment is a reminder row: a not yet paid booking whose
// client final payment date is coming up, joined out to the client and
// the owning user so a notice can be addressed.
type UpcomingFinalPayment struct {
	BookingID              uint64
	ReferenceCode          string
	ClientName             string
	UserName               string
	UserEmail              string
	ClientFinalPaymentDate int64
}
