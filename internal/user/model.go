package user

// User represents an agency user. The ID is a UUID string; every client
// record (and transitively every booking) is owned by exactly one of
// these identifiers.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Password     string `gorm:"-" json:"-"` // input only, not stored in db
	PasswordHash string `json:"-"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
	DateCreated  int64  `json:"dateCreated"`
}

// SafeUser represents a user without sensitive information
type SafeUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsActive    bool   `json:"isActive"`
	DateCreated int64  `json:"dateCreated"`
}

// ToSafeUser converts a User to a SafeUser
func (u *User) ToSafeUser() SafeUser {
	return SafeUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		IsActive:    u.IsActive,
		DateCreated: u.DateCreated,
	}
}
