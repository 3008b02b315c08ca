package domain

// User Model
type User struct {
	ID        uint   `gorm:"primaryKey"`                    // Primary key
	Email     string `gorm:"size:254;uniqueIndex;not null"` // Login e-mail, unique
	Username  string `gorm:"size:150;uniqueIndex;not null"` // Public nickname, unique
	Password  string `gorm:"size:255;not null"`             // bcrypt hash, never the plain password
	FirstName string `gorm:"size:150;not null"`             // First name
	LastName  string `gorm:"size:150;not null"`             // Last name
	Avatar    string `gorm:"size:255"`                      // Image store key, empty when unset
	IsAdmin   bool   `gorm:"not null;default:false"`        // Admin capability
}
