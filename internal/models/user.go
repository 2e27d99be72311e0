package models

// Role controls access to the admin back office.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// AuthProvider records how the account was created.
type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
)

// User represents the user model in the database. Password holds a
// bcrypt hash; google-provider accounts have no usable password.
type User struct {
	Base
	Email            string       `gorm:"uniqueIndex;not null" json:"email"`
	Password         string       `gorm:"not null" json:"-"`
	Name             string       `gorm:"size:128" json:"name"`
	Phone            string       `gorm:"size:32" json:"phone,omitempty"`
	Role             Role         `gorm:"size:16;not null;default:user" json:"role"`
	Provider         AuthProvider `gorm:"size:16;not null;default:email" json:"provider"`
	IsActive         bool         `gorm:"not null;default:true" json:"is_active"`
	RefreshTokenHash string       `gorm:"size:64" json:"-"`

	Orders  []Order  `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	Reviews []Review `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}
