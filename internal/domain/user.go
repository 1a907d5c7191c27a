package domain

import "time"

type UserType string

const (
	UserTypeUser       UserType = "USER"
	UserTypeVendor     UserType = "VENDOR"
	UserTypeAdmin      UserType = "ADMIN"
	UserTypeSuperadmin UserType = "SUPERADMIN"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeUser, UserTypeVendor, UserTypeAdmin, UserTypeSuperadmin:
		return true
	}
	return false
}

type User struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	ExternalUID string   `gorm:"uniqueIndex;size:128;not null" json:"-"`
	Phone       string   `gorm:"uniqueIndex;size:50;not null" json:"phone"`
	FirstName   string   `gorm:"size:100" json:"first_name"`
	LastName    string   `gorm:"size:100" json:"last_name"`
	Email       string   `gorm:"size:140;index" json:"email"`
	UserType    UserType `gorm:"type:varchar(20);not null;default:'USER'" json:"user_type"`

	VendorProfile *VendorProfile `json:"vendor_profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin || u.UserType == UserTypeSuperadmin
}

func (u *User) IsSuperadmin() bool { return u.UserType == UserTypeSuperadmin }

// TokenClaims is what the identity provider attaches to a verified bearer token.
type TokenClaims struct {
	Subject      string
	UserType     UserType
	VendorStatus VendorStatus
}
