package domain

import "time"

type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "PENDING"
	VendorStatusApproved VendorStatus = "APPROVED"
	VendorStatusRejected VendorStatus = "REJECTED"
)

func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected:
		return true
	}
	return false
}

type BusinessType string

const (
	BusinessIndividual  BusinessType = "INDIVIDUAL"
	BusinessIP          BusinessType = "IP"
	BusinessLegalEntity BusinessType = "LEGAL_ENTITY"
)

func (t BusinessType) Valid() bool {
	switch t {
	case BusinessIndividual, BusinessIP, BusinessLegalEntity:
		return true
	}
	return false
}

type VendorProfile struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	UserID              uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessType        BusinessType `gorm:"type:varchar(20);not null" json:"business_type"`
	BusinessName        string       `gorm:"size:255" json:"business_name"`
	OrganizationName    string       `gorm:"size:255" json:"organization_name"`
	LegalForm           string       `gorm:"size:40" json:"legal_form"`
	INN                 string       `gorm:"size:30;index" json:"inn"`
	RegistrationCountry string       `gorm:"size:100" json:"registration_country"`
	PassportFrontURL    string       `gorm:"size:500" json:"passport_front_url"`
	PassportBackURL     string       `gorm:"size:500" json:"passport_back_url"`
	Description         string       `gorm:"type:text" json:"description"`
	Status              VendorStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RejectReason        string       `gorm:"type:text" json:"reject_reason,omitempty"`

	User *User `json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetStatus applies a status change and keeps the reject reason consistent:
// the reason survives only while the profile sits in REJECTED.
func (v *VendorProfile) SetStatus(s VendorStatus, reason string) {
	v.Status = s
	if s == VendorStatusRejected {
		v.RejectReason = reason
	} else {
		v.RejectReason = ""
	}
}
