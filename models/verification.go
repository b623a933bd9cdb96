package models

import (
	"time"
)

// PhoneVerification represents the OTP verification data
type PhoneVerification struct {
	Phone     string    `bson:"phone"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expiresAt"`
	Verified  bool      `bson:"verified"`
}

type SendCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Flow  string `json:"flow,omitempty"`
}

type ConfirmCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}
