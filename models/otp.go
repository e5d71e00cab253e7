package models

import "time"

// OTP is a one-time passcode issued to a user. Only the newest OTP of a user
// is authoritative.
type OTP struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Code        string    `json:"code"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the OTP model.
func (o OTP) TableName() string {
	return "otp"
}

// IsExpired reports whether the code can no longer be used at now.
// A code checked exactly at ExpiresAt is expired.
func (o OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// AttemptsLeft returns how many more wrong codes are tolerated.
func (o OTP) AttemptsLeft() int {
	left := o.MaxAttempts - o.Attempts
	if left < 0 {
		return 0
	}
	return left
}
