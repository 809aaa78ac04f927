package domain

import "time"

// Gender is the closed set of gender tags accepted on registration.
type Gender string

const (
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
	GenderNeutral Gender = "neutral"
)

// Valid reports whether g is one of the accepted gender tags.
func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderNeutral:
		return true
	}
	return false
}

// User represents a registered account as stored. PasswordHash never leaves
// the service layer; callers receive copies with the hash cleared.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Gender       Gender
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Redacted returns a copy of the user with credential material removed.
func (u *User) Redacted() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Gender:    u.Gender,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
