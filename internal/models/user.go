package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuthStateAuth              = "auth"
	AuthStateProfileCompletion = "profile-completion"
	AuthStateComplete          = "complete"
)

type Profile struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Email            string    `db:"email" json:"email,omitempty"`
	Username         string    `db:"username" json:"username" validate:"required,min=3,max=30"`
	FullName         string    `db:"fullname" json:"fullname" validate:"required,max=100"`
	City             string    `db:"city" json:"city,omitempty" validate:"omitempty,max=60"`
	AvatarURL        string    `db:"avatar_url" json:"avatar_url,omitempty"`
	Provider         string    `db:"provider" json:"provider,omitempty"`
	ProfileCompleted bool      `db:"profile_completed" json:"profile_completed"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// SignupRequest is the first step of signup: credentials only. The profile
// is filled in afterwards through profile completion.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ProfileCompletion struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	FullName string `json:"fullname" validate:"required,max=100"`
	City     string `json:"city" validate:"omitempty,max=60"`
}

// AuthState reports which step of the signup flow a signed-in user is at.
func AuthState(p *Profile) string {
	if p == nil || !p.ProfileCompleted {
		return AuthStateProfileCompletion
	}
	return AuthStateComplete
}
