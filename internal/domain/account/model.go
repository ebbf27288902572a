package account

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hospital/records/internal/domain"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Passwords are capped at 72 bytes because bcrypt ignores anything longer.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,maxbytes=72"`
}

// Normalize trims the name and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

func (r *RegisterRequest) Validate() error {
	r.Normalize()
	return domain.Validate(r)
}

// RegisterResponse is returned with 201 after registration.
type RegisterResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return domain.Validate(r)
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

// LogoutRequest optionally names a refresh token to revoke alongside the
// presented access token.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
