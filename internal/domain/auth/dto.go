package auth

import (
	"strings"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	// Name
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	validateEmail(&errs, r.Email)

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(r.Password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}

	return errs.OrNil()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	validateEmail(&errs, r.Email)

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.OrNil()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refreshToken", "refreshToken is required")
	}
	if len(r.RefreshToken) > 1024 {
		errs.Add("refreshToken", "refreshToken must not exceed 1024 characters")
	}

	return errs.OrNil()
}

// LogoutRequest carries the tokens of the session being closed. Either may be empty.
type LogoutRequest struct {
	AccessToken  string
	RefreshToken string
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

// TokenResponse is returned by register and login. Token is the access token.
type TokenResponse struct {
	Token                 string            `json:"token"`
	ExpiresAt             int64             `json:"expiresAt"`
	RefreshToken          string            `json:"refreshToken"`
	RefreshTokenExpiresAt int64             `json:"refreshTokenExpiresAt"`
	User                  user.UserResponse `json:"user"`
}

type AccessTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

func validateEmail(errs *validator.ValidationErrors, email string) {
	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", "please add a valid email")
	}
}
