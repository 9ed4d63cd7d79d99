package handler

import "github.com/steelcraft/erp-api/internal/core/domain"

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest carries the JSON body of a profile update. Absent or
// empty fields leave the stored values unchanged. When the request is
// multipart, the same fields arrive as form values plus an optional
// profileImage file part.
type updateProfileRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	Password     string `json:"password"`
	ProfileImage string `json:"profileImage"`
}

// profileResponse exposes the public profile fields only; the password hash
// never leaves the domain type (json:"-").
type profileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Position     string `json:"position,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type authResponse struct {
	Token string          `json:"token,omitempty"`
	User  profileResponse `json:"user"`
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Company:      u.Company,
		Phone:        u.Phone,
		Position:     u.Position,
		ProfileImage: u.ProfileImage,
	}
}
