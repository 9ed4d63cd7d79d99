package ports

import (
	"context"

	"github.com/steelcraft/erp-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Company  string
	Phone    string
	Position string
}

// UpdateProfileInput carries a partial profile update. Empty strings mean
// "leave unchanged" (an explicit empty string does not clear a field).
type UpdateProfileInput struct {
	Name     string
	Email    string
	Company  string
	Phone    string
	Position string
	Password string
	// ProfileImageURL is stored verbatim when no binary image is supplied.
	ProfileImageURL string
	// Image, when non-nil, is uploaded to the media host and supersedes any
	// previously hosted profile image.
	Image *MediaFile
}

// AuthService implements registration, login and profile management.
// Register, Login and UpdateProfile all return a freshly issued bearer token
// alongside the user.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User, in UpdateProfileInput) (*domain.User, string, error)
}
