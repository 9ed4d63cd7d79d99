package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/steelcraft/erp-api/internal/api/metrics"
	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

const profileImageFolder = "erp/profiles"

// CleanupQueue abstracts the background queue for best-effort media deletes.
type CleanupQueue interface {
	Enqueue(publicID, resourceType string)
}

// AuthService implements registration, login and profile management.
type AuthService struct {
	repo      ports.UserRepository
	media     ports.MediaService
	cleanup   CleanupQueue
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	media ports.MediaService,
	cleanup CleanupQueue,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		media:     media,
		cleanup:   cleanup,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a new account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	email := normalizeEmail(in.Email)

	// Convenience pre-check; the unique index on email is the authoritative
	// guard against concurrent registrations.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Company:      in.Company,
		Phone:        in.Phone,
		Position:     in.Position,
		ProfileImage: placeholderAvatar(in.Name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// UpdateProfile applies a partial update to the authenticated user. Absent or
// empty fields are left unchanged. Returns the updated record and a fresh
// token.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, in ports.UpdateProfileInput) (*domain.User, string, error) {
	updated := *user

	if in.Email != "" {
		email := normalizeEmail(in.Email)
		if email != user.Email {
			other, err := s.repo.FindByEmail(ctx, email)
			if err == nil && other.ID != user.ID {
				return nil, "", domain.ErrEmailTaken
			}
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, "", err
			}
			updated.Email = email
		}
	}
	if in.Name != "" {
		updated.Name = in.Name
	}
	if in.Company != "" {
		updated.Company = in.Company
	}
	if in.Phone != "" {
		updated.Phone = in.Phone
	}
	if in.Position != "" {
		updated.Position = in.Position
	}

	switch {
	case in.Image != nil:
		// Superseded relay-hosted assets are deleted in the background;
		// a failed delete never fails the profile update.
		if publicID, ok := relayPublicID(user.ProfileImage); ok {
			s.cleanup.Enqueue(publicID, "image")
		}

		asset, err := s.media.Upload(ctx, *in.Image, ports.MediaUploadOptions{
			Folder:     profileImageFolder,
			SizePreset: "profile",
			PublicID:   fmt.Sprintf("user_%s_%d", user.ID, time.Now().Unix()),
		})
		if err != nil {
			return nil, "", err
		}
		updated.ProfileImage = asset.URL

	case in.ProfileImageURL != "":
		// Stored verbatim; no reachability or format validation.
		updated.ProfileImage = in.ProfileImageURL
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, "", err
		}
		updated.PasswordHash = string(hash)
	}

	updated.UpdatedAt = time.Now().UTC()

	persisted, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(persisted)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", persisted.ID).Msg("profile updated")
	return persisted, token, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// placeholderAvatar builds the generated avatar URL assigned at registration.
func placeholderAvatar(name string) string {
	return "https://ui-avatars.com/api/?background=0D8ABC&color=fff&name=" + url.QueryEscape(name)
}

// relayPublicID extracts the storage key from a media-host delivery URL.
// Returns false for external or empty URLs, which are never deleted.
func relayPublicID(imageURL string) (string, bool) {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return "", false
	}

	_, after, found := strings.Cut(imageURL, "/upload/")
	if !found || after == "" {
		return "", false
	}

	parts := strings.Split(after, "/")
	// Drop transformation and version segments (e.g. "c_fill,w_400" or "v1712").
	for len(parts) > 1 {
		seg := parts[0]
		if strings.Contains(seg, ",") || (len(seg) > 1 && seg[0] == 'v' && isDigits(seg[1:])) {
			parts = parts[1:]
			continue
		}
		break
	}

	publicID := strings.Join(parts, "/")
	if dot := strings.LastIndex(publicID, "."); dot > 0 {
		publicID = publicID[:dot]
	}
	if publicID == "" {
		return "", false
	}
	return publicID, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
