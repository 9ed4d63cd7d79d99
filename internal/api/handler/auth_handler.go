package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/steelcraft/erp-api/internal/api/middleware"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

// AuthHandler handles registration, login and profile management.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Company:  req.Company,
		Phone:    req.Phone,
		Position: req.Position,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: toProfileResponse(user)})
}

// Login authenticates a user and returns a fresh bearer token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toProfileResponse(user)})
}

// Profile returns the authenticated user's public fields.
//
// @Summary      Read own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/users/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile applies a partial profile update. Accepts JSON, or multipart
// form data when a profileImage file is included.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  false  "Fields to update"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/users/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	in, err := bindProfileUpdate(c)
	if err != nil {
		return err
	}

	updated, token, err := h.authService.UpdateProfile(c.Request().Context(), user, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toProfileResponse(updated)})
}

// bindProfileUpdate reads the update payload from either a JSON body or a
// multipart form with an optional profileImage file part.
func bindProfileUpdate(c echo.Context) (ports.UpdateProfileInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		var req updateProfileRequest
		if err := c.Bind(&req); err != nil {
			return ports.UpdateProfileInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		return ports.UpdateProfileInput{
			Name:            req.Name,
			Email:           req.Email,
			Company:         req.Company,
			Phone:           req.Phone,
			Position:        req.Position,
			Password:        req.Password,
			ProfileImageURL: req.ProfileImage,
		}, nil
	}

	in := ports.UpdateProfileInput{
		Name:            c.FormValue("name"),
		Email:           c.FormValue("email"),
		Company:         c.FormValue("company"),
		Phone:           c.FormValue("phone"),
		Position:        c.FormValue("position"),
		Password:        c.FormValue("password"),
		ProfileImageURL: c.FormValue("profileImage"),
	}

	fh, err := c.FormFile("profileImage")
	if err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return ports.UpdateProfileInput{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
		}
		// Closed by the multipart form teardown at end of request.
		in.Image = &ports.MediaFile{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
		}
		// A file part supersedes any profileImage URL form value.
		in.ProfileImageURL = ""
	}

	return in, nil
}
