package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platformlab/auth-api/internal/api/middleware"
	"github.com/platformlab/auth-api/internal/core/domain"
	"github.com/platformlab/auth-api/internal/core/ports"
)

// ProfileHandler exposes the token-gated profile operations. The :id path
// segment is kept for wire compatibility but ignored: the identity acted on
// is always the token's own subject.
type ProfileHandler struct {
	service ports.AuthService
}

func NewProfileHandler(service ports.AuthService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// bearerToken returns the raw token placed in context by the BearerToken
// middleware.
func bearerToken(c echo.Context) (string, error) {
	token, _ := c.Get(middleware.TokenKey).(string)
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	return token, nil
}

// Get returns the authenticated user's profile, without the password hash.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id (informational; the token subject is authoritative)"
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile/{id} [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	})
}

// Update applies the fields present in the body to the authenticated user.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id (informational; the token subject is authoritative)"
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  ackResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /profile/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.service.UpdateProfile(c.Request().Context(), token, ports.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ackResponse{Message: "Profile updated successfully"})
}

// Delete permanently removes the authenticated user.
//
// @Summary      Delete own account
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id (informational; the token subject is authoritative)"
// @Success      200  {object}  ackResponse
// @Failure      401  {object}  map[string]string
// @Router       /profile/{id} [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	token, err := bearerToken(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProfile(c.Request().Context(), token); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ackResponse{Message: "User deleted successfully"})
}
