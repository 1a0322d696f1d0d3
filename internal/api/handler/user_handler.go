package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

// UserHandler handles HTTP requests for accounts and favorites.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), ctxActor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get handles GET /users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PATCH /users. Without userId the caller's own profile is
// updated.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), ctxActor(c), req.UserID, toUserPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /users. Without userId the caller's own account is
// deleted.
//
// @Summary      Delete a user
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  deleteUserRequest  false  "Target account"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	var req deleteUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ctxActor(c), req.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddFavorite handles POST /users/favorites/:listingId.
//
// @Summary      Add a listing to the caller's favorites
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        listingId  path      string  true  "Listing id"
// @Success      200        {object}  userResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /users/favorites/{listingId} [post]
func (h *UserHandler) AddFavorite(c echo.Context) error {
	user, err := h.service.AddFavorite(c.Request().Context(), ctxActor(c), c.Param("listingId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// RemoveFavorite handles DELETE /users/favorites/:listingId.
//
// @Summary      Remove a listing from the caller's favorites
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        listingId  path      string  true  "Listing id"
// @Success      200        {object}  userResponse
// @Failure      401        {object}  errorResponse
// @Router       /users/favorites/{listingId} [delete]
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	user, err := h.service.RemoveFavorite(c.Request().Context(), ctxActor(c), c.Param("listingId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
