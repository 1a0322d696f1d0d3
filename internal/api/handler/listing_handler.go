package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

// ListingHandler handles HTTP requests for listings.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// List handles GET /listings.
//
// @Summary      List listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        city     query     string  false  "City, case-insensitive"
// @Param        ownerId  query     string  false  "Owner user id"
// @Success      200      {array}   listingResponse
// @Failure      401      {object}  errorResponse
// @Router       /listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	filter := ports.ListingFilter{
		City:    c.QueryParam("city"),
		OwnerID: c.QueryParam("ownerId"),
	}
	listings, err := h.service.List(c.Request().Context(), ctxActor(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponses(listings))
}

// Get handles GET /listings/:id.
//
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  listingResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.service.Get(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

// Create handles POST /listings. The caller becomes the owner.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing"
// @Success      201   {object}  listingResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var req createListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	listing, err := h.service.Create(c.Request().Context(), ctxActor(c), toCreateListingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toListingResponse(listing))
}

// Update handles PATCH /listings/:id and PATCH /listings with listingId in
// the body.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                false  "Listing id"
// @Param        body  body      updateListingRequest  true   "Fields to change"
// @Success      200   {object}  listingResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /listings/{id} [patch]
func (h *ListingHandler) Update(c echo.Context) error {
	var req updateListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	listing, err := h.service.Update(c.Request().Context(), ctxActor(c), listingID(c, req.ListingID), toListingPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

// Delete handles DELETE /listings/:id and DELETE /listings with listingId in
// the body.
//
// @Summary      Delete a listing
// @Tags         listings
// @Security     BearerAuth
// @Param        id   path  string  false  "Listing id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	var req deleteListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ctxActor(c), listingID(c, req.ListingID)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listingID prefers the path parameter over the body field.
func listingID(c echo.Context, fromBody string) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return fromBody
}
