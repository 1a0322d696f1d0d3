package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

// MessageHandler handles HTTP requests for messages about a listing.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// ListForListing handles GET /listings/:id/messages.
//
// @Summary      List the messages of a listing
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {array}   messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /listings/{id}/messages [get]
func (h *MessageHandler) ListForListing(c echo.Context) error {
	msgs, err := h.service.ListForListing(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponses(msgs))
}

// ListForSender handles GET /listings/:id/messages/:senderId.
//
// @Summary      List one sender's messages about a listing
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Listing id"
// @Param        senderId  path      string  true  "Sender user id"
// @Success      200       {array}   messageResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /listings/{id}/messages/{senderId} [get]
func (h *MessageHandler) ListForSender(c echo.Context) error {
	msgs, err := h.service.ListForSender(c.Request().Context(), ctxActor(c), c.Param("id"), c.Param("senderId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponses(msgs))
}

// Create handles POST /listings/:id/messages. The caller is the sender.
//
// @Summary      Send a message about a listing
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Listing id"
// @Param        body  body      createMessageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /listings/{id}/messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Create(c.Request().Context(), ctxActor(c), c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}
