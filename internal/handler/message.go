package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/events"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/model"
)

type MessageStore interface {
	List(ctx context.Context) ([]model.Message, error)
	GetByID(ctx context.Context, id uint64) (model.Message, error)
	Create(ctx context.Context, m model.Message) (model.Message, error)
	Update(ctx context.Context, id uint64, patch model.MessagePatch) error
	Delete(ctx context.Context, id uint64) error
}

// publishTimeout bounds the broker round trip after a message is stored.
const publishTimeout = 3 * time.Second

// MessageHandler runs the contact inbox.  Visitors post messages; admins
// triage them.
type MessageHandler struct {
	messages  MessageStore
	publisher events.Publisher
	log       logging.Logger
}

func NewMessageHandler(messages MessageStore, publisher events.Publisher, log logging.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, publisher: publisher, log: log}
}

// Create stores a visitor's message and announces it on the broker.  A
// broker failure does not fail the request.
func (h *MessageHandler) Create(c echo.Context) error {
	var req model.NewMessage
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.messages.Create(ctx, req.Msg())
	if err != nil {
		return respondError(c, h.log, err)
	}

	pctx, pcancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
	defer pcancel()
	err = h.publisher.PublishMessageReceived(pctx, events.MessageReceived{
		MessageID:  m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Subject:    m.Subject,
		Category:   m.Category,
		ReceivedAt: m.CreatedAt,
	})
	if err != nil {
		// the message is stored; only the notification is lost
		h.log.Warn(pctx, "event not published", "message_id", m.ID, "err", err)
	}

	return c.JSON(http.StatusCreated, m)
}

// Update changes the read, starred and category flags.
func (h *MessageHandler) Update(c echo.Context) error {
	return updateRow(c, h.log, h.messages.GetByID, h.messages.Update)
}

func (h *MessageHandler) Delete(c echo.Context) error {
	return deleteRow(c, h.log, h.messages.Delete)
}

func (h *MessageHandler) List(c echo.Context) error {
	return listRows(c, h.log, h.messages.List)
}
