package server

import (
	"context"
	"encoding/xml"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	"github.com/ovenly/pizza-agent/agent/ledger"
)

// AgentService is the slice of the orchestrator the transports need.
type AgentService interface {
	HandleTurn(ctx context.Context, req contractx.TurnRequest) (contractx.TurnReply, error)
	ClearSession(ctx context.Context, userID string) error
}

// MessageDeduper remembers processed webhook message ids so redeliveries
// replay the original reply instead of running the agent again. Claim must
// be atomic: exactly one delivery of a given id wins it.
type MessageDeduper interface {
	Claim(ctx context.Context, messageSID, userID string) (claimed bool, storedReply string, err error)
	SetReply(ctx context.Context, messageSID, reply string) error
}

// WhatsAppSender pushes an outbound message; nil disables sending, which
// is fine because the webhook response itself carries the reply.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

// OrderHistory lists a user's past orders, most recent first.
type OrderHistory interface {
	OrdersByUser(ctx context.Context, userID string, limit int) ([]*ledger.Order, error)
}

type Handler struct {
	agent  AgentService
	dedup  MessageDeduper
	sender WhatsAppSender
	orders OrderHistory
}

func NewHandler(agent AgentService, dedup MessageDeduper, sender WhatsAppSender, orders OrderHistory) *Handler {
	return &Handler{agent: agent, dedup: dedup, sender: sender, orders: orders}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chatbot", h.Chat)
	e.DELETE("/chatbot/session/:user_id", h.ClearSession)
	e.GET("/order/user/:user_id/history", h.OrderHistoryByUser)
	e.POST("/whatsapp/webhook", h.WhatsAppWebhook)
	e.GET("/healthz", h.Health)
}

type chatRequest struct {
	Message             string           `json:"message"`
	UserID              string           `json:"user_id"`
	ConversationHistory []contractx.Turn `json:"conversation_history,omitempty"`
}

type chatResponse struct {
	Reply     string  `json:"reply"`
	ToolUsed  *string `json:"tool_used"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
}

// Chat is the main agent endpoint.
func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		req.UserID = "guest"
	}

	reply, err := h.agent.HandleTurn(c.Request().Context(), contractx.TurnRequest{
		UserID:  req.UserID,
		Message: req.Message,
		History: req.ConversationHistory,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, chatResponse{
		Reply:     reply.Reply,
		ToolUsed:  reply.ToolUsed,
		Status:    string(reply.Status),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ClearSession drops a user's stored conversation history.
func (h *Handler) ClearSession(c echo.Context) error {
	userID := c.Param("user_id")
	if err := h.agent.ClearSession(c.Request().Context(), userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Session cleared for user " + userID,
	})
}

const defaultHistoryLimit = 10

// OrderHistoryByUser returns a user's past orders.
func (h *Handler) OrderHistoryByUser(c echo.Context) error {
	userID := c.Param("user_id")

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	orders, err := h.orders.OrdersByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id": userID,
		"orders":  orders,
		"count":   len(orders),
	})
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WhatsAppWebhook receives inbound Twilio messages. Identical MessageSid
// deliveries are answered with the first reply; the agent runs exactly once
// per message.
func (h *Handler) WhatsAppWebhook(c echo.Context) error {
	from := c.FormValue("From")
	body := c.FormValue("Body")
	messageSID := c.FormValue("MessageSid")
	if from == "" || body == "" || messageSID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "From, Body and MessageSid are required")
	}

	ctx := c.Request().Context()
	userID := whatsAppUserID(from)

	// Claim the message id before running the agent so concurrent
	// redeliveries cannot each start a turn.
	if h.dedup != nil {
		claimed, storedReply, err := h.dedup.Claim(ctx, messageSID, userID)
		if err != nil {
			log.Error().Err(err).Str("message_sid", messageSID).Msg("dedup claim failed")
		} else if !claimed {
			if storedReply == "" {
				// The winning delivery is still in flight.
				log.Info().Str("message_sid", messageSID).Msg("duplicate webhook delivery while handling")
				return h.twiml(c, "I'm still working on your message, one moment!")
			}
			log.Info().Str("message_sid", messageSID).Msg("duplicate webhook delivery, replaying reply")
			return h.twiml(c, storedReply)
		}
	}

	var replyText string
	reply, err := h.agent.HandleTurn(ctx, contractx.TurnRequest{UserID: userID, Message: body})
	if err != nil {
		// Twilio retries on non-2xx; answer with an apology instead.
		log.Error().Err(err).Str("user_id", userID).Msg("webhook turn failed")
		replyText = "I'm experiencing technical difficulties. Please try again in a moment."
	} else {
		replyText = reply.Reply
	}

	if h.dedup != nil {
		if err := h.dedup.SetReply(ctx, messageSID, replyText); err != nil {
			log.Error().Err(err).Str("message_sid", messageSID).Msg("dedup reply store failed")
		}
	}

	if err != nil {
		return h.twiml(c, replyText)
	}

	if h.sender != nil {
		if err := h.sender.SendWhatsApp(ctx, from, replyText); err != nil {
			log.Error().Err(err).Str("to", from).Msg("whatsapp send failed")
		}
	}

	return h.twiml(c, replyText)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) twiml(c echo.Context, message string) error {
	payload, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "application/xml", append([]byte(xml.Header), payload...))
}

// whatsAppUserID maps a sender address to a stable user id.
func whatsAppUserID(from string) string {
	return "wa:" + strings.TrimPrefix(from, "whatsapp:")
}
