package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/eaglebank/signup-service/internal/command"
	"github.com/eaglebank/signup-service/shared/cqrs"
	"github.com/eaglebank/signup-service/shared/logger"
	"github.com/eaglebank/signup-service/shared/middleware"
	"github.com/eaglebank/signup-service/shared/models"
	"github.com/gin-gonic/gin"
)

// SignupProvisioner defines the write-side operation used by WebhookHandler.
type SignupProvisioner interface {
	ProvisionSignup(ctx context.Context, cmd cqrs.ProvisionSignupCommand) (*command.ProvisionResult, error)
}

// WebhookPayload is the envelope the auth provider posts for a new user.
// Table is only sent by database-trigger webhooks.
type WebhookPayload struct {
	Type   string              `json:"type" validate:"required"`
	Table  string              `json:"table,omitempty"`
	Record *models.SignupEvent `json:"record" validate:"required"`
}

const (
	insertEventType = "INSERT"
	usersTable      = "users"

	msgMethodNotAllowed = "Method Not Allowed"
	msgInvalidPayload   = "Invalid user data received in webhook"
)

type WebhookHandler struct {
	provisioner SignupProvisioner
	eventTypes  map[string]struct{}
}

func NewWebhookHandler(provisioner SignupProvisioner, eventTypes []string) *WebhookHandler {
	accepted := make(map[string]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		accepted[t] = struct{}{}
	}
	return &WebhookHandler{provisioner: provisioner, eventTypes: accepted}
}

// HandleSignup provisions the user carried by a signup webhook. The router already
// answers other methods with 405 through NoMethod; the method check here keeps the
// handler correct when mounted on its own.
func (h *WebhookHandler) HandleSignup(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.From(ctx)

	if c.Request.Method != http.MethodPost {
		respondWithProvisionError(c, command.ErrMethodNotAllowed)
		return
	}

	var payload WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Warn("unparseable signup webhook", logger.Err(err))
		respondWithProvisionError(c, command.ErrInvalidPayload)
		return
	}
	if validationErrors := middleware.ValidateRequest(payload); validationErrors != nil {
		log.Warn("invalid signup webhook", logger.String("details", middleware.Summarize(validationErrors)))
		respondWithProvisionError(c, command.ErrInvalidPayload)
		return
	}
	if !h.accepts(payload) {
		log.Warn("unexpected signup webhook event", logger.EventType(payload.Type), logger.String("table", payload.Table))
		respondWithProvisionError(c, command.ErrInvalidPayload)
		return
	}

	result, err := h.provisioner.ProvisionSignup(ctx, cqrs.ProvisionSignupCommand{
		UserID:   payload.Record.ID,
		Email:    payload.Record.Email,
		Metadata: payload.Record.Metadata,
	})
	if err != nil {
		respondWithProvisionError(c, err)
		return
	}

	middleware.RespondWithMessage(c, http.StatusOK, result.Message)
}

func (h *WebhookHandler) accepts(p WebhookPayload) bool {
	if _, ok := h.eventTypes[p.Type]; !ok {
		return false
	}
	if p.Type == insertEventType && p.Table != "" && p.Table != usersTable {
		return false
	}
	return true
}

func respondWithProvisionError(c *gin.Context, err error) {
	var perr *command.ProvisionError
	switch {
	case errors.Is(err, command.ErrMethodNotAllowed):
		middleware.RespondWithError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	case errors.Is(err, command.ErrInvalidPayload):
		middleware.RespondWithError(c, http.StatusInternalServerError, msgInvalidPayload)
	case errors.As(err, &perr) && errors.Is(err, command.ErrUserWriteFailed):
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create user record: "+perr.Cause.Error())
	case errors.As(err, &perr) && errors.Is(err, command.ErrProfileWriteFailed):
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create profile record: "+perr.Cause.Error())
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
