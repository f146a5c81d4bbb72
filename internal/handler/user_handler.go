package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/eaglebank/signup-service/internal/repository"
	"github.com/eaglebank/signup-service/shared/cqrs"
	"github.com/eaglebank/signup-service/shared/logger"
	"github.com/eaglebank/signup-service/shared/middleware"
	"github.com/eaglebank/signup-service/shared/models"
	"github.com/gin-gonic/gin"
)

// UserQuerier defines the read-side operation used by UserHandler.
type UserQuerier interface {
	GetProvisionedUser(ctx context.Context, q cqrs.GetProvisionedUserQuery) (*models.ProvisionedUserView, error)
}

// UserHandler lets operators confirm what a signup left in the store.
type UserHandler struct {
	queries UserQuerier
}

func NewUserHandler(queries UserQuerier) *UserHandler {
	return &UserHandler{queries: queries}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")

	view, err := h.queries.GetProvisionedUser(c.Request.Context(), cqrs.GetProvisionedUserQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.From(c.Request.Context()).Error("failed to read provisioned user", logger.UserID(userID), logger.Err(err))
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, view)
}
