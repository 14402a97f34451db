package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palaver/internal/services"
	"palaver/internal/transport/httpdto"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns every other user with their latest message preview.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(users))
}
