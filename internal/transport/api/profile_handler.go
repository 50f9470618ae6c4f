package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-finapi/internal/domain"
)

type ProfileHandler struct {
	userService UserServicer
}

func NewProfileHandler(userService UserServicer) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
	}
}

// Show GET RouteGroup + ProfileRoute. Профиль текущего юзера.
func (h *ProfileHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.GetProfile(ctx, currentUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, err).SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
