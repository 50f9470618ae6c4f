package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-finapi/internal/transport/api/middlewares"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка
// утверждения типа - вернется uuid.Nil.
func getUserIDFromContext(c *gin.Context) uuid.UUID {
	value, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return uuid.Nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
