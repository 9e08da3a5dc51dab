package httpserver

import (
	"context"
	"errors"
	"net/http"

	"bizhub/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const storeCtxKey ctxKey = "store"

// storeMiddleware resolves :storeId into a domain.Store on the request context.
func storeMiddleware(repo storeGetter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("storeId")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "storeId is required"})
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "storeId must be a UUID"})
			return
		}
		store, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Store not found"})
				return
			}
			logger.Error("resolve store", zap.String("store_id", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load store"})
			return
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), storeCtxKey, store))
		c.Next()
	}
}

func storeFrom(c *gin.Context) *domain.Store {
	s, _ := c.Request.Context().Value(storeCtxKey).(*domain.Store)
	return s
}

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
