package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dream-match/internal/service"
)

// TrustHandler mantiene dependencias para los endpoints de confianza.
type TrustHandler struct {
	logger *zap.Logger
	svc    *service.MatchService
}

func NewTrustHandler(logger *zap.Logger, svc *service.MatchService) *TrustHandler {
	return &TrustHandler{logger: logger, svc: svc}
}

// GetTrust maneja GET /trust/:user_id y devuelve el snapshot por servicio,
// el composite y el vector derivado.
func (h *TrustHandler) GetTrust(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	report, err := h.svc.TrustSnapshot(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("trust snapshot failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch trust"})
		return
	}

	c.JSON(http.StatusOK, report)
}
