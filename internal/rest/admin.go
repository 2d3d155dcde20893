package rest

import (
	"context"
	"net/http"
	"time"

	"eduPlatformReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AdminHandler struct {
		service DatasetAdminService
		timeout time.Duration
	}

	DatasetAdminService interface {
		Reload(ctx context.Context) error
		Version() int64
	}

	ReloadResponse struct {
		Version int64 `json:"version"`
	}
)

func NewAdminHandler(service DatasetAdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
		timeout: 2 * time.Minute,
	}
}

// POST /api/v1/admin/datasets/reload
func (h *AdminHandler) Reload(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.service.Reload(ctx); err != nil {
		logger.Error("Manual dataset reload failed", "error", err, "user_id", c.Get("user_id"))
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	logger.Info("Manual dataset reload finished", "user_id", c.Get("user_id"), "version", h.service.Version())
	return c.JSON(http.StatusOK, fres.Response.StatusOK(ReloadResponse{Version: h.service.Version()}))
}
