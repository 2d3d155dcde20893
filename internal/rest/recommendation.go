package rest

import (
	"context"
	"net/http"
	"time"

	"eduPlatformReco/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		timeout  time.Duration
	}

	RecommendationService interface {
		RecommendFor(ctx context.Context, learnerID int) (domain.RecommendationResult, error)
		SimilarLearners(ctx context.Context, learnerID, k int) (domain.SimilarLearners, error)
		Range(ctx context.Context) (domain.LearnerRange, error)
		Matrix(ctx context.Context, dataset string) (domain.SimilarityMatrixView, error)
	}

	LearnerRequest struct {
		LearnerID int `param:"learner_id"`
	}

	SimilarRequest struct {
		LearnerID int `param:"learner_id"`
		K         int `query:"k" validate:"omitempty,min=1,max=50"`
	}

	MatrixRequest struct {
		Dataset string `param:"dataset" validate:"required,max=64"`
	}
)

func NewRecommendationHandler(service RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  service,
		timeout:  10 * time.Second,
	}
}

// GET /api/v1/recommendations/:learner_id
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req LearnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "learner_id must be an integer"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.service.RecommendFor(ctx, req.LearnerID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/learners/:learner_id/similar?k=3
func (h *RecommendationHandler) Similar(c echo.Context) error {
	var req SimilarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "learner_id and k must be integers"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	similar, err := h.service.SimilarLearners(ctx, req.LearnerID, req.K)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(similar))
}

// GET /api/v1/learners/range
func (h *RecommendationHandler) Range(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	r, err := h.service.Range(ctx)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(r))
}

// GET /api/v1/similarity/:dataset
func (h *RecommendationHandler) Matrix(c echo.Context) error {
	var req MatrixRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.service.Matrix(ctx, req.Dataset)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

// GET /healthz
func (h *RecommendationHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
	defer cancel()

	if _, err := h.service.Range(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "reason": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
