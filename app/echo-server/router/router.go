package router

import (
	"eduPlatformReco/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	api.GET("/recommendations/:learner_id", rest.Instrumented("recommendation", handler.Recommend))

	learners := api.Group("/learners")
	learners.GET("/range", rest.Instrumented("learner_range", handler.Range))
	learners.GET("/:learner_id/similar", rest.Instrumented("similar_learners", handler.Similar))

	api.GET("/similarity/:dataset", rest.Instrumented("similarity_matrix", handler.Matrix))
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)
	admin.POST("/datasets/reload", handler.Reload)
}
