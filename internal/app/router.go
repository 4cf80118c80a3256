package app

import (
	"senior_living_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// Care Navigator 测评
		quizzes := api.Group("/quizzes/:slug")
		{
			quizzes.GET("", c.quiz.GetQuiz)
			quizzes.POST("/score", c.quiz.Score)
			quizzes.POST("/sessions", c.quiz.StartSession)
		}

		sessions := api.Group("/quiz-sessions/:id")
		{
			sessions.GET("", c.quiz.GetSession)
			sessions.PUT("/answers", c.quiz.RecordAnswer)
			sessions.POST("/next", c.quiz.Next)
			sessions.POST("/back", c.quiz.Back)
			sessions.POST("/submit", c.quiz.Submit)
		}

		api.GET("/communities/recommendations", c.community.Recommendations)
		api.GET("/landing-pages/:slug", c.landingPage.GetLandingPage)
	}
}
