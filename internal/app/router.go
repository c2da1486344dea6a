package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. Signup/login sit behind the per-IP rate
// limiter; everything under /api requires a bearer token.
func NewRouter(a *App) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Google-Token"},
		AllowCredentials: true,
	}))

	rl := NewRateLimiter(5, 10)
	auth := r.Group("/auth", rl.Middleware())
	{
		auth.POST("/signup", a.SignupHandler)
		auth.POST("/login", a.LoginHandler)
	}

	// OAuth2 callback must stay outside the auth middleware
	r.GET("/oauth2callback", a.GoogleOAuth2CallbackHandler)

	api := r.Group("/api", AuthMiddleware(a.Cfg.JWTSecret))
	{
		api.GET("/me", a.MeHandler)

		api.GET("/appointments", a.ListAppointmentsHandler)
		api.POST("/appointments", a.CreateAppointmentHandler)
		api.GET("/appointments/upcoming", a.UpcomingAppointmentsHandler)
		api.GET("/appointments/:id", a.GetAppointmentHandler)
		api.PUT("/appointments/:id", a.UpdateAppointmentHandler)
		api.DELETE("/appointments/:id", a.DeleteAppointmentHandler)

		api.GET("/schedules", a.ListSchedulesHandler)
		api.POST("/schedules", a.UpsertScheduleHandler)
		api.DELETE("/schedules/:id", a.DeleteScheduleHandler)

		api.GET("/calendar/month", a.MonthViewHandler)

		google := api.Group("/integrations/google")
		{
			google.GET("/auth", a.GoogleAuthHandler)
			google.GET("/events", a.GoogleEventsHandler)
		}
	}

	return r
}
