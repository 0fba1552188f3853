package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/diegoizac/christianitatis-sub000/internal/container"
	"github.com/diegoizac/christianitatis-sub000/internal/handlers"
	"github.com/diegoizac/christianitatis-sub000/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// Unknown fields in a payload are a client bug, reject them at bind time.
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://christianitatis.org"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "christianitatis-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.Signup(container.UserService))
		v1.POST("/login", handlers.Login(container.UserService))
		v1.POST("/logout", handlers.Logout())
		v1.POST("/contact", handlers.SubmitContact(container.ContactService))
	}

	// Event listing is public but widens for authenticated viewers.
	public := v1.Group("/")
	public.Use(middleware.OptionalAuth(container.UserService, container.Logger))
	{
		public.GET("/events", handlers.ListEvents(container.EventService))
		public.GET("/events/:id", handlers.GetEvent(container.EventService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Logger))

	protected.GET("/profile", handlers.Profile(container.UserService))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", handlers.CreateEvent(container.EventService))
		eventRoutes.PATCH("/:id", handlers.UpdateEvent(container.EventService))
		eventRoutes.POST("/:id/submit", handlers.SubmitEventForReview(container.EventService))
		eventRoutes.POST("/:id/cancel", handlers.CancelEvent(container.EventService))
	}

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("", handlers.ListNotifications(container.NotificationService))
		notificationRoutes.GET("/unread-count", handlers.UnreadNotificationCount(container.NotificationService))
		notificationRoutes.PATCH("/:id/read", handlers.MarkNotificationRead(container.NotificationService))
		notificationRoutes.POST("/read-all", handlers.MarkAllNotificationsRead(container.NotificationService))
	}

	favouriteRoutes := protected.Group("/favourites")
	{
		favouriteRoutes.POST("", handlers.SaveEvent(container.FavouriteService))
		favouriteRoutes.DELETE("/:event_id", handlers.UnsaveEvent(container.FavouriteService))
		favouriteRoutes.GET("", handlers.GetFavourites(container.FavouriteService))
	}

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RequireAdmin())
	{
		adminRoutes.GET("/events", handlers.ListEventsAdmin(container.EventService))
		adminRoutes.POST("/events/:id/approve", handlers.ApproveEvent(container.EventService))
		adminRoutes.POST("/events/:id/reject", handlers.RejectEvent(container.EventService))
		adminRoutes.GET("/contact", handlers.ListContactMessages(container.ContactService))
	}

	return r
}
