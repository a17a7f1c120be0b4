package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openstays/stay-booking/internal/audit"
	"github.com/openstays/stay-booking/internal/handlers"
	infraRepo "github.com/openstays/stay-booking/internal/infra/repository"
	"github.com/openstays/stay-booking/internal/middleware"
	"github.com/openstays/stay-booking/internal/models"
	"github.com/openstays/stay-booking/internal/session"
	"github.com/openstays/stay-booking/internal/storage"
	ucBooking "github.com/openstays/stay-booking/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	sessions *session.Store,
	uploads storage.Store,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	acceptBookingUC := ucBooking.NewAcceptBooking(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, sessions, auditDispatcher)
	propertyHandler := handlers.NewPropertyHandler(db, uploads, auditDispatcher)
	userHandler := handlers.NewUserHandler(db, uploads, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		acceptBookingUC,
		cancelBookingUC,
		getBookingUC,
		listBookingsUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/check", authHandler.Check)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/properties/search", propertyHandler.Search)
		api.GET("/properties/:id", propertyHandler.GetByID)

		// ------------------------------
		// SESSION REQUIRED
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/users/profile", userHandler.GetProfile)
			secured.PUT("/users/profile", userHandler.UpdateProfile)
			secured.POST("/users/profile-picture", userHandler.UploadProfilePicture)

			// Shared two-party booking access; the use case decides
			// whether this actor may see or cancel the booking.
			secured.GET("/bookings/:id", bookingHandler.GetByID)
			secured.PUT("/bookings/:id/cancel", bookingHandler.Cancel)

			// ------------------------------
			// TRAVELER ONLY
			// ------------------------------
			traveler := secured.Group("", middleware.RequireRole(models.RoleTraveler))
			{
				traveler.POST("/bookings", bookingHandler.Create)
				traveler.GET("/bookings/traveler", bookingHandler.ListForTraveler)

				traveler.POST("/users/favorites", userHandler.AddFavorite)
				traveler.DELETE("/users/favorites/:propertyId", userHandler.RemoveFavorite)
				traveler.GET("/users/favorites", userHandler.ListFavorites)
			}

			// ------------------------------
			// OWNER ONLY
			// ------------------------------
			owner := secured.Group("", middleware.RequireRole(models.RoleOwner))
			{
				owner.POST("/properties", propertyHandler.Create)
				owner.POST("/properties/upload-images", propertyHandler.UploadImages)
				owner.PUT("/properties/:id", propertyHandler.Update)
				owner.DELETE("/properties/:id", propertyHandler.Delete)
				owner.GET("/properties/owner/my-properties", propertyHandler.ListMine)

				owner.GET("/bookings/owner", bookingHandler.ListForOwner)
				owner.PUT("/bookings/:id/accept", bookingHandler.Accept)
			}
		}
	}
}
