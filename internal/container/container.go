package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/diegoizac/christianitatis-sub000/internal/config"
	"github.com/diegoizac/christianitatis-sub000/internal/helpers"
	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

// Container holds all application dependencies, constructed once at startup
// and handed to whatever needs them.
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	UserService         *services.UserService
	EventService        *services.EventService
	NotificationService *services.NotificationService
	ContactService      *services.ContactService
	FavouriteService    *services.FavouriteService
}

func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	mongoRepo := models.MongodbNewRepo(mongoDBClient)

	var mailer *helpers.Mailer
	if cfg.SMTPConfigured() {
		mailer = helpers.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		logger.Warn("SMTP not configured, contact messages will be stored but not forwarded")
	}

	notifier := services.NewNotifier(supa, logger)

	userService := services.NewUserService(supa)
	eventService := services.NewEventService(supa, supa, notifier, cld, logger)
	notificationService := services.NewNotificationService(supa)
	contactService := services.NewContactService(supa, mailer, cfg.ContactInbox, logger)
	favouriteService := services.NewFavouriteService(mongoRepo)

	return &Container{
		Logger:              logger,
		Cloudinary:          cld,
		SupabaseClient:      supabaseClient,
		MongoDBClient:       mongoDBClient,
		UserService:         userService,
		EventService:        eventService,
		NotificationService: notificationService,
		ContactService:      contactService,
		FavouriteService:    favouriteService,
	}
}
