package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	token_adapter "github.com/louissosthenes9/campus-stay-api/internal/adapters/jwt"
	"github.com/louissosthenes9/campus-stay-api/internal/adapters/notifier"
	postgres_adapter "github.com/louissosthenes9/campus-stay-api/internal/adapters/postgres"
	rabbitmq_adapter "github.com/louissosthenes9/campus-stay-api/internal/adapters/rabbitmq"
	"github.com/louissosthenes9/campus-stay-api/internal/adapters/rest"
	"github.com/louissosthenes9/campus-stay-api/internal/adapters/session"
	"github.com/louissosthenes9/campus-stay-api/internal/configs"
	"github.com/louissosthenes9/campus-stay-api/internal/constants"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/usecase"
	"github.com/louissosthenes9/campus-stay-api/pkg/postgres"
	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_common"
	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

// App - HTTP API: листинги, поиск по близости, обращения, избранное и отзывы
type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	notifier     *notifier.SSENotifier
	sessionStore *session.MemoryStore

	connManager   *rabbitmq_common.ConnectionManager
	emailProducer *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	baseLogger, fluentClient, err := newBaseLogger(appConfig, "api")
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}
	// при ошибке сборки освобождаем то, что уже успели открыть
	ok := false
	defer func() {
		if !ok {
			application.closeResources()
		}
	}()

	// --- 2. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL:    appConfig.Database.URL,
		MaxConns:       appConfig.Database.MaxConns,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	application.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	repos, err := newRepositories(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres repositories", err, nil)
		return nil, err
	}

	tokenService, err := token_adapter.NewTokenService(appConfig.JWT.Secret)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		return nil, err
	}

	var mailer port.MailerPort = rabbitmq_adapter.LogMailer{}
	if appConfig.RabbitMQ.Enabled {
		mailer, err = application.initMailer(baseLogger)
		if err != nil {
			appLogger.Error("Failed to initialize RabbitMQ mailer", err, nil)
			return nil, err
		}
	} else {
		appLogger.Warn("RabbitMQ disabled, verification emails will only be logged", nil)
	}

	sseNotifier := notifier.NewSSENotifier(baseLogger)
	sessionStore := session.NewMemoryStore(appConfig.Session.TTL, baseLogger)
	application.notifier = sseNotifier
	application.sessionStore = sessionStore
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 3. USE CASES ---
	tokens := usecase.TokenSettings{
		AccessTTL:  appConfig.JWT.AccessTTL,
		RefreshTTL: appConfig.JWT.RefreshTTL,
		VerifyTTL:  appConfig.JWT.VerifyTTL,
	}

	registerUC := usecase.NewRegisterUserUseCase(repos.users, repos.universities, tokenService, mailer, tokens, appConfig.Email.VerifyURL)
	loginUC := usecase.NewLoginUserUseCase(repos.users, tokenService, tokens)
	refreshUC := usecase.NewRefreshTokenUseCase(repos.users, tokenService, tokens)
	verifyEmailUC := usecase.NewVerifyEmailUseCase(repos.users, tokenService)
	authenticateUC := usecase.NewAuthenticateUseCase(tokenService)
	getMeUC := usecase.NewGetMeUseCase(repos.users)

	searchUC := usecase.NewSearchListingsUseCase(repos.listings, repos.geoIndex, repos.universities)
	getListingUC := usecase.NewGetListingUseCase(repos.listings)
	trackViewUC := usecase.NewTrackListingViewUseCase(repos.listings, sessionStore)
	recentlyViewedUC := usecase.NewListRecentlyViewedUseCase(repos.listings, sessionStore)
	createListingUC := usecase.NewCreateListingUseCase(repos.listings, repos.amenities, repos.media)
	updateListingUC := usecase.NewUpdateListingUseCase(repos.listings, repos.amenities, repos.media)
	deleteListingUC := usecase.NewDeleteListingUseCase(repos.listings)
	addMediaUC := usecase.NewAddListingMediaUseCase(repos.listings, repos.media)
	removeMediaUC := usecase.NewRemoveListingMediaUseCase(repos.listings, repos.media)
	attachPlaceUC := usecase.NewAttachNearbyPlaceUseCase(repos.listings, repos.places)
	listAmenitiesUC := usecase.NewListAmenitiesUseCase(repos.amenities)

	nearAnchorUC := usecase.NewSearchNearAnchorUseCase(repos.geoIndex, repos.universities)
	nearMyUniversityUC := usecase.NewSearchNearMyUniversityUseCase(repos.geoIndex, repos.users, repos.universities)
	categoriesUC := usecase.NewGetMarketingCategoriesUseCase(repos.listings, repos.geoIndex, repos.users, repos.universities)

	createEnquiryUC := usecase.NewCreateEnquiryUseCase(repos.enquiries, repos.listings, sseNotifier)
	listEnquiriesUC := usecase.NewListEnquiriesUseCase(repos.enquiries)
	getEnquiryUC := usecase.NewGetEnquiryUseCase(repos.enquiries)
	cancelEnquiryUC := usecase.NewCancelEnquiryUseCase(repos.enquiries, sseNotifier)
	resolveEnquiryUC := usecase.NewResolveEnquiryUseCase(repos.enquiries, sseNotifier)
	postMessageUC := usecase.NewPostMessageUseCase(repos.enquiries, sseNotifier)
	listMessagesUC := usecase.NewListMessagesUseCase(repos.enquiries)
	markReadUC := usecase.NewMarkMessagesReadUseCase(repos.enquiries)

	addFavouriteUC := usecase.NewAddFavouriteUseCase(repos.favourites, repos.listings)
	removeFavouriteUC := usecase.NewRemoveFavouriteUseCase(repos.favourites)
	listFavouritesUC := usecase.NewListFavouritesUseCase(repos.favourites, repos.listings)
	topFavouritesUC := usecase.NewTopFavouritesUseCase(repos.favourites, repos.listings)
	createReviewUC := usecase.NewCreateReviewUseCase(repos.reviews, repos.listings)
	listingReviewsUC := usecase.NewListListingReviewsUseCase(repos.reviews, repos.listings)
	myReviewsUC := usecase.NewListMyReviewsUseCase(repos.reviews)

	createUniversityUC := usecase.NewCreateUniversityUseCase(repos.universities)
	updateUniversityUC := usecase.NewUpdateUniversityUseCase(repos.universities)
	deleteUniversityUC := usecase.NewDeleteUniversityUseCase(repos.universities)
	getUniversityUC := usecase.NewGetUniversityUseCase(repos.universities)
	listUniversitiesUC := usecase.NewListUniversitiesUseCase(repos.universities)
	createCampusUC := usecase.NewCreateCampusUseCase(repos.universities)
	updateCampusUC := usecase.NewUpdateCampusUseCase(repos.universities)
	deleteCampusUC := usecase.NewDeleteCampusUseCase(repos.universities)
	createPlaceUC := usecase.NewCreateNearbyPlaceUseCase(repos.places)
	listPlacesUC := usecase.NewListNearbyPlacesUseCase(repos.places)

	appLogger.Info("All use cases initialized.", nil)

	// --- 4. ВХОДЯЩИЕ АДАПТЕРЫ ---
	handlers := rest.Handlers{
		Auth: rest.NewAuthHandlers(registerUC, loginUC, refreshUC, verifyEmailUC, getMeUC),
		Listings: rest.NewListingHandlers(searchUC, getListingUC, trackViewUC, recentlyViewedUC,
			createListingUC, updateListingUC, deleteListingUC, addMediaUC, removeMediaUC, attachPlaceUC,
			listAmenitiesUC, appConfig.Search.DefaultRadiusKm),
		Proximity: rest.NewProximityHandlers(nearAnchorUC, nearMyUniversityUC, categoriesUC, appConfig.Search.DefaultRadiusKm),
		Enquiries: rest.NewEnquiryHandlers(createEnquiryUC, listEnquiriesUC, getEnquiryUC, cancelEnquiryUC,
			resolveEnquiryUC, postMessageUC, listMessagesUC, markReadUC, sseNotifier),
		Social: rest.NewSocialHandlers(addFavouriteUC, removeFavouriteUC, listFavouritesUC, topFavouritesUC,
			createReviewUC, listingReviewsUC, myReviewsUC),
		Universities: rest.NewUniversityHandlers(createUniversityUC, updateUniversityUC, deleteUniversityUC,
			getUniversityUC, listUniversitiesUC, createCampusUC, updateCampusUC, deleteCampusUC,
			createPlaceUC, listPlacesUC),
	}
	authMiddleware := rest.NewAuthMiddleware(authenticateUC, appConfig.Session.TTL)

	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
	}, handlers, authMiddleware, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	ok = true
	return application, nil
}

// initMailer поднимает издателя в обменник уведомлений
func (a *App) initMailer(baseLogger port.LoggerPort) (port.MailerPort, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             constants.ExchangeNotifications,
		ExchangeType:             constants.ExchangeNotificationsType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,

		Logger: rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create email producer: %w", err)
	}
	a.emailProducer = producer
	a.logger.Info("RabbitMQ email producer initialized.", nil)

	return rabbitmq_adapter.NewMailerAdapter(producer, constants.RoutingKeyVerificationEmail)
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := a.apiServer.Stop(stopCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
			cancel()
		}

		// фоновые задачи завершаются по отмене appCtx
		cancelApp()
		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	wg.Add(2)
	go func() {
		defer wg.Done()
		a.notifier.Run(appCtx)
	}()
	go func() {
		defer wg.Done()
		a.sessionStore.RunJanitor(appCtx, a.config.Session.CleanupInterval)
	}()

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return fmt.Errorf("http server: %w", err)
	}
}

func (a *App) closeResources() {
	if a.emailProducer != nil {
		if err := a.emailProducer.Close(); err != nil {
			a.logger.Error("Error closing email producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)
	closeFluent(a.fluentClient)
}

// repositories - все postgres-адаптеры одного пула
type repositories struct {
	listings     *postgres_adapter.ListingRepository
	geoIndex     *postgres_adapter.GeoIndex
	media        *postgres_adapter.MediaRepository
	amenities    *postgres_adapter.AmenityRepository
	places       *postgres_adapter.NearbyPlaceRepository
	universities *postgres_adapter.UniversityRepository
	users        *postgres_adapter.UserRepository
	favourites   *postgres_adapter.FavouriteRepository
	reviews      *postgres_adapter.ReviewRepository
	enquiries    *postgres_adapter.EnquiryRepository
}

func newRepositories(pool *pgxpool.Pool) (*repositories, error) {
	var (
		r   repositories
		err error
	)
	if r.listings, err = postgres_adapter.NewListingRepository(pool); err != nil {
		return nil, fmt.Errorf("listing repository: %w", err)
	}
	if r.geoIndex, err = postgres_adapter.NewGeoIndex(pool); err != nil {
		return nil, fmt.Errorf("geo index: %w", err)
	}
	if r.media, err = postgres_adapter.NewMediaRepository(pool); err != nil {
		return nil, fmt.Errorf("media repository: %w", err)
	}
	if r.amenities, err = postgres_adapter.NewAmenityRepository(pool); err != nil {
		return nil, fmt.Errorf("amenity repository: %w", err)
	}
	if r.places, err = postgres_adapter.NewNearbyPlaceRepository(pool); err != nil {
		return nil, fmt.Errorf("nearby place repository: %w", err)
	}
	if r.universities, err = postgres_adapter.NewUniversityRepository(pool); err != nil {
		return nil, fmt.Errorf("university repository: %w", err)
	}
	if r.users, err = postgres_adapter.NewUserRepository(pool); err != nil {
		return nil, fmt.Errorf("user repository: %w", err)
	}
	if r.favourites, err = postgres_adapter.NewFavouriteRepository(pool); err != nil {
		return nil, fmt.Errorf("favourite repository: %w", err)
	}
	if r.reviews, err = postgres_adapter.NewReviewRepository(pool); err != nil {
		return nil, fmt.Errorf("review repository: %w", err)
	}
	if r.enquiries, err = postgres_adapter.NewEnquiryRepository(pool); err != nil {
		return nil, fmt.Errorf("enquiry repository: %w", err)
	}
	return &r, nil
}
