package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/louissosthenes9/campus-stay-api/internal/constants"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// Handlers - все группы обработчиков API
type Handlers struct {
	Auth         *AuthHandlers
	Listings     *ListingHandlers
	Proximity    *ProximityHandlers
	Enquiries    *EnquiryHandlers
	Social       *SocialHandlers
	Universities *UniversityHandlers
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает маршруты /api/v1
func NewRouter(cfg ServerConfig, h Handlers, authMW *AuthMiddleware, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constants.TraceIDHeader},
		ExposedHeaders:   []string{constants.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Публичные маршруты ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Get("/verify-email", h.Auth.VerifyEmail)
			r.With(authMW.Authenticate).Get("/me", h.Auth.Me)
		})

		r.Get("/amenities", h.Listings.ListAmenities)
		r.Get("/universities", h.Universities.ListUniversities)
		r.Get("/universities/{universityID}", h.Universities.GetUniversity)
		r.Get("/nearby-places", h.Universities.ListNearbyPlaces)

		// --- Листинги: анонимный доступ с необязательным токеном ---
		r.Group(func(r chi.Router) {
			r.Use(authMW.OptionalAuth)

			r.Get("/listings", h.Listings.SearchListings)
			r.Get("/listings/property-types", h.Listings.ListPropertyTypes)
			r.Get("/listings/near", h.Proximity.SearchNearAnchor)
			r.Get("/listings/categories", h.Proximity.Categories)
			r.Get("/listings/top-favourites", h.Social.TopFavourites)
			r.Get("/listings/{listingID}/reviews", h.Social.ListingReviews)

			r.With(authMW.Session).Get("/listings/recently-viewed", h.Listings.RecentlyViewed)
			r.With(authMW.Session).Get("/listings/{listingID}", h.Listings.GetListing)
		})

		// --- Приватные маршруты, права проверяются в use case ---
		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Get("/listings/near-my-university", h.Proximity.SearchNearMyUniversity)
			r.Post("/listings", h.Listings.CreateListing)
			r.Patch("/listings/{listingID}", h.Listings.UpdateListing)
			r.Delete("/listings/{listingID}", h.Listings.DeleteListing)
			r.Post("/listings/{listingID}/media", h.Listings.AddMedia)
			r.Delete("/listings/{listingID}/media/{mediaID}", h.Listings.RemoveMedia)
			r.Post("/listings/{listingID}/nearby-places", h.Listings.AttachNearbyPlace)
			r.Post("/listings/{listingID}/favourite", h.Social.AddFavourite)
			r.Delete("/listings/{listingID}/favourite", h.Social.RemoveFavourite)
			r.Post("/listings/{listingID}/reviews", h.Social.CreateReview)

			r.Get("/favourites", h.Social.ListFavourites)
			r.Get("/reviews/me", h.Social.MyReviews)

			r.Get("/enquiries", h.Enquiries.ListEnquiries)
			r.Post("/enquiries", h.Enquiries.CreateEnquiry)
			r.Get("/enquiries/stream", h.Enquiries.Subscribe)
			r.Get("/enquiries/{enquiryID}", h.Enquiries.GetEnquiry)
			r.Post("/enquiries/{enquiryID}/cancel", h.Enquiries.CancelEnquiry)
			r.Post("/enquiries/{enquiryID}/resolve", h.Enquiries.ResolveEnquiry)
			r.Get("/enquiries/{enquiryID}/messages", h.Enquiries.ListMessages)
			r.Post("/enquiries/{enquiryID}/messages", h.Enquiries.PostMessage)
			r.Post("/enquiries/{enquiryID}/read", h.Enquiries.MarkRead)

			r.Post("/universities", h.Universities.CreateUniversity)
			r.Put("/universities/{universityID}", h.Universities.UpdateUniversity)
			r.Delete("/universities/{universityID}", h.Universities.DeleteUniversity)
			r.Post("/universities/{universityID}/campuses", h.Universities.CreateCampus)
			r.Put("/universities/{universityID}/campuses/{campusID}", h.Universities.UpdateCampus)
			r.Delete("/universities/{universityID}/campuses/{campusID}", h.Universities.DeleteCampus)
			r.Post("/nearby-places", h.Universities.CreateNearbyPlace)
		})
	})

	return r
}

func NewServer(cfg ServerConfig, h Handlers, authMW *AuthMiddleware, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, h, authMW, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
