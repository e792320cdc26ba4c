package rest

import (
	"net/http"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/contracts"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
)

// SocialHandlers - избранное и отзывы
type SocialHandlers struct {
	addFavouriteUC    usecases_port.AddFavouriteUseCasePort
	removeFavouriteUC usecases_port.RemoveFavouriteUseCasePort
	listFavouritesUC  usecases_port.ListFavouritesUseCasePort
	topFavouritesUC   usecases_port.TopFavouritesUseCasePort
	createReviewUC    usecases_port.CreateReviewUseCasePort
	listingReviewsUC  usecases_port.ListListingReviewsUseCasePort
	myReviewsUC       usecases_port.ListMyReviewsUseCasePort
}

func NewSocialHandlers(addFavouriteUC usecases_port.AddFavouriteUseCasePort,
	removeFavouriteUC usecases_port.RemoveFavouriteUseCasePort,
	listFavouritesUC usecases_port.ListFavouritesUseCasePort,
	topFavouritesUC usecases_port.TopFavouritesUseCasePort,
	createReviewUC usecases_port.CreateReviewUseCasePort,
	listingReviewsUC usecases_port.ListListingReviewsUseCasePort,
	myReviewsUC usecases_port.ListMyReviewsUseCasePort) *SocialHandlers {
	return &SocialHandlers{
		addFavouriteUC:    addFavouriteUC,
		removeFavouriteUC: removeFavouriteUC,
		listFavouritesUC:  listFavouritesUC,
		topFavouritesUC:   topFavouritesUC,
		createReviewUC:    createReviewUC,
		listingReviewsUC:  listingReviewsUC,
		myReviewsUC:       myReviewsUC,
	}
}

// AddFavourite обрабатывает POST /api/v1/listings/{listingID}/favourite
func (h *SocialHandlers) AddFavourite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddFavourite"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	if err := h.addFavouriteUC.Execute(r.Context(), principal, listingID); err != nil {
		respondWithError(w, logger, err, "Failed to add to favourites")
		return
	}
	RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RemoveFavourite обрабатывает DELETE /api/v1/listings/{listingID}/favourite
func (h *SocialHandlers) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFavourite"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	if err := h.removeFavouriteUC.Execute(r.Context(), principal, listingID); err != nil {
		respondWithError(w, logger, err, "Failed to remove from favourites")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFavourites обрабатывает GET /api/v1/favourites
func (h *SocialHandlers) ListFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListFavourites"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	favourites, err := h.listFavouritesUC.Execute(r.Context(), principal)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve favourites")
		return
	}

	out := make([]FavouriteResponse, len(favourites))
	for i, f := range favourites {
		out[i] = FavouriteResponse{Listing: toListingResponse(f.Listing), FavouritedAt: f.CreatedAt}
	}
	RespondWithJSON(w, http.StatusOK, out)
}

// TopFavourites обрабатывает GET /api/v1/listings/top-favourites
func (h *SocialHandlers) TopFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "TopFavourites"})

	top, err := h.topFavouritesUC.Execute(r.Context())
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve top favourites")
		return
	}

	out := make([]TopFavouriteResponse, len(top))
	for i, t := range top {
		out[i] = TopFavouriteResponse{Listing: toListingResponse(t.Listing), FavouritesCount: t.Count}
	}
	RespondWithJSON(w, http.StatusOK, out)
}

// CreateReview обрабатывает POST /api/v1/listings/{listingID}/reviews
func (h *SocialHandlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateReview"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	var req CreateReviewRequest
	if err := decodeBody(r, contracts.CreateReviewV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	review, err := h.createReviewUC.Execute(r.Context(), principal, listingID, req.Rating, req.Comment)
	if err != nil {
		respondWithError(w, logger, err, "Failed to create review")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toReviewResponse(*review))
}

// ListingReviews обрабатывает GET /api/v1/listings/{listingID}/reviews
func (h *SocialHandlers) ListingReviews(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListingReviews"})

	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	reviews, summary, err := h.listingReviewsUC.Execute(r.Context(), listingID)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve reviews")
		return
	}
	RespondWithJSON(w, http.StatusOK, ListingReviewsResponse{
		Rating:  toRatingResponse(summary),
		Reviews: toReviewResponses(reviews),
	})
}

// MyReviews обрабатывает GET /api/v1/reviews/me
func (h *SocialHandlers) MyReviews(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "MyReviews"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	reviews, err := h.myReviewsUC.Execute(r.Context(), principal)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve reviews")
		return
	}
	RespondWithJSON(w, http.StatusOK, toReviewResponses(reviews))
}
