package rest

import (
	"net/http"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/contracts"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
)

// ListingHandlers - каталог листингов и управление ими
type ListingHandlers struct {
	searchUC         usecases_port.SearchListingsUseCasePort
	getUC            usecases_port.GetListingUseCasePort
	trackViewUC      usecases_port.TrackListingViewUseCasePort
	recentlyViewedUC usecases_port.ListRecentlyViewedUseCasePort
	createUC         usecases_port.CreateListingUseCasePort
	updateUC         usecases_port.UpdateListingUseCasePort
	deleteUC         usecases_port.DeleteListingUseCasePort
	addMediaUC       usecases_port.AddListingMediaUseCasePort
	removeMediaUC    usecases_port.RemoveListingMediaUseCasePort
	attachPlaceUC    usecases_port.AttachNearbyPlaceUseCasePort
	listAmenitiesUC  usecases_port.ListAmenitiesUseCasePort
	defaultRadiusKm  float64
}

func NewListingHandlers(searchUC usecases_port.SearchListingsUseCasePort,
	getUC usecases_port.GetListingUseCasePort,
	trackViewUC usecases_port.TrackListingViewUseCasePort,
	recentlyViewedUC usecases_port.ListRecentlyViewedUseCasePort,
	createUC usecases_port.CreateListingUseCasePort,
	updateUC usecases_port.UpdateListingUseCasePort,
	deleteUC usecases_port.DeleteListingUseCasePort,
	addMediaUC usecases_port.AddListingMediaUseCasePort,
	removeMediaUC usecases_port.RemoveListingMediaUseCasePort,
	attachPlaceUC usecases_port.AttachNearbyPlaceUseCasePort,
	listAmenitiesUC usecases_port.ListAmenitiesUseCasePort,
	defaultRadiusKm float64) *ListingHandlers {
	return &ListingHandlers{
		searchUC:         searchUC,
		getUC:            getUC,
		trackViewUC:      trackViewUC,
		recentlyViewedUC: recentlyViewedUC,
		createUC:         createUC,
		updateUC:         updateUC,
		deleteUC:         deleteUC,
		addMediaUC:       addMediaUC,
		removeMediaUC:    removeMediaUC,
		attachPlaceUC:    attachPlaceUC,
		listAmenitiesUC:  listAmenitiesUC,
		defaultRadiusKm:  defaultRadiusKm,
	}
}

// SearchListings обрабатывает GET /api/v1/listings
func (h *ListingHandlers) SearchListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchListings"})

	q := newQueryParser(r.URL.Query())
	filters := q.ListingFilters()
	filters.UniversityID = q.UUID("university_id")
	filters.RadiusKm = q.Radius(h.defaultRadiusKm)
	page := q.Pagination()
	if err := q.err(); err != nil {
		respondWithError(w, logger, err, "Invalid query parameters")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"page": page.Page, "page_size": page.PageSize})
	handlerLogger.Debug("Processing request to search listings", nil)

	result, err := h.searchUC.Execute(r.Context(), filters, page)
	if err != nil {
		respondWithError(w, handlerLogger, err, "Failed to retrieve listings")
		return
	}

	handlerLogger.Info("Successfully found listings", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Listings),
	})
	RespondWithJSON(w, http.StatusOK, toPaginatedListingsResponse(result))
}

// GetListing обрабатывает GET /api/v1/listings/{listingID} и учитывает просмотр
func (h *ListingHandlers) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing"})

	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}
	handlerLogger := logger.WithFields(port.Fields{"listing_id": listingID.String()})

	view, err := h.getUC.Execute(r.Context(), listingID)
	if err != nil {
		respondWithError(w, handlerLogger, err, "Failed to retrieve listing")
		return
	}

	// ошибка учета просмотра не ломает ответ
	if err := h.trackViewUC.Execute(r.Context(), sessionKeyFromContext(r.Context()), listingID); err != nil {
		handlerLogger.Warn("Failed to track listing view", port.Fields{"error": err.Error()})
	}

	RespondWithJSON(w, http.StatusOK, toListingResponse(*view))
}

// RecentlyViewed обрабатывает GET /api/v1/listings/recently-viewed
func (h *ListingHandlers) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RecentlyViewed"})

	views, err := h.recentlyViewedUC.Execute(r.Context(), sessionKeyFromContext(r.Context()))
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve recently viewed listings")
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingResponses(views))
}

// CreateListing обрабатывает POST /api/v1/listings
func (h *ListingHandlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := decodeBody(r, contracts.CreateListingV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	created, err := h.createUC.Execute(r.Context(), principal, req.toInput())
	if err != nil {
		respondWithError(w, logger, err, "Failed to create listing")
		return
	}

	logger.Info("Listing created", port.Fields{
		"listing_id":   created.Listing.ID.String(),
		"media_failed": len(created.MediaErrors),
	})
	RespondWithJSON(w, http.StatusCreated, SavedListingResponse{
		Listing:     toListingResponse(*created.Listing),
		MediaErrors: toMediaFailureResponses(created.MediaErrors),
	})
}

// UpdateListing обрабатывает PATCH /api/v1/listings/{listingID}
func (h *ListingHandlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateListing"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	var req UpdateListingRequest
	if err := decodeBody(r, contracts.UpdateListingV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	updated, err := h.updateUC.Execute(r.Context(), principal, listingID, req.toPatch())
	if err != nil {
		respondWithError(w, logger, err, "Failed to update listing")
		return
	}
	if len(updated.MediaErrors) > 0 {
		logger.Warn("Listing updated with media failures", port.Fields{"media_failed": len(updated.MediaErrors)})
	}
	RespondWithJSON(w, http.StatusOK, SavedListingResponse{
		Listing:     toListingResponse(*updated.Listing),
		MediaErrors: toMediaFailureResponses(updated.MediaErrors),
	})
}

// DeleteListing обрабатывает DELETE /api/v1/listings/{listingID}
func (h *ListingHandlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteListing"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), principal, listingID); err != nil {
		respondWithError(w, logger, err, "Failed to delete listing")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMedia обрабатывает POST /api/v1/listings/{listingID}/media
func (h *ListingHandlers) AddMedia(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddMedia"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	var req AddMediaRequest
	if err := decodeBody(r, contracts.AddMediaV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	added, failed, err := h.addMediaUC.Execute(r.Context(), principal, listingID, toMediaInputs(req.Media))
	if err != nil {
		respondWithError(w, logger, err, "Failed to add media")
		return
	}

	status := http.StatusCreated
	if len(added) == 0 {
		status = http.StatusBadRequest
	}
	RespondWithJSON(w, status, AddMediaResponse{
		Media:  toMediaResponses(added),
		Failed: toMediaFailureResponses(failed),
	})
}

// RemoveMedia обрабатывает DELETE /api/v1/listings/{listingID}/media/{mediaID}
func (h *ListingHandlers) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveMedia"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}
	mediaID, err := parseUUIDParam(r, "mediaID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid media ID")
		return
	}

	if err := h.removeMediaUC.Execute(r.Context(), principal, listingID, mediaID); err != nil {
		respondWithError(w, logger, err, "Failed to remove media")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachNearbyPlace обрабатывает POST /api/v1/listings/{listingID}/nearby-places
func (h *ListingHandlers) AttachNearbyPlace(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AttachNearbyPlace"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	listingID, err := parseUUIDParam(r, "listingID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid listing ID")
		return
	}

	var req AttachNearbyPlaceRequest
	if err := decodeBody(r, contracts.AttachNearbyPlaceV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	link, err := h.attachPlaceUC.Execute(r.Context(), principal, listingID, req.PlaceID)
	if err != nil {
		respondWithError(w, logger, err, "Failed to attach nearby place")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toListingNearbyPlaceResponse(*link))
}

// ListPropertyTypes обрабатывает GET /api/v1/listings/property-types
func (h *ListingHandlers) ListPropertyTypes(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, propertyTypeResponses())
}

// ListAmenities обрабатывает GET /api/v1/amenities
func (h *ListingHandlers) ListAmenities(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListAmenities"})

	amenities, err := h.listAmenitiesUC.Execute(r.Context())
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve amenities")
		return
	}
	RespondWithJSON(w, http.StatusOK, toAmenityResponses(amenities))
}
