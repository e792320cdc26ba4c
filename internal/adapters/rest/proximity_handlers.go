package rest

import (
	"net/http"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
)

// ProximityHandlers - поиск по радиусу и витрина категорий
type ProximityHandlers struct {
	nearAnchorUC       usecases_port.SearchNearAnchorUseCasePort
	nearMyUniversityUC usecases_port.SearchNearMyUniversityUseCasePort
	categoriesUC       usecases_port.GetMarketingCategoriesUseCasePort
	defaultRadiusKm    float64
}

func NewProximityHandlers(nearAnchorUC usecases_port.SearchNearAnchorUseCasePort,
	nearMyUniversityUC usecases_port.SearchNearMyUniversityUseCasePort,
	categoriesUC usecases_port.GetMarketingCategoriesUseCasePort,
	defaultRadiusKm float64) *ProximityHandlers {
	return &ProximityHandlers{
		nearAnchorUC:       nearAnchorUC,
		nearMyUniversityUC: nearMyUniversityUC,
		categoriesUC:       categoriesUC,
		defaultRadiusKm:    defaultRadiusKm,
	}
}

// SearchNearAnchor обрабатывает GET /api/v1/listings/near
// ?university_id= | ?campus_id= | ?lon=&lat=, радиус в параметре distance (км)
func (h *ProximityHandlers) SearchNearAnchor(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchNearAnchor"})

	q := newQueryParser(r.URL.Query())
	anchor := domain.AnchorQuery{
		UniversityID: q.UUID("university_id"),
		CampusID:     q.UUID("campus_id"),
		Point:        q.Point(),
		RadiusKm:     q.Radius(h.defaultRadiusKm),
	}
	filters := q.ListingFilters()
	page := q.Pagination()
	if err := q.err(); err != nil {
		respondWithError(w, logger, err, "Invalid query parameters")
		return
	}

	result, err := h.nearAnchorUC.Execute(r.Context(), anchor, filters, page)
	if err != nil {
		respondWithError(w, logger, err, "Failed to search listings")
		return
	}

	logger.Info("Proximity search finished", port.Fields{"radius_km": anchor.RadiusKm, "total_found": result.TotalCount})
	RespondWithJSON(w, http.StatusOK, toPaginatedListingsResponse(result))
}

// SearchNearMyUniversity обрабатывает GET /api/v1/listings/near-my-university
func (h *ProximityHandlers) SearchNearMyUniversity(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchNearMyUniversity"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	q := newQueryParser(r.URL.Query())
	radius := q.Radius(h.defaultRadiusKm)
	filters := q.ListingFilters()
	page := q.Pagination()
	if err := q.err(); err != nil {
		respondWithError(w, logger, err, "Invalid query parameters")
		return
	}

	result, err := h.nearMyUniversityUC.Execute(r.Context(), principal, radius, filters, page)
	if err != nil {
		respondWithError(w, logger, err, "Failed to search listings")
		return
	}
	RespondWithJSON(w, http.StatusOK, toPaginatedListingsResponse(result))
}

// Categories обрабатывает GET /api/v1/listings/categories?limit=&distance=
func (h *ProximityHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Categories"})

	q := newQueryParser(r.URL.Query())
	query := domain.CategoryQuery{RadiusKm: q.Radius(h.defaultRadiusKm)}
	if limit := q.Int("limit"); limit != nil {
		query.Limit = *limit
		if *limit == 0 {
			// 0 в домене означает "по умолчанию", от клиента это ошибка
			query.Limit = -1
		}
	}
	if err := q.err(); err != nil {
		respondWithError(w, logger, err, "Invalid query parameters")
		return
	}

	categories, err := h.categoriesUC.Execute(r.Context(), optionalPrincipal(r), query)
	if err != nil {
		respondWithError(w, logger, err, "Failed to build categories")
		return
	}
	RespondWithJSON(w, http.StatusOK, toCategoriesResponse(categories))
}
