package rest

import (
	"net/http"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/contracts"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
)

// UniversityHandlers - справочник университетов, кампусов и мест рядом
type UniversityHandlers struct {
	createUC       usecases_port.CreateUniversityUseCasePort
	updateUC       usecases_port.UpdateUniversityUseCasePort
	deleteUC       usecases_port.DeleteUniversityUseCasePort
	getUC          usecases_port.GetUniversityUseCasePort
	listUC         usecases_port.ListUniversitiesUseCasePort
	createCampusUC usecases_port.CreateCampusUseCasePort
	updateCampusUC usecases_port.UpdateCampusUseCasePort
	deleteCampusUC usecases_port.DeleteCampusUseCasePort
	createPlaceUC  usecases_port.CreateNearbyPlaceUseCasePort
	listPlacesUC   usecases_port.ListNearbyPlacesUseCasePort
}

func NewUniversityHandlers(createUC usecases_port.CreateUniversityUseCasePort,
	updateUC usecases_port.UpdateUniversityUseCasePort,
	deleteUC usecases_port.DeleteUniversityUseCasePort,
	getUC usecases_port.GetUniversityUseCasePort,
	listUC usecases_port.ListUniversitiesUseCasePort,
	createCampusUC usecases_port.CreateCampusUseCasePort,
	updateCampusUC usecases_port.UpdateCampusUseCasePort,
	deleteCampusUC usecases_port.DeleteCampusUseCasePort,
	createPlaceUC usecases_port.CreateNearbyPlaceUseCasePort,
	listPlacesUC usecases_port.ListNearbyPlacesUseCasePort) *UniversityHandlers {
	return &UniversityHandlers{
		createUC:       createUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		getUC:          getUC,
		listUC:         listUC,
		createCampusUC: createCampusUC,
		updateCampusUC: updateCampusUC,
		deleteCampusUC: deleteCampusUC,
		createPlaceUC:  createPlaceUC,
		listPlacesUC:   listPlacesUC,
	}
}

// ListUniversities обрабатывает GET /api/v1/universities?search=&page=&page_size=
func (h *UniversityHandlers) ListUniversities(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListUniversities"})

	q := newQueryParser(r.URL.Query())
	search := q.String("search")
	page := q.Pagination()
	if err := q.err(); err != nil {
		respondWithError(w, logger, err, "Invalid query parameters")
		return
	}

	result, err := h.listUC.Execute(r.Context(), search, page)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve universities")
		return
	}

	resp := PaginatedUniversitiesResponse{
		Total:    result.TotalCount,
		Page:     result.CurrentPage,
		PageSize: result.ItemsPerPage,
		Data:     make([]UniversityResponse, len(result.Universities)),
	}
	for i, u := range result.Universities {
		resp.Data[i] = toUniversityResponse(u)
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetUniversity обрабатывает GET /api/v1/universities/{universityID}
func (h *UniversityHandlers) GetUniversity(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUniversity"})

	universityID, err := parseUUIDParam(r, "universityID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid university ID")
		return
	}

	university, err := h.getUC.Execute(r.Context(), universityID)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve university")
		return
	}
	RespondWithJSON(w, http.StatusOK, toUniversityResponse(*university))
}

// CreateUniversity обрабатывает POST /api/v1/universities
func (h *UniversityHandlers) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateUniversity"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req UniversityRequest
	if err := decodeBody(r, contracts.UniversityV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	university, err := h.createUC.Execute(r.Context(), principal, req.toInput())
	if err != nil {
		respondWithError(w, logger, err, "Failed to create university")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toUniversityResponse(*university))
}

// UpdateUniversity обрабатывает PUT /api/v1/universities/{universityID}
func (h *UniversityHandlers) UpdateUniversity(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateUniversity"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	universityID, err := parseUUIDParam(r, "universityID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid university ID")
		return
	}

	var req UniversityRequest
	if err := decodeBody(r, contracts.UniversityV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	university, err := h.updateUC.Execute(r.Context(), principal, universityID, req.toInput())
	if err != nil {
		respondWithError(w, logger, err, "Failed to update university")
		return
	}
	RespondWithJSON(w, http.StatusOK, toUniversityResponse(*university))
}

// DeleteUniversity обрабатывает DELETE /api/v1/universities/{universityID}
func (h *UniversityHandlers) DeleteUniversity(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteUniversity"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	universityID, err := parseUUIDParam(r, "universityID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid university ID")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), principal, universityID); err != nil {
		respondWithError(w, logger, err, "Failed to delete university")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCampus обрабатывает POST /api/v1/universities/{universityID}/campuses
func (h *UniversityHandlers) CreateCampus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateCampus"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	universityID, err := parseUUIDParam(r, "universityID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid university ID")
		return
	}

	var req CampusRequest
	if err := decodeBody(r, contracts.CampusV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	campus, err := h.createCampusUC.Execute(r.Context(), principal, universityID, req.toInput())
	if err != nil {
		respondWithError(w, logger, err, "Failed to create campus")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toCampusResponse(*campus))
}

// UpdateCampus обрабатывает PUT /api/v1/universities/{universityID}/campuses/{campusID}
func (h *UniversityHandlers) UpdateCampus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateCampus"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	universityID, err := parseUUIDParam(r, "universityID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid university ID")
		return
	}
	campusID, err := parseUUIDParam(r, "campusID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid campus ID")
		return
	}

	var req CampusRequest
	if err := decodeBody(r, contracts.CampusV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	campus, err := h.updateCampusUC.Execute(r.Context(), principal, universityID, campusID, req.toInput())
	if err != nil {
		respondWithError(w, logger, err, "Failed to update campus")
		return
	}
	RespondWithJSON(w, http.StatusOK, toCampusResponse(*campus))
}

// DeleteCampus обрабатывает DELETE /api/v1/universities/{universityID}/campuses/{campusID}
func (h *UniversityHandlers) DeleteCampus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteCampus"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	universityID, err := parseUUIDParam(r, "universityID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid university ID")
		return
	}
	campusID, err := parseUUIDParam(r, "campusID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid campus ID")
		return
	}

	if err := h.deleteCampusUC.Execute(r.Context(), principal, universityID, campusID); err != nil {
		respondWithError(w, logger, err, "Failed to delete campus")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListNearbyPlaces обрабатывает GET /api/v1/nearby-places?place_type=
func (h *UniversityHandlers) ListNearbyPlaces(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListNearbyPlaces"})

	var placeType *domain.PlaceType
	if raw := r.URL.Query().Get("place_type"); raw != "" {
		t := domain.PlaceType(raw)
		if !t.Valid() {
			respondWithError(w, logger, domain.NewValidationError("place_type", "unknown place type"), "Invalid query parameters")
			return
		}
		placeType = &t
	}

	places, err := h.listPlacesUC.Execute(r.Context(), placeType)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve nearby places")
		return
	}

	out := make([]NearbyPlaceResponse, len(places))
	for i, p := range places {
		out[i] = toNearbyPlaceResponse(p)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

// CreateNearbyPlace обрабатывает POST /api/v1/nearby-places
func (h *UniversityHandlers) CreateNearbyPlace(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateNearbyPlace"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req NearbyPlaceRequest
	if err := decodeBody(r, contracts.NearbyPlaceV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	place, err := h.createPlaceUC.Execute(r.Context(), principal, req.toInput())
	if err != nil {
		respondWithError(w, logger, err, "Failed to create nearby place")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toNearbyPlaceResponse(*place))
}
