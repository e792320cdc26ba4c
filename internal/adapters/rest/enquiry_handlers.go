package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/adapters/notifier"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/contracts"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
)

const sseKeepAliveInterval = 15 * time.Second

// Subscriber - источник SSE-событий для пользователя
type Subscriber interface {
	AddClient(userID uuid.UUID) notifier.ClientChannel
	RemoveClient(userID uuid.UUID, ch notifier.ClientChannel)
}

// EnquiryHandlers - переписка между студентом и владельцем
type EnquiryHandlers struct {
	createUC       usecases_port.CreateEnquiryUseCasePort
	listUC         usecases_port.ListEnquiriesUseCasePort
	getUC          usecases_port.GetEnquiryUseCasePort
	cancelUC       usecases_port.CancelEnquiryUseCasePort
	resolveUC      usecases_port.ResolveEnquiryUseCasePort
	postMessageUC  usecases_port.PostMessageUseCasePort
	listMessagesUC usecases_port.ListMessagesUseCasePort
	markReadUC     usecases_port.MarkMessagesReadUseCasePort
	subscriber     Subscriber
}

func NewEnquiryHandlers(createUC usecases_port.CreateEnquiryUseCasePort,
	listUC usecases_port.ListEnquiriesUseCasePort,
	getUC usecases_port.GetEnquiryUseCasePort,
	cancelUC usecases_port.CancelEnquiryUseCasePort,
	resolveUC usecases_port.ResolveEnquiryUseCasePort,
	postMessageUC usecases_port.PostMessageUseCasePort,
	listMessagesUC usecases_port.ListMessagesUseCasePort,
	markReadUC usecases_port.MarkMessagesReadUseCasePort,
	subscriber Subscriber) *EnquiryHandlers {
	return &EnquiryHandlers{
		createUC:       createUC,
		listUC:         listUC,
		getUC:          getUC,
		cancelUC:       cancelUC,
		resolveUC:      resolveUC,
		postMessageUC:  postMessageUC,
		listMessagesUC: listMessagesUC,
		markReadUC:     markReadUC,
		subscriber:     subscriber,
	}
}

// CreateEnquiry обрабатывает POST /api/v1/enquiries
func (h *EnquiryHandlers) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateEnquiry"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateEnquiryRequest
	if err := decodeBody(r, contracts.CreateEnquiryV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	enquiry, err := h.createUC.Execute(r.Context(), principal, req.ListingID, req.Message)
	if err != nil {
		respondWithError(w, logger, err, "Failed to create enquiry")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toEnquiryResponse(*enquiry))
}

// ListEnquiries обрабатывает GET /api/v1/enquiries?status=&listing_id=&is_active=
func (h *EnquiryHandlers) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListEnquiries"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	q := newQueryParser(r.URL.Query())
	filters := domain.EnquiryFilters{
		ListingID: q.UUID("listing_id"),
		IsActive:  q.Bool("is_active"),
	}
	if raw := q.String("status"); raw != "" {
		status, err := domain.ParseEnquiryStatus(raw)
		if err != nil {
			respondWithError(w, logger, err, "Invalid query parameters")
			return
		}
		filters.Status = &status
	}
	if err := q.err(); err != nil {
		respondWithError(w, logger, err, "Invalid query parameters")
		return
	}

	enquiries, err := h.listUC.Execute(r.Context(), principal, filters)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve enquiries")
		return
	}

	out := make([]EnquiryResponse, len(enquiries))
	for i, e := range enquiries {
		out[i] = toEnquiryResponse(e)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

// GetEnquiry обрабатывает GET /api/v1/enquiries/{enquiryID}
func (h *EnquiryHandlers) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	h.respondWithEnquiry(w, r, "GetEnquiry", h.getUC.Execute)
}

// CancelEnquiry обрабатывает POST /api/v1/enquiries/{enquiryID}/cancel
func (h *EnquiryHandlers) CancelEnquiry(w http.ResponseWriter, r *http.Request) {
	h.respondWithEnquiry(w, r, "CancelEnquiry", h.cancelUC.Execute)
}

// ResolveEnquiry обрабатывает POST /api/v1/enquiries/{enquiryID}/resolve
func (h *EnquiryHandlers) ResolveEnquiry(w http.ResponseWriter, r *http.Request) {
	h.respondWithEnquiry(w, r, "ResolveEnquiry", h.resolveUC.Execute)
}

type enquiryAction func(ctx context.Context, principal domain.Principal, enquiryID uuid.UUID) (*domain.Enquiry, error)

func (h *EnquiryHandlers) respondWithEnquiry(w http.ResponseWriter, r *http.Request, handler string, action enquiryAction) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handler})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	enquiryID, err := parseUUIDParam(r, "enquiryID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid enquiry ID")
		return
	}

	enquiry, err := action(r.Context(), principal, enquiryID)
	if err != nil {
		respondWithError(w, logger, err, "Failed to process enquiry")
		return
	}
	RespondWithJSON(w, http.StatusOK, toEnquiryResponse(*enquiry))
}

// PostMessage обрабатывает POST /api/v1/enquiries/{enquiryID}/messages
func (h *EnquiryHandlers) PostMessage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "PostMessage"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	enquiryID, err := parseUUIDParam(r, "enquiryID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid enquiry ID")
		return
	}

	var req PostMessageRequest
	if err := decodeBody(r, contracts.PostMessageV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	msg, err := h.postMessageUC.Execute(r.Context(), principal, enquiryID, req.Content)
	if err != nil {
		respondWithError(w, logger, err, "Failed to post message")
		return
	}
	RespondWithJSON(w, http.StatusCreated, toMessageResponse(*msg))
}

// ListMessages обрабатывает GET /api/v1/enquiries/{enquiryID}/messages
func (h *EnquiryHandlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListMessages"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	enquiryID, err := parseUUIDParam(r, "enquiryID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid enquiry ID")
		return
	}

	messages, err := h.listMessagesUC.Execute(r.Context(), principal, enquiryID)
	if err != nil {
		respondWithError(w, logger, err, "Failed to retrieve messages")
		return
	}

	out := make([]MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = toMessageResponse(m)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

// MarkRead обрабатывает POST /api/v1/enquiries/{enquiryID}/read
func (h *EnquiryHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "MarkRead"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	enquiryID, err := parseUUIDParam(r, "enquiryID")
	if err != nil {
		respondWithError(w, logger, err, "Invalid enquiry ID")
		return
	}

	marked, err := h.markReadUC.Execute(r.Context(), principal, enquiryID)
	if err != nil {
		respondWithError(w, logger, err, "Failed to mark messages as read")
		return
	}
	RespondWithJSON(w, http.StatusOK, MarkReadResponse{MarkedRead: marked})
}

// Subscribe - обработчик для GET /api/v1/enquiries/stream
func (h *EnquiryHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeToEnquiries"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": principal.UserID.String()})
	handlerLogger.Info("New client subscribing to SSE events", nil)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.subscriber.AddClient(principal.UserID)
	defer h.subscriber.RemoveClient(principal.UserID, clientChan)

	// подтверждение установки соединения
	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(sseKeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case data, open := <-clientChan:
			if !open {
				return
			}
			if _, err := w.Write(data); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()
			handlerLogger.Debug("Sent SSE event to client", nil)

		case <-ticker.C:
			// строки с двоеточием в начале - комментарии SSE, клиент их игнорирует
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected.", nil)
			return
		}
	}
}
