package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

// ClientChannel - поток SSE-сообщений одной вкладки браузера
type ClientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event port.EnquiryEvent
}

type messagePayload struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type eventPayload struct {
	EnquiryID uuid.UUID       `json:"enquiry_id"`
	ListingID uuid.UUID       `json:"listing_id"`
	Status    string          `json:"status"`
	IsActive  bool            `json:"is_active"`
	UpdatedAt time.Time       `json:"updated_at"`
	Message   *messagePayload `json:"message,omitempty"`
}

// SSENotifier - реализация EnquiryNotifierPort поверх Server-Sent Events
type SSENotifier struct {
	// один пользователь может держать несколько вкладок
	clients map[uuid.UUID][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext
	logger    port.LoggerPort
}

func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	return &SSENotifier{
		clients:   make(map[uuid.UUID][]ClientChannel),
		eventChan: make(chan eventWithContext, 100),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}
}

// Run рассылает события, пока ctx не отменен
func (n *SSENotifier) Run(ctx context.Context) {
	n.logger.Debug("Notifier dispatcher started", nil)
	for {
		select {
		case <-ctx.Done():
			n.logger.Debug("Notifier dispatcher stopped", nil)
			return
		case pkg := <-n.eventChan:
			n.dispatch(pkg)
		}
	}
}

func (n *SSENotifier) dispatch(pkg eventWithContext) {
	event := pkg.event
	eventLogger := contextkeys.LoggerFromContext(pkg.ctx).WithFields(port.Fields{
		"component":  "SSENotifier.dispatcher",
		"event_type": event.Type,
		"enquiry_id": event.Enquiry.ID.String(),
	})

	sseMessage, err := formatEvent(event)
	if err != nil {
		eventLogger.Error("Failed to marshal event", err, nil)
		return
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, userID := range event.Recipients {
		for _, ch := range n.clients[userID] {
			select {
			case ch <- sseMessage:
			default:
				eventLogger.Warn("Client channel is full, skipping", port.Fields{"user_id": userID.String()})
			}
		}
	}
}

func formatEvent(event port.EnquiryEvent) ([]byte, error) {
	payload := eventPayload{
		EnquiryID: event.Enquiry.ID,
		ListingID: event.Enquiry.ListingID,
		Status:    string(event.Enquiry.Status),
		IsActive:  event.Enquiry.IsActive,
		UpdatedAt: event.Enquiry.UpdatedAt,
	}
	if m := event.Message; m != nil {
		payload.Message = &messagePayload{ID: m.ID, SenderID: m.SenderID, Content: m.Content, CreatedAt: m.CreatedAt}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, data)), nil
}

// Notify не блокирует use case: при переполненной очереди событие теряется
func (n *SSENotifier) Notify(ctx context.Context, event port.EnquiryEvent) {
	select {
	case n.eventChan <- eventWithContext{ctx: ctx, event: event}:
	default:
		contextkeys.LoggerFromContext(ctx).Warn("Notifier queue is full, event dropped", port.Fields{"event_type": event.Type})
	}
}

func (n *SSENotifier) AddClient(userID uuid.UUID) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 100)
	n.clients[userID] = append(n.clients[userID], ch)

	n.logger.Info("Client connected", port.Fields{
		"user_id":           userID.String(),
		"connections_count": len(n.clients[userID]),
	})
	return ch
}

func (n *SSENotifier) RemoveClient(userID uuid.UUID, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels := n.clients[userID]
	remaining := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(n.clients, userID)
	} else {
		n.clients[userID] = remaining
	}
	n.logger.Debug("Client disconnected", port.Fields{"user_id": userID.String(), "remaining": len(remaining)})
}
