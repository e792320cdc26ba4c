package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

const enquiryColumns = `e.id, e.listing_id, l.title, e.requester_id, e.owner_id, e.status, e.is_active, e.created_at, e.updated_at`

// EnquiryRepository хранит переписки и сообщения
type EnquiryRepository struct {
	pool *pgxpool.Pool
}

func NewEnquiryRepository(pool *pgxpool.Pool) (*EnquiryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &EnquiryRepository{pool: pool}, nil
}

func (r *EnquiryRepository) logger(ctx context.Context, method string, enquiryID uuid.UUID) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "EnquiryRepository",
		"method":     method,
		"enquiry_id": enquiryID.String(),
	})
}

func scanEnquiry(row rowScanner, extra ...any) (*domain.Enquiry, error) {
	var e domain.Enquiry
	dest := append([]any{&e.ID, &e.ListingID, &e.ListingTitle, &e.RequesterID, &e.OwnerID,
		&e.Status, &e.IsActive, &e.CreatedAt, &e.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &e, nil
}

func insertMessage(ctx context.Context, q querier, msg *domain.EnquiryMessage) error {
	_, err := q.Exec(ctx, `
		INSERT INTO enquiry_messages (id, enquiry_id, sender_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.EnquiryID, msg.SenderID, msg.Content, msg.IsRead, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *EnquiryRepository) CreateWithMessage(ctx context.Context, e *domain.Enquiry, first *domain.EnquiryMessage) error {
	repoLogger := r.logger(ctx, "CreateWithMessage", e.ID)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO enquiries (id, listing_id, requester_id, owner_id, status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ListingID, e.RequesterID, e.OwnerID, string(e.Status), e.IsActive, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			repoLogger.Warn("Enquiry rejected by constraint", port.Fields{"error": mapped.Error()})
			return mapped
		}
		repoLogger.Error("Failed to insert enquiry", err, nil)
		return fmt.Errorf("failed to insert enquiry: %w", err)
	}

	if err := insertMessage(ctx, tx, first); err != nil {
		repoLogger.Error("Failed to insert first message", err, nil)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Enquiry, error) {
	e, err := scanEnquiry(r.pool.QueryRow(ctx, `
		SELECT `+enquiryColumns+`
		FROM enquiries e JOIN listings l ON l.id = e.listing_id
		WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("failed to find enquiry: %w", err)
	}
	return e, nil
}

// List возвращает переписки участника, свежие первыми, с числом непрочитанных для него
func (r *EnquiryRepository) List(ctx context.Context, f domain.EnquiryFilters) ([]domain.Enquiry, error) {
	conditions := []string{"(e.requester_id = $1 OR e.owner_id = $1)"}
	args := []any{f.ParticipantID}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if f.ListingID != nil {
		args = append(args, *f.ListingID)
		conditions = append(conditions, fmt.Sprintf("e.listing_id = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		conditions = append(conditions, fmt.Sprintf("e.is_active = $%d", len(args)))
	}

	query := `
		SELECT ` + enquiryColumns + `,
			(SELECT COUNT(*) FROM enquiry_messages m
			 WHERE m.enquiry_id = e.id AND m.sender_id <> $1 AND m.is_read = false) AS unread_count
		FROM enquiries e JOIN listings l ON l.id = e.listing_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.updated_at DESC, e.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger(ctx, "List", uuid.Nil).Error("Failed to list enquiries", err, nil)
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	enquiries := make([]domain.Enquiry, 0)
	for rows.Next() {
		var unread int
		e, err := scanEnquiry(rows, &unread)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		e.UnreadCount = unread
		enquiries = append(enquiries, *e)
	}
	return enquiries, rows.Err()
}

func (r *EnquiryRepository) AddMessage(ctx context.Context, e *domain.Enquiry, from domain.EnquiryStatus, msg *domain.EnquiryMessage) error {
	repoLogger := r.logger(ctx, "AddMessage", e.ID)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertMessage(ctx, tx, msg); err != nil {
		repoLogger.Error("Failed to insert message", err, nil)
		return err
	}
	if err := updateEnquiryState(ctx, tx, e, from); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			repoLogger.Warn("Enquiry changed concurrently, message discarded", port.Fields{"expected_status": from})
			return err
		}
		repoLogger.Error("Failed to update enquiry", err, nil)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *EnquiryRepository) UpdateStatus(ctx context.Context, e *domain.Enquiry, from domain.EnquiryStatus) error {
	return updateEnquiryState(ctx, r.pool, e, from)
}

const updateEnquiryStateSQL = `UPDATE enquiries SET status = $2, is_active = $3, updated_at = $4 WHERE id = $1 AND status = $5`

// updateEnquiryState пишет новое состояние, только если статус в базе все еще from.
// Иначе переписку уже изменил параллельный запрос (например, отмена).
func updateEnquiryState(ctx context.Context, q querier, e *domain.Enquiry, from domain.EnquiryStatus) error {
	tag, err := q.Exec(ctx, updateEnquiryStateSQL,
		e.ID, string(e.Status), e.IsActive, e.UpdatedAt, string(from))
	if err != nil {
		return fmt.Errorf("failed to update enquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// ListMessages - в хронологическом порядке
func (r *EnquiryRepository) ListMessages(ctx context.Context, enquiryID uuid.UUID) ([]domain.EnquiryMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, enquiry_id, sender_id, content, is_read, created_at
		FROM enquiry_messages WHERE enquiry_id = $1
		ORDER BY created_at ASC, id ASC`, enquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.EnquiryMessage, 0)
	for rows.Next() {
		var m domain.EnquiryMessage
		if err := rows.Scan(&m.ID, &m.EnquiryID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *EnquiryRepository) MarkRead(ctx context.Context, enquiryID, readerID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE enquiry_messages SET is_read = true
		WHERE enquiry_id = $1 AND sender_id <> $2 AND is_read = false`, enquiryID, readerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return tag.RowsAffected(), nil
}
