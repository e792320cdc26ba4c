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

const userColumns = `id, username, email, password_hash, first_name, last_name, mobile, role, email_verified, created_at`

// UserRepository - реализация UserRepositoryPort для PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserRepository{pool: pool}, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Mobile, &u.Role, &u.EmailVerified, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateAccount сохраняет пользователя и профиль роли в одной транзакции
func (r *UserRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "CreateAccount",
		"role":      string(account.User.Role),
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	u := account.User
	_, err = tx.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Mobile, string(u.Role), u.EmailVerified, u.CreatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			repoLogger.Warn("User already exists", port.Fields{"error": mapped.Error()})
			return mapped
		}
		repoLogger.Error("Failed to insert user", err, nil)
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if p := account.Student; p != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO student_profiles (user_id, university_id, course, year, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			u.ID, p.UniversityID, p.Course, p.Year, p.CreatedAt)
	}
	if p := account.Broker; p != nil && err == nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO broker_profiles (user_id, company_name, created_at)
			VALUES ($1, $2, $3)`,
			u.ID, p.CompanyName, p.CreatedAt)
	}
	if err != nil {
		repoLogger.Error("Failed to insert profile", err, nil)
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindByLogin - логин совпадает с username точно или с email без учета регистра
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2 LIMIT 1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, login, strings.ToLower(strings.TrimSpace(login))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by login: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{User: *u}

	switch u.Role {
	case domain.RoleStudent:
		account.Student, err = r.FindStudentProfile(ctx, id)
		if err != nil {
			return nil, err
		}
	case domain.RoleBroker:
		var p domain.BrokerProfile
		err = r.pool.QueryRow(ctx,
			`SELECT user_id, company_name, created_at FROM broker_profiles WHERE user_id = $1`, id,
		).Scan(&p.UserID, &p.CompanyName, &p.CreatedAt)
		switch {
		case err == nil:
			account.Broker = &p
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("failed to find broker profile: %w", err)
		}
	}
	return account, nil
}

func (r *UserRepository) FindStudentProfile(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error) {
	var p domain.StudentProfile
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, university_id, course, year, created_at FROM student_profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.UniversityID, &p.Course, &p.Year, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find student profile: %w", err)
	}
	return &p, nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET email_verified = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
