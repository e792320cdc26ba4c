package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type UserRepositoryPort interface {
	// CreateAccount сохраняет пользователя и профиль его роли в одной транзакции
	CreateAccount(ctx context.Context, account *domain.Account) error
	// FindByLogin ищет по имени пользователя или email
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	// FindStudentProfile возвращает nil без ошибки, если профиля нет
	FindStudentProfile(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}
