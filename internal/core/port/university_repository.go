package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type UniversityRepositoryPort interface {
	Create(ctx context.Context, university *domain.University) error
	Update(ctx context.Context, university *domain.University) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByID возвращает университет вместе с кампусами
	FindByID(ctx context.Context, id uuid.UUID) (*domain.University, error)
	List(ctx context.Context, search string, page domain.Pagination) ([]domain.University, int, error)
	// FindFirst - первый университет по имени, nil если их нет
	FindFirst(ctx context.Context) (*domain.University, error)
	GetOrCreateByName(ctx context.Context, university *domain.University) (created bool, err error)
	DeleteAll(ctx context.Context) (int64, error)

	CreateCampus(ctx context.Context, campus *domain.Campus) error
	UpdateCampus(ctx context.Context, campus *domain.Campus) error
	DeleteCampus(ctx context.Context, universityID, campusID uuid.UUID) error
	FindCampus(ctx context.Context, campusID uuid.UUID) (*domain.Campus, error)
}
