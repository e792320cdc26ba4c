package usecases_port

import (
	"context"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type CreateUniversityUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, in domain.UniversityInput) (*domain.University, error)
}

type UpdateUniversityUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, universityID uuid.UUID, in domain.UniversityInput) (*domain.University, error)
}

type DeleteUniversityUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, universityID uuid.UUID) error
}

type GetUniversityUseCasePort interface {
	Execute(ctx context.Context, universityID uuid.UUID) (*domain.University, error)
}

type ListUniversitiesUseCasePort interface {
	Execute(ctx context.Context, search string, page domain.Pagination) (*domain.UniversityPage, error)
}

type CreateCampusUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, universityID uuid.UUID, in domain.CampusInput) (*domain.Campus, error)
}

type UpdateCampusUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, universityID, campusID uuid.UUID, in domain.CampusInput) (*domain.Campus, error)
}

type DeleteCampusUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, universityID, campusID uuid.UUID) error
}

type CreateNearbyPlaceUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal, in domain.NearbyPlaceInput) (*domain.NearbyPlace, error)
}

type ListNearbyPlacesUseCasePort interface {
	Execute(ctx context.Context, placeType *domain.PlaceType) ([]domain.NearbyPlace, error)
}

type SeedAmenitiesUseCasePort interface {
	Execute(ctx context.Context, clear bool) (created int, total int, err error)
}

type SeedUniversitiesUseCasePort interface {
	Execute(ctx context.Context, clear bool) (created int, err error)
}

type DeliverVerificationEmailUseCasePort interface {
	Execute(ctx context.Context, job domain.VerificationEmail) error
}
