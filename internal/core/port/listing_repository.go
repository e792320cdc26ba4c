package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

// ListingRepositoryPort - хранилище листингов.
// Все методы, которые пишут несколько таблиц, выполняются в одной транзакции.
type ListingRepositoryPort interface {
	// Create сохраняет листинг вместе со связями на амениты
	Create(ctx context.Context, listing *domain.Listing, amenityIDs []uuid.UUID) error
	// Update сохраняет поля листинга; если amenityIDs не nil, набор аменитов заменяется целиком
	Update(ctx context.Context, listing *domain.Listing, amenityIDs *[]uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	// GetView возвращает листинг с аменитами, медиа, местами рядом и рейтингом
	GetView(ctx context.Context, id uuid.UUID) (*domain.ListingView, error)
	Find(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error)
	// FindByIDs возвращает доступные листинги в порядке переданных id, отсутствующие пропускаются
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ListingView, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	RecordView(ctx context.Context, id uuid.UUID, at time.Time) error

	FindCheapest(ctx context.Context, priceMin, priceMax float64, limit int) ([]domain.ListingView, error)
	FindTopRated(ctx context.Context, limit int) ([]domain.ListingView, error)
	FindSpecialNeeds(ctx context.Context, limit int) ([]domain.ListingView, error)
	FindMostViewed(ctx context.Context, limit int) ([]domain.ListingView, error)
}

// GeoIndexPort - запросы "в радиусе R км от точки P", ближайшие первыми
type GeoIndexPort interface {
	// WithinRadius возвращает доступные листинги с заполненным DistanceKm,
	// упорядоченные по расстоянию, затем по id
	WithinRadius(ctx context.Context, anchor domain.Point, radiusKm float64, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error)
}

type MediaRepositoryPort interface {
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Media, error)
	Add(ctx context.Context, media *domain.Media) error
	// Remove возвращает domain.ErrMediaNotFound, если вложения нет у листинга
	Remove(ctx context.Context, listingID, mediaID uuid.UUID) error
	RemoveAll(ctx context.Context, listingID uuid.UUID) error
	SetPrimary(ctx context.Context, listingID, mediaID uuid.UUID) error
}

type AmenityRepositoryPort interface {
	List(ctx context.Context) ([]domain.Amenity, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Amenity, error)
	// GetOrCreate ищет амениту по имени и создает ее, если не нашел
	GetOrCreate(ctx context.Context, amenity *domain.Amenity) (created bool, err error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

type NearbyPlaceRepositoryPort interface {
	Create(ctx context.Context, place *domain.NearbyPlace) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.NearbyPlace, error)
	List(ctx context.Context, placeType *domain.PlaceType) ([]domain.NearbyPlace, error)
	// Link возвращает domain.ErrNearbyPlaceLinked при повторной связи
	Link(ctx context.Context, link domain.ListingNearbyPlace) error
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.ListingNearbyPlace, error)
}
