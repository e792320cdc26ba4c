package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopFavouritesLimit - сколько листингов возвращает рейтинг избранного
const TopFavouritesLimit = 3

type Favourite struct {
	UserID    uuid.UUID
	ListingID uuid.UUID
	CreatedAt time.Time
}

// FavouriteCount - число пользователей, добавивших листинг в избранное
type FavouriteCount struct {
	ListingID uuid.UUID
	Count     int
}

// FavouriteView - избранный листинг для ответа
type FavouriteView struct {
	Listing   ListingView
	CreatedAt time.Time
}

// TopFavourite - листинг из рейтинга вместе со счетчиком
type TopFavourite struct {
	Listing ListingView
	Count   int
}
