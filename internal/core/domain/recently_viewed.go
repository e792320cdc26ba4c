package domain

import "github.com/google/uuid"

// RecentlyViewedLimit - сколько листингов помнит сессия
const RecentlyViewedLimit = 20

// RecentlyViewed - недавно просмотренные листинги, самый свежий первым
type RecentlyViewed []uuid.UUID

// Push ставит листинг в начало, убирает повтор и обрезает до лимита
func (r RecentlyViewed) Push(id uuid.UUID) RecentlyViewed {
	out := make(RecentlyViewed, 0, RecentlyViewedLimit)
	out = append(out, id)
	for _, existing := range r {
		if existing == id {
			continue
		}
		if len(out) == RecentlyViewedLimit {
			break
		}
		out = append(out, existing)
	}
	return out
}
