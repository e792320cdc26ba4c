package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecentlyViewedPush(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	var r RecentlyViewed
	r = r.Push(a).Push(b).Push(c)
	assert.Equal(t, RecentlyViewed{c, b, a}, r)

	r = r.Push(a)
	assert.Equal(t, RecentlyViewed{a, c, b}, r)
}

func TestRecentlyViewedCap(t *testing.T) {
	var r RecentlyViewed
	ids := make([]uuid.UUID, 0, 25)
	for i := 0; i < 25; i++ {
		id := uuid.New()
		ids = append(ids, id)
		r = r.Push(id)
	}
	assert.Len(t, r, RecentlyViewedLimit)
	assert.Equal(t, ids[24], r[0])
	assert.Equal(t, ids[5], r[RecentlyViewedLimit-1])
}
