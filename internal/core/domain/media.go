package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

// Media - вложение листинга, файл хранится во внешнем хранилище и адресуется по URL
type Media struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	MediaType    MediaType
	URL          string
	ContentHash  string
	IsPrimary    bool
	DisplayOrder int
	CreatedAt    time.Time
}

// MediaInput - новое вложение
type MediaInput struct {
	MediaType   MediaType
	URL         string
	ContentHash string
}

func (in MediaInput) Validate() error {
	verr := &ValidationError{}
	if !in.MediaType.Valid() {
		verr.Add("media_type", fmt.Sprintf("unknown media type %q", in.MediaType))
	}
	url := strings.TrimSpace(in.URL)
	if url == "" {
		verr.Add("url", "url is required")
	} else if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		verr.Add("url", "url must be an absolute http(s) url")
	}
	return verr.OrNil()
}

// ArrangeMedia раскладывает новые вложения после уже существующих.
// Картинки идут первыми в порядке запроса, за ними видео.
// Первая новая картинка становится основной, если у листинга основной еще нет.
func ArrangeMedia(listingID uuid.UUID, existing []Media, incoming []MediaInput, now time.Time) []Media {
	next := 0
	hasPrimary := false
	for _, m := range existing {
		if m.DisplayOrder >= next {
			next = m.DisplayOrder + 1
		}
		if m.IsPrimary && m.MediaType == MediaImage {
			hasPrimary = true
		}
	}

	images := make([]MediaInput, 0, len(incoming))
	videos := make([]MediaInput, 0, len(incoming))
	for _, in := range incoming {
		if in.MediaType == MediaVideo {
			videos = append(videos, in)
		} else {
			images = append(images, in)
		}
	}

	out := make([]Media, 0, len(incoming))
	for _, in := range append(images, videos...) {
		m := Media{
			ID:           uuid.New(),
			ListingID:    listingID,
			MediaType:    in.MediaType,
			URL:          strings.TrimSpace(in.URL),
			ContentHash:  in.ContentHash,
			DisplayOrder: next,
			CreatedAt:    now,
		}
		if in.MediaType == MediaImage && !hasPrimary {
			m.IsPrimary = true
			hasPrimary = true
		}
		out = append(out, m)
		next++
	}
	return out
}

// ElectPrimary возвращает картинку, которую нужно сделать основной
// после удаления, или false, если основная уже есть или картинок нет
func ElectPrimary(remaining []Media) (uuid.UUID, bool) {
	images := make([]Media, 0, len(remaining))
	for _, m := range remaining {
		if m.MediaType != MediaImage {
			continue
		}
		if m.IsPrimary {
			return uuid.Nil, false
		}
		images = append(images, m)
	}
	if len(images) == 0 {
		return uuid.Nil, false
	}
	SortMedia(images)
	return images[0].ID, true
}

// SortMedia упорядочивает вложения по display_order, затем по id
func SortMedia(media []Media) {
	sort.SliceStable(media, func(i, j int) bool {
		if media[i].DisplayOrder != media[j].DisplayOrder {
			return media[i].DisplayOrder < media[j].DisplayOrder
		}
		return media[i].ID.String() < media[j].ID.String()
	})
}

// MediaFailure - вложение, которое не удалось прикрепить
type MediaFailure struct {
	Index  int
	URL    string
	Reason string
}
