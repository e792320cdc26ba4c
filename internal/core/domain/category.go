package domain

const (
	// диапазон цен категории "дешево"
	CheapPriceMin = 60000.0
	CheapPriceMax = 90000.0

	DefaultCategoryLimit = 6
	maxCategoryLimit     = 50
)

// Category - витрина листингов на главной странице
type Category string

const (
	CategoryCheap          Category = "cheap"
	CategoryNearUniversity Category = "near_university"
	CategoryTopRated       Category = "top_rated"
	CategorySpecialNeeds   Category = "special_needs"
	CategoryPopular        Category = "popular"
)

// Categories - порядок категорий в ответе
var Categories = []Category{
	CategoryCheap,
	CategoryNearUniversity,
	CategoryTopRated,
	CategorySpecialNeeds,
	CategoryPopular,
}

// CategoryQuery - параметры витрины. Нулевые Limit и RadiusKm означают "не задано".
type CategoryQuery struct {
	Limit    int
	RadiusKm float64
}

// Normalize подставляет значения по умолчанию для незаданных полей,
// отрицательные значения - ошибка
func (q CategoryQuery) Normalize() (CategoryQuery, error) {
	if q.Limit == 0 {
		q.Limit = DefaultCategoryLimit
	}
	if q.Limit < 0 || q.Limit > maxCategoryLimit {
		return q, NewValidationError("limit", "limit must be between 1 and 50")
	}
	if q.RadiusKm == 0 {
		q.RadiusKm = DefaultRadiusKm
	}
	if err := ValidateRadius(q.RadiusKm); err != nil {
		return q, err
	}
	return q, nil
}

// MarketingCategories - категории с листингами, пустая категория дает пустой срез
type MarketingCategories map[Category][]ListingView

func NewMarketingCategories() MarketingCategories {
	out := make(MarketingCategories, len(Categories))
	for _, c := range Categories {
		out[c] = []ListingView{}
	}
	return out
}
