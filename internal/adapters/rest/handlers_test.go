package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/adapters/notifier"
	"github.com/louissosthenes9/campus-stay-api/internal/constants"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- заглушки use case ---

type authenticateFunc func(ctx context.Context, token string) (*domain.Principal, error)

func (f authenticateFunc) Execute(ctx context.Context, token string) (*domain.Principal, error) {
	return f(ctx, token)
}

type searchListingsFunc func(ctx context.Context, f domain.ListingFilters, p domain.Pagination) (*domain.ListingPage, error)

func (f searchListingsFunc) Execute(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	return f(ctx, filters, page)
}

type getListingFunc func(ctx context.Context, id uuid.UUID) (*domain.ListingView, error)

func (f getListingFunc) Execute(ctx context.Context, id uuid.UUID) (*domain.ListingView, error) {
	return f(ctx, id)
}

type trackViewFunc func(ctx context.Context, key string, id uuid.UUID) error

func (f trackViewFunc) Execute(ctx context.Context, key string, id uuid.UUID) error {
	return f(ctx, key, id)
}

type createListingFunc func(ctx context.Context, p domain.Principal, in domain.ListingInput) (*domain.SavedListing, error)

func (f createListingFunc) Execute(ctx context.Context, p domain.Principal, in domain.ListingInput) (*domain.SavedListing, error) {
	return f(ctx, p, in)
}

type updateListingFunc func(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.ListingPatch) (*domain.SavedListing, error)

func (f updateListingFunc) Execute(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.ListingPatch) (*domain.SavedListing, error) {
	return f(ctx, p, id, patch)
}

type registerFunc func(ctx context.Context, in domain.RegistrationInput) (*domain.Account, *domain.TokenPair, error)

func (f registerFunc) Execute(ctx context.Context, in domain.RegistrationInput) (*domain.Account, *domain.TokenPair, error) {
	return f(ctx, in)
}

type favouriteFunc func(ctx context.Context, p domain.Principal, id uuid.UUID) error

func (f favouriteFunc) Execute(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	return f(ctx, p, id)
}

type nearAnchorFunc func(ctx context.Context, a domain.AnchorQuery, f domain.ListingFilters, p domain.Pagination) (*domain.ListingPage, error)

func (f nearAnchorFunc) Execute(ctx context.Context, a domain.AnchorQuery, filters domain.ListingFilters, p domain.Pagination) (*domain.ListingPage, error) {
	return f(ctx, a, filters, p)
}

type categoriesFunc func(ctx context.Context, p *domain.Principal, q domain.CategoryQuery) (domain.MarketingCategories, error)

func (f categoriesFunc) Execute(ctx context.Context, p *domain.Principal, q domain.CategoryQuery) (domain.MarketingCategories, error) {
	return f(ctx, p, q)
}

type enquiryActionFunc func(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Enquiry, error)

func (f enquiryActionFunc) Execute(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Enquiry, error) {
	return f(ctx, p, id)
}

type fakeSubscriber struct {
	mu      sync.Mutex
	ch      notifier.ClientChannel
	removed bool
}

func (s *fakeSubscriber) AddClient(uuid.UUID) notifier.ClientChannel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch
}

func (s *fakeSubscriber) RemoveClient(uuid.UUID, notifier.ClientChannel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = true
}

// --- окружение ---

var (
	studentID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	brokerID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

type testEnv struct {
	auth      *AuthHandlers
	listings  *ListingHandlers
	proximity *ProximityHandlers
	enquiries *EnquiryHandlers
	social    *SocialHandlers
}

func newTestEnv() *testEnv {
	return &testEnv{
		auth:      NewAuthHandlers(nil, nil, nil, nil, nil),
		listings:  NewListingHandlers(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, domain.DefaultRadiusKm),
		proximity: NewProximityHandlers(nil, nil, nil, domain.DefaultRadiusKm),
		enquiries: NewEnquiryHandlers(nil, nil, nil, nil, nil, nil, nil, nil, &fakeSubscriber{}),
		social:    NewSocialHandlers(nil, nil, nil, nil, nil, nil, nil),
	}
}

func (e *testEnv) router() http.Handler {
	auth := authenticateFunc(func(_ context.Context, token string) (*domain.Principal, error) {
		switch token {
		case "student-token":
			return &domain.Principal{UserID: studentID, Role: domain.RoleStudent}, nil
		case "broker-token":
			return &domain.Principal{UserID: brokerID, Role: domain.RoleBroker}, nil
		}
		return nil, domain.ErrTokenInvalid
	})

	handlers := Handlers{
		Auth:         e.auth,
		Listings:     e.listings,
		Proximity:    e.proximity,
		Enquiries:    e.enquiries,
		Social:       e.social,
		Universities: NewUniversityHandlers(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil),
	}
	cfg := ServerConfig{Port: "0", CORSAllowedOrigins: []string{"http://localhost:5173"}}
	return NewRouter(cfg, handlers, NewAuthMiddleware(auth, time.Hour), noopLogger{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, port.Fields)        {}
func (noopLogger) Info(string, port.Fields)         {}
func (noopLogger) Warn(string, port.Fields)         {}
func (noopLogger) Error(string, error, port.Fields) {}
func (l noopLogger) WithFields(port.Fields) port.LoggerPort {
	return l
}

func do(t *testing.T, h http.Handler, method, path, token, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sampleView(id uuid.UUID) domain.ListingView {
	return domain.ListingView{
		Listing: domain.Listing{
			ID:           id,
			OwnerID:      brokerID,
			Title:        "Room near UDSM",
			PropertyType: domain.PropertySingleRoom,
			Price:        75000,
			Location:     domain.Point{Lon: 39.2083, Lat: -6.7766},
			IsAvailable:  true,
		},
		Amenities: []domain.Amenity{},
		Media:     []domain.Media{},
	}
}

// --- тесты ---

func TestStatusForError(t *testing.T) {
	cases := map[error]int{
		domain.NewValidationError("price", "bad"): http.StatusBadRequest,
		domain.ErrProfileOrUniversityNotSet:       http.StatusBadRequest,
		domain.ErrListingNotFound:                 http.StatusNotFound,
		domain.ErrAnchorNotFound:                  http.StatusNotFound,
		domain.ErrNotEnquiryRequester:             http.StatusForbidden,
		domain.ErrFavouriteExists:                 http.StatusConflict,
		domain.ErrInvalidTransition:               http.StatusConflict,
		domain.ErrTokenInvalid:                    http.StatusUnauthorized,
		errors.New("connection reset"):            http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusForError(err), err.Error())
	}
}

func TestSearchListings_ParsesFiltersAndPagination(t *testing.T) {
	env := newTestEnv()
	var gotFilters domain.ListingFilters
	var gotPage domain.Pagination
	env.listings.searchUC = searchListingsFunc(func(_ context.Context, f domain.ListingFilters, p domain.Pagination) (*domain.ListingPage, error) {
		gotFilters, gotPage = f, p
		return &domain.ListingPage{Listings: []domain.ListingView{sampleView(uuid.New())}, TotalCount: 11, CurrentPage: p.Page, ItemsPerPage: p.PageSize}, nil
	})

	rec := do(t, env.router(), http.MethodGet,
		"/api/v1/listings?price_min=60000&property_type=hostel,single_room&bedrooms_min=1&is_furnished=true&ordering=price&page=2&page_size=5&geohash=KX7", "", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 60000.0, *gotFilters.PriceMin)
	assert.Equal(t, []domain.PropertyType{domain.PropertyHostel, domain.PropertySingleRoom}, gotFilters.PropertyTypes)
	assert.Equal(t, 1, *gotFilters.Bedrooms.Min)
	assert.True(t, *gotFilters.IsFurnished)
	assert.Equal(t, domain.OrderPriceAsc, gotFilters.Ordering)
	assert.Equal(t, "kx7", gotFilters.GeohashPrefix)
	assert.Equal(t, domain.Pagination{Page: 2, PageSize: 5}, gotPage)

	resp := decodeJSON[PaginatedListingsResponse](t, rec)
	assert.Equal(t, 11, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Data, 1)
	assert.Nil(t, resp.Data[0].Rating.Average)
}

func TestSearchListings_InvalidQueryReturnsFieldErrors(t *testing.T) {
	env := newTestEnv()
	rec := do(t, env.router(), http.MethodGet, "/api/v1/listings?price_min=cheap&is_furnished=maybe&ordering=size", "", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON[ErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "price_min")
	assert.Contains(t, resp.Fields, "is_furnished")
	assert.Contains(t, resp.Fields, "ordering")
}

func TestGetListing_TracksViewWithAnonymousSession(t *testing.T) {
	env := newTestEnv()
	listingID := uuid.New()
	var keys []string
	env.listings.getUC = getListingFunc(func(_ context.Context, id uuid.UUID) (*domain.ListingView, error) {
		v := sampleView(id)
		return &v, nil
	})
	env.listings.trackViewUC = trackViewFunc(func(_ context.Context, key string, id uuid.UUID) error {
		assert.Equal(t, listingID, id)
		keys = append(keys, key)
		return nil
	})
	router := env.router()

	first := do(t, router, http.MethodGet, "/api/v1/listings/"+listingID.String(), "", "")
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)

	second := do(t, router, http.MethodGet, "/api/v1/listings/"+listingID.String(), "", "", cookies[0])
	require.Equal(t, http.StatusOK, second.Code)
	assert.Empty(t, second.Result().Cookies())

	require.Len(t, keys, 2)
	assert.Equal(t, "anon:"+cookies[0].Value, keys[0])
	assert.Equal(t, keys[0], keys[1])
}

func TestGetListing_AuthenticatedUserKeyAndTrackingFailureIgnored(t *testing.T) {
	env := newTestEnv()
	var key string
	env.listings.getUC = getListingFunc(func(_ context.Context, id uuid.UUID) (*domain.ListingView, error) {
		v := sampleView(id)
		return &v, nil
	})
	env.listings.trackViewUC = trackViewFunc(func(_ context.Context, k string, _ uuid.UUID) error {
		key = k
		return errors.New("db down")
	})

	rec := do(t, env.router(), http.MethodGet, "/api/v1/listings/"+uuid.NewString(), "student-token", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user:"+studentID.String(), key)
}

func TestGetListing_NotFoundAndBadID(t *testing.T) {
	env := newTestEnv()
	env.listings.getUC = getListingFunc(func(context.Context, uuid.UUID) (*domain.ListingView, error) {
		return nil, domain.ErrListingNotFound
	})
	router := env.router()

	rec := do(t, router, http.MethodGet, "/api/v1/listings/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "listing not found", decodeJSON[ErrorResponse](t, rec).Error)

	rec = do(t, router, http.MethodGet, "/api/v1/listings/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateListing_Authentication(t *testing.T) {
	env := newTestEnv()
	router := env.router()

	rec := do(t, router, http.MethodPost, "/api/v1/listings", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/listings", "forged", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateListing_SchemaViolation(t *testing.T) {
	env := newTestEnv()
	rec := do(t, env.router(), http.MethodPost, "/api/v1/listings", "broker-token", `{"title": "x", "price": "free"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON[ErrorResponse](t, rec)
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "price")
	assert.Contains(t, resp.Fields, "location")
}

func TestCreateListing_ReportsMediaFailures(t *testing.T) {
	env := newTestEnv()
	var got domain.ListingInput
	env.listings.createUC = createListingFunc(func(_ context.Context, p domain.Principal, in domain.ListingInput) (*domain.SavedListing, error) {
		assert.Equal(t, brokerID, p.UserID)
		got = in
		v := sampleView(uuid.New())
		return &domain.SavedListing{
			Listing:     &v,
			MediaErrors: []domain.MediaFailure{{Index: 1, URL: "ftp://bad", Reason: "url must be http or https"}},
		}, nil
	})

	body := `{
		"title": "Room near UDSM", "property_type": "single_room", "price": 75000,
		"address": "Mlimani", "location": {"lon": 39.2083, "lat": -6.7766},
		"available_from": "2025-09-01", "lease_duration": 12, "safety_score": 7.5,
		"media": [{"media_type": "image", "url": "https://cdn/a.jpg"}, {"media_type": "image", "url": "ftp://bad"}]
	}`
	rec := do(t, env.router(), http.MethodPost, "/api/v1/listings", "broker-token", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeJSON[SavedListingResponse](t, rec)
	require.Len(t, resp.MediaErrors, 1)
	assert.Equal(t, 1, resp.MediaErrors[0].Index)

	require.NotNil(t, got.AvailableFrom)
	assert.Equal(t, "2025-09-01", got.AvailableFrom.Format(dateLayout))
	assert.Equal(t, 12, *got.LeaseDurationMonths)
	assert.Equal(t, 7.5, *got.Scores.Safety)
	assert.Len(t, got.Media, 2)
}

func TestUpdateListing_ReportsMediaFailures(t *testing.T) {
	env := newTestEnv()
	listingID := uuid.New()
	env.listings.updateUC = updateListingFunc(func(_ context.Context, p domain.Principal, id uuid.UUID, patch domain.ListingPatch) (*domain.SavedListing, error) {
		assert.Equal(t, brokerID, p.UserID)
		assert.Equal(t, listingID, id)
		assert.Len(t, patch.Media, 1)
		v := sampleView(id)
		return &domain.SavedListing{
			Listing:     &v,
			MediaErrors: []domain.MediaFailure{{Index: 0, URL: "https://cdn/a.jpg", Reason: "failed to store media"}},
		}, nil
	})

	body := `{"media": [{"media_type": "image", "url": "https://cdn/a.jpg"}]}`
	rec := do(t, env.router(), http.MethodPatch, "/api/v1/listings/"+listingID.String(), "broker-token", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeJSON[SavedListingResponse](t, rec)
	assert.Equal(t, listingID.String(), resp.Listing.ID)
	require.Len(t, resp.MediaErrors, 1)
	assert.Equal(t, "https://cdn/a.jpg", resp.MediaErrors[0].URL)
}

func TestRegister_AccountWithoutTokens(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()
	env.auth.registerUC = registerFunc(func(_ context.Context, in domain.RegistrationInput) (*domain.Account, *domain.TokenPair, error) {
		return &domain.Account{User: domain.User{ID: userID, Username: in.Username, Email: in.Email, Role: in.Role}}, nil, nil
	})

	body := `{"username": "kibo", "email": "kibo@example.com", "password": "s3cret-pass", "role": "broker"}`
	rec := do(t, env.router(), http.MethodPost, "/api/v1/auth/register", "", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeJSON[RegisterResponse](t, rec)
	assert.Equal(t, userID.String(), resp.Account.User.ID)
	assert.Nil(t, resp.Tokens)
}

func TestAddFavourite_ConflictOnDuplicate(t *testing.T) {
	env := newTestEnv()
	calls := 0
	env.social.addFavouriteUC = favouriteFunc(func(context.Context, domain.Principal, uuid.UUID) error {
		calls++
		if calls > 1 {
			return domain.ErrFavouriteExists
		}
		return nil
	})
	router := env.router()
	path := "/api/v1/listings/" + uuid.NewString() + "/favourite"

	assert.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, path, "student-token", "").Code)
	assert.Equal(t, http.StatusConflict, do(t, router, http.MethodPost, path, "student-token", "").Code)
}

func TestSearchNearAnchor_BuildsAnchor(t *testing.T) {
	env := newTestEnv()
	var got domain.AnchorQuery
	env.proximity.nearAnchorUC = nearAnchorFunc(func(_ context.Context, a domain.AnchorQuery, _ domain.ListingFilters, p domain.Pagination) (*domain.ListingPage, error) {
		got = a
		return domain.EmptyListingPage(p), nil
	})
	router := env.router()

	rec := do(t, router, http.MethodGet, "/api/v1/listings/near?lon=39.2&lat=-6.7&distance=3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Point)
	assert.Equal(t, domain.Point{Lon: 39.2, Lat: -6.7}, *got.Point)
	assert.Equal(t, 3.0, got.RadiusKm)

	universityID := uuid.New()
	rec = do(t, router, http.MethodGet, "/api/v1/listings/near?university_id="+universityID.String(), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, universityID, *got.UniversityID)
	assert.Equal(t, domain.DefaultRadiusKm, got.RadiusKm)

	rec = do(t, router, http.MethodGet, "/api/v1/listings/near?lon=39.2", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategories_AnonymousAndLabels(t *testing.T) {
	env := newTestEnv()
	var gotPrincipal *domain.Principal
	var gotQuery domain.CategoryQuery
	env.proximity.categoriesUC = categoriesFunc(func(_ context.Context, p *domain.Principal, q domain.CategoryQuery) (domain.MarketingCategories, error) {
		gotPrincipal, gotQuery = p, q
		return domain.NewMarketingCategories(), nil
	})

	rec := do(t, env.router(), http.MethodGet, "/api/v1/listings/categories?limit=3", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotPrincipal)
	assert.Equal(t, 3, gotQuery.Limit)
	resp := decodeJSON[map[string]CategoryResponse](t, rec)
	assert.Equal(t, "Near University", resp["near_university"].Label)
	assert.Equal(t, "Top Rated", resp["top_rated"].Label)
	assert.NotNil(t, resp["cheap"].Listings)
}

func TestCategories_ExplicitDistanceMustBePositive(t *testing.T) {
	env := newTestEnv()
	called := false
	env.proximity.categoriesUC = categoriesFunc(func(_ context.Context, _ *domain.Principal, _ domain.CategoryQuery) (domain.MarketingCategories, error) {
		called = true
		return domain.NewMarketingCategories(), nil
	})
	router := env.router()

	for _, distance := range []string{"0", "-1", "NaN"} {
		t.Run(distance, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, "/api/v1/listings/categories?distance="+distance, "", "")

			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeJSON[ErrorResponse](t, rec)
			assert.Contains(t, resp.Fields, "distance")
		})
	}
	assert.False(t, called)
}

func TestCategories_DistanceDefaultsOnlyWhenAbsent(t *testing.T) {
	env := newTestEnv()
	var got []float64
	env.proximity.categoriesUC = categoriesFunc(func(_ context.Context, _ *domain.Principal, q domain.CategoryQuery) (domain.MarketingCategories, error) {
		got = append(got, q.RadiusKm)
		return domain.NewMarketingCategories(), nil
	})
	router := env.router()

	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/listings/categories", "", "").Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/listings/categories?distance=2.5", "", "").Code)

	assert.Equal(t, []float64{domain.DefaultRadiusKm, 2.5}, got)
}

func TestSearchListings_OutOfRangePaginationRejected(t *testing.T) {
	env := newTestEnv()
	called := false
	env.listings.searchUC = searchListingsFunc(func(_ context.Context, _ domain.ListingFilters, _ domain.Pagination) (*domain.ListingPage, error) {
		called = true
		return domain.EmptyListingPage(domain.NewPagination(1, 10)), nil
	})

	rec := do(t, env.router(), http.MethodGet, "/api/v1/listings?page=-3&page_size=5000", "", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON[ErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "page")
	assert.Contains(t, resp.Fields, "page_size")
	assert.False(t, called)
}

func TestListPropertyTypes(t *testing.T) {
	rec := do(t, newTestEnv().router(), http.MethodGet, "/api/v1/listings/property-types", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[[]PropertyTypeResponse](t, rec)
	require.Len(t, resp, len(domain.PropertyTypes))
	assert.Contains(t, resp, PropertyTypeResponse{Value: "self_contained", Label: "Self Contained"})
}

func TestCancelEnquiry_ForbiddenForOwner(t *testing.T) {
	env := newTestEnv()
	env.enquiries.cancelUC = enquiryActionFunc(func(_ context.Context, p domain.Principal, _ uuid.UUID) (*domain.Enquiry, error) {
		if p.UserID != studentID {
			return nil, domain.ErrNotEnquiryRequester
		}
		return &domain.Enquiry{ID: uuid.New(), Status: domain.EnquiryCancelled}, nil
	})
	router := env.router()
	path := "/api/v1/enquiries/" + uuid.NewString() + "/cancel"

	rec := do(t, router, http.MethodPost, path, "broker-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, http.MethodPost, path, "student-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[EnquiryResponse](t, rec)
	assert.Equal(t, "cancelled", resp.Status)
	assert.False(t, resp.IsActive)
}

func TestSubscribe_StreamsEvents(t *testing.T) {
	sub := &fakeSubscriber{ch: make(notifier.ClientChannel, 1)}
	h := NewEnquiryHandlers(nil, nil, nil, nil, nil, nil, nil, nil, sub)

	ctx, cancel := context.WithCancel(context.Background())
	ctx = contextkeys.ContextWithPrincipal(ctx, domain.Principal{UserID: studentID, Role: domain.RoleStudent})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	sub.ch <- []byte("event: enquiry.message\ndata: {}\n\n")
	done := make(chan struct{})
	go func() {
		h.Subscribe(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return len(sub.ch) == 0
	}, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: connected\ndata: {}\n\n"))
	assert.Contains(t, body, "event: enquiry.message\n")
	assert.True(t, sub.removed)
}

func TestLoggerMiddleware_EchoesTraceID(t *testing.T) {
	traceID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/property-types", nil)
	req.Header.Set(constants.TraceIDHeader, traceID)
	rec := httptest.NewRecorder()

	newTestEnv().router().ServeHTTP(rec, req)

	assert.Equal(t, traceID, rec.Header().Get(constants.TraceIDHeader))
}
