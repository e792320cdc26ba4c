package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

var errStorage = errors.New("storage unavailable")

// --- listings ---

type fakeListingRepo struct {
	listings  map[uuid.UUID]*domain.Listing
	amenities map[uuid.UUID][]uuid.UUID
	views     map[uuid.UUID]int64
	createErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		listings:  map[uuid.UUID]*domain.Listing{},
		amenities: map[uuid.UUID][]uuid.UUID{},
		views:     map[uuid.UUID]int64{},
	}
}

func (r *fakeListingRepo) put(l *domain.Listing) *domain.Listing {
	r.listings[l.ID] = l
	return l
}

func (r *fakeListingRepo) Create(ctx context.Context, l *domain.Listing, amenityIDs []uuid.UUID) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *l
	r.listings[l.ID] = &copied
	r.amenities[l.ID] = amenityIDs
	return nil
}

func (r *fakeListingRepo) Update(ctx context.Context, l *domain.Listing, amenityIDs *[]uuid.UUID) error {
	if _, ok := r.listings[l.ID]; !ok {
		return domain.ErrListingNotFound
	}
	copied := *l
	r.listings[l.ID] = &copied
	if amenityIDs != nil {
		r.amenities[l.ID] = *amenityIDs
	}
	return nil
}

func (r *fakeListingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeListingRepo) GetView(ctx context.Context, id uuid.UUID) (*domain.ListingView, error) {
	l, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &domain.ListingView{Listing: *l}
	for _, aid := range r.amenities[id] {
		view.Amenities = append(view.Amenities, domain.Amenity{ID: aid})
	}
	return view, nil
}

func (r *fakeListingRepo) Find(ctx context.Context, f domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	out := domain.EmptyListingPage(page)
	for _, l := range r.sorted() {
		if !l.IsAvailable {
			continue
		}
		if f.OwnerID != nil && l.OwnerID != *f.OwnerID {
			continue
		}
		out.Listings = append(out.Listings, domain.ListingView{Listing: *l})
	}
	out.TotalCount = len(out.Listings)
	return out, nil
}

func (r *fakeListingRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ListingView, error) {
	out := []domain.ListingView{}
	for _, id := range ids {
		if l, ok := r.listings[id]; ok && l.IsAvailable {
			out = append(out, domain.ListingView{Listing: *l})
		}
	}
	return out, nil
}

func (r *fakeListingRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	l, ok := r.listings[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	l.IsAvailable = available
	return nil
}

func (r *fakeListingRepo) RecordView(ctx context.Context, id uuid.UUID, at time.Time) error {
	l, ok := r.listings[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	l.ViewCount++
	l.LastViewed = &at
	return nil
}

func (r *fakeListingRepo) sorted() []*domain.Listing {
	out := make([]*domain.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (r *fakeListingRepo) pick(limit int, keep func(*domain.Listing) bool) []domain.ListingView {
	out := []domain.ListingView{}
	for _, l := range r.sorted() {
		if l.IsAvailable && keep(l) && len(out) < limit {
			out = append(out, domain.ListingView{Listing: *l})
		}
	}
	return out
}

func (r *fakeListingRepo) FindCheapest(ctx context.Context, min, max float64, limit int) ([]domain.ListingView, error) {
	return r.pick(limit, func(l *domain.Listing) bool { return l.Price >= min && l.Price <= max }), nil
}

func (r *fakeListingRepo) FindTopRated(ctx context.Context, limit int) ([]domain.ListingView, error) {
	return []domain.ListingView{}, nil
}

func (r *fakeListingRepo) FindSpecialNeeds(ctx context.Context, limit int) ([]domain.ListingView, error) {
	return r.pick(limit, func(l *domain.Listing) bool { return l.IsSpecialNeeds }), nil
}

func (r *fakeListingRepo) FindMostViewed(ctx context.Context, limit int) ([]domain.ListingView, error) {
	return r.pick(limit, func(l *domain.Listing) bool { return true }), nil
}

// --- geo index ---

// fakeGeoIndex считает расстояния по haversine над листингами из fakeListingRepo
type fakeGeoIndex struct {
	listings   *fakeListingRepo
	lastAnchor *domain.Point
	lastRadius float64
	calls      int
}

func (g *fakeGeoIndex) WithinRadius(ctx context.Context, anchor domain.Point, radiusKm float64, f domain.ListingFilters, page domain.Pagination) (*domain.ListingPage, error) {
	g.calls++
	g.lastAnchor = &anchor
	g.lastRadius = radiusKm

	out := domain.EmptyListingPage(page)
	for _, l := range g.listings.sorted() {
		if !l.IsAvailable {
			continue
		}
		d := anchor.DistanceKm(l.Location)
		if d > radiusKm {
			continue
		}
		view := domain.ListingView{Listing: *l, DistanceKm: &d}
		out.Listings = append(out.Listings, view)
	}
	sort.SliceStable(out.Listings, func(i, j int) bool {
		return *out.Listings[i].DistanceKm < *out.Listings[j].DistanceKm
	})
	out.TotalCount = len(out.Listings)
	return out, nil
}

// --- media ---

type fakeMediaRepo struct {
	media   map[uuid.UUID]domain.Media
	failURL string
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: map[uuid.UUID]domain.Media{}}
}

func (r *fakeMediaRepo) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Media, error) {
	out := []domain.Media{}
	for _, m := range r.media {
		if m.ListingID == listingID {
			out = append(out, m)
		}
	}
	domain.SortMedia(out)
	return out, nil
}

func (r *fakeMediaRepo) Add(ctx context.Context, m *domain.Media) error {
	if r.failURL != "" && m.URL == r.failURL {
		return errStorage
	}
	r.media[m.ID] = *m
	return nil
}

func (r *fakeMediaRepo) Remove(ctx context.Context, listingID, mediaID uuid.UUID) error {
	m, ok := r.media[mediaID]
	if !ok || m.ListingID != listingID {
		return domain.ErrMediaNotFound
	}
	delete(r.media, mediaID)
	return nil
}

func (r *fakeMediaRepo) RemoveAll(ctx context.Context, listingID uuid.UUID) error {
	for id, m := range r.media {
		if m.ListingID == listingID {
			delete(r.media, id)
		}
	}
	return nil
}

func (r *fakeMediaRepo) SetPrimary(ctx context.Context, listingID, mediaID uuid.UUID) error {
	for id, m := range r.media {
		if m.ListingID == listingID {
			m.IsPrimary = id == mediaID
			r.media[id] = m
		}
	}
	return nil
}

// --- amenities ---

type fakeAmenityRepo struct {
	amenities map[uuid.UUID]domain.Amenity
}

func newFakeAmenityRepo(names ...string) *fakeAmenityRepo {
	r := &fakeAmenityRepo{amenities: map[uuid.UUID]domain.Amenity{}}
	for _, n := range names {
		id := uuid.New()
		r.amenities[id] = domain.Amenity{ID: id, Name: n}
	}
	return r
}

func (r *fakeAmenityRepo) ids() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(r.amenities))
	for id := range r.amenities {
		out = append(out, id)
	}
	return out
}

func (r *fakeAmenityRepo) List(ctx context.Context) ([]domain.Amenity, error) {
	out := make([]domain.Amenity, 0, len(r.amenities))
	for _, a := range r.amenities {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAmenityRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Amenity, error) {
	out := []domain.Amenity{}
	for _, id := range ids {
		if a, ok := r.amenities[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAmenityRepo) GetOrCreate(ctx context.Context, a *domain.Amenity) (bool, error) {
	for _, existing := range r.amenities {
		if strings.EqualFold(existing.Name, a.Name) {
			a.ID = existing.ID
			return false, nil
		}
	}
	r.amenities[a.ID] = *a
	return true, nil
}

func (r *fakeAmenityRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(r.amenities))
	r.amenities = map[uuid.UUID]domain.Amenity{}
	return n, nil
}

func (r *fakeAmenityRepo) Count(ctx context.Context) (int, error) {
	return len(r.amenities), nil
}

// --- nearby places ---

type fakePlaceRepo struct {
	places map[uuid.UUID]domain.NearbyPlace
	links  map[[2]uuid.UUID]domain.ListingNearbyPlace
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{
		places: map[uuid.UUID]domain.NearbyPlace{},
		links:  map[[2]uuid.UUID]domain.ListingNearbyPlace{},
	}
}

func (r *fakePlaceRepo) Create(ctx context.Context, p *domain.NearbyPlace) error {
	r.places[p.ID] = *p
	return nil
}

func (r *fakePlaceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.NearbyPlace, error) {
	p, ok := r.places[id]
	if !ok {
		return nil, domain.ErrNearbyPlaceNotFound
	}
	return &p, nil
}

func (r *fakePlaceRepo) List(ctx context.Context, placeType *domain.PlaceType) ([]domain.NearbyPlace, error) {
	out := []domain.NearbyPlace{}
	for _, p := range r.places {
		if placeType == nil || p.PlaceType == *placeType {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlaceRepo) Link(ctx context.Context, link domain.ListingNearbyPlace) error {
	key := [2]uuid.UUID{link.ListingID, link.Place.ID}
	if _, ok := r.links[key]; ok {
		return domain.ErrNearbyPlaceLinked
	}
	r.links[key] = link
	return nil
}

func (r *fakePlaceRepo) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.ListingNearbyPlace, error) {
	out := []domain.ListingNearbyPlace{}
	for key, l := range r.links {
		if key[0] == listingID {
			out = append(out, l)
		}
	}
	return out, nil
}

// --- universities ---

type fakeUniversityRepo struct {
	universities map[uuid.UUID]*domain.University
	campuses     map[uuid.UUID]*domain.Campus
}

func newFakeUniversityRepo() *fakeUniversityRepo {
	return &fakeUniversityRepo{
		universities: map[uuid.UUID]*domain.University{},
		campuses:     map[uuid.UUID]*domain.Campus{},
	}
}

func (r *fakeUniversityRepo) add(name string, p domain.Point) *domain.University {
	u := &domain.University{ID: uuid.New(), Name: name, Address: name, Location: p}
	r.universities[u.ID] = u
	return u
}

func (r *fakeUniversityRepo) Create(ctx context.Context, u *domain.University) error {
	for _, existing := range r.universities {
		if existing.Name == u.Name {
			return domain.ErrUniversityNameInUse
		}
	}
	copied := *u
	r.universities[u.ID] = &copied
	return nil
}

func (r *fakeUniversityRepo) Update(ctx context.Context, u *domain.University) error {
	copied := *u
	r.universities[u.ID] = &copied
	return nil
}

func (r *fakeUniversityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.universities[id]; !ok {
		return domain.ErrAnchorNotFound
	}
	delete(r.universities, id)
	return nil
}

func (r *fakeUniversityRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.University, error) {
	u, ok := r.universities[id]
	if !ok {
		return nil, domain.ErrAnchorNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUniversityRepo) List(ctx context.Context, search string, page domain.Pagination) ([]domain.University, int, error) {
	out := []domain.University{}
	for _, u := range r.universities {
		if search == "" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(search)) {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (r *fakeUniversityRepo) FindFirst(ctx context.Context) (*domain.University, error) {
	var first *domain.University
	for _, u := range r.universities {
		if first == nil || u.Name < first.Name {
			first = u
		}
	}
	return first, nil
}

func (r *fakeUniversityRepo) GetOrCreateByName(ctx context.Context, u *domain.University) (bool, error) {
	for _, existing := range r.universities {
		if existing.Name == u.Name {
			u.ID = existing.ID
			return false, nil
		}
	}
	return true, r.Create(ctx, u)
}

func (r *fakeUniversityRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(r.universities))
	r.universities = map[uuid.UUID]*domain.University{}
	return n, nil
}

func (r *fakeUniversityRepo) CreateCampus(ctx context.Context, c *domain.Campus) error {
	copied := *c
	r.campuses[c.ID] = &copied
	return nil
}

func (r *fakeUniversityRepo) UpdateCampus(ctx context.Context, c *domain.Campus) error {
	return r.CreateCampus(ctx, c)
}

func (r *fakeUniversityRepo) DeleteCampus(ctx context.Context, universityID, campusID uuid.UUID) error {
	c, ok := r.campuses[campusID]
	if !ok || c.UniversityID != universityID {
		return domain.ErrCampusNotFound
	}
	delete(r.campuses, campusID)
	return nil
}

func (r *fakeUniversityRepo) FindCampus(ctx context.Context, id uuid.UUID) (*domain.Campus, error) {
	c, ok := r.campuses[id]
	if !ok {
		return nil, domain.ErrCampusNotFound
	}
	copied := *c
	return &copied, nil
}

// --- users ---

type fakeUserRepo struct {
	accounts map[uuid.UUID]*domain.Account
	verified map[uuid.UUID]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{accounts: map[uuid.UUID]*domain.Account{}, verified: map[uuid.UUID]bool{}}
}

func (r *fakeUserRepo) addStudent(universityID *uuid.UUID) domain.Principal {
	id := uuid.New()
	r.accounts[id] = &domain.Account{
		User:    domain.User{ID: id, Role: domain.RoleStudent},
		Student: &domain.StudentProfile{UserID: id, UniversityID: universityID},
	}
	return domain.Principal{UserID: id, Role: domain.RoleStudent}
}

func (r *fakeUserRepo) CreateAccount(ctx context.Context, a *domain.Account) error {
	for _, existing := range r.accounts {
		if existing.User.Email == a.User.Email {
			return domain.ErrEmailInUse
		}
		if existing.User.Username == a.User.Username {
			return domain.ErrUsernameInUse
		}
	}
	copied := *a
	r.accounts[a.User.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	for _, a := range r.accounts {
		if a.User.Username == login || a.User.Email == strings.ToLower(login) {
			u := a.User
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := a.User
	return &u, nil
}

func (r *fakeUserRepo) FindAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeUserRepo) FindStudentProfile(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error) {
	a, ok := r.accounts[userID]
	if !ok || a.Student == nil {
		return nil, nil
	}
	p := *a.Student
	return &p, nil
}

func (r *fakeUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	a.User.EmailVerified = true
	r.verified[id] = true
	return nil
}

// --- favourites ---

type fakeFavouriteRepo struct {
	favourites []domain.Favourite
}

func (r *fakeFavouriteRepo) Add(ctx context.Context, f *domain.Favourite) error {
	for _, existing := range r.favourites {
		if existing.UserID == f.UserID && existing.ListingID == f.ListingID {
			return domain.ErrFavouriteExists
		}
	}
	r.favourites = append(r.favourites, *f)
	return nil
}

func (r *fakeFavouriteRepo) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	for i, f := range r.favourites {
		if f.UserID == userID && f.ListingID == listingID {
			r.favourites = append(r.favourites[:i], r.favourites[i+1:]...)
			return nil
		}
	}
	return domain.ErrFavouriteNotFound
}

func (r *fakeFavouriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favourite, error) {
	out := []domain.Favourite{}
	for i := len(r.favourites) - 1; i >= 0; i-- {
		if r.favourites[i].UserID == userID {
			out = append(out, r.favourites[i])
		}
	}
	return out, nil
}

func (r *fakeFavouriteRepo) TopFavourited(ctx context.Context, limit int) ([]domain.FavouriteCount, error) {
	counts := map[uuid.UUID]int{}
	for _, f := range r.favourites {
		counts[f.ListingID]++
	}
	out := make([]domain.FavouriteCount, 0, len(counts))
	for id, c := range counts {
		out = append(out, domain.FavouriteCount{ListingID: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ListingID.String() < out[j].ListingID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- reviews ---

type fakeReviewRepo struct {
	reviews []domain.Review
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	for _, existing := range r.reviews {
		if existing.ListingID == review.ListingID && existing.ReviewerID == review.ReviewerID {
			return domain.ErrDuplicateReview
		}
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ListingID == listingID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ReviewerID == reviewerID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// --- enquiries ---

type fakeEnquiryRepo struct {
	enquiries map[uuid.UUID]*domain.Enquiry
	messages  map[uuid.UUID][]domain.EnquiryMessage
	// afterFind вызывается после чтения, чтобы изменить хранимую переписку до записи
	afterFind func(stored *domain.Enquiry)
}

func newFakeEnquiryRepo() *fakeEnquiryRepo {
	return &fakeEnquiryRepo{
		enquiries: map[uuid.UUID]*domain.Enquiry{},
		messages:  map[uuid.UUID][]domain.EnquiryMessage{},
	}
}

func (r *fakeEnquiryRepo) CreateWithMessage(ctx context.Context, e *domain.Enquiry, first *domain.EnquiryMessage) error {
	for _, existing := range r.enquiries {
		if existing.IsActive && existing.ListingID == e.ListingID && existing.RequesterID == e.RequesterID {
			return domain.ErrDuplicateEnquiry
		}
	}
	copied := *e
	r.enquiries[e.ID] = &copied
	r.messages[e.ID] = []domain.EnquiryMessage{*first}
	return nil
}

func (r *fakeEnquiryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Enquiry, error) {
	e, ok := r.enquiries[id]
	if !ok {
		return nil, domain.ErrEnquiryNotFound
	}
	copied := *e
	if r.afterFind != nil {
		r.afterFind(e)
	}
	return &copied, nil
}

func (r *fakeEnquiryRepo) List(ctx context.Context, f domain.EnquiryFilters) ([]domain.Enquiry, error) {
	out := []domain.Enquiry{}
	for _, e := range r.enquiries {
		if !e.IsParticipant(f.ParticipantID) {
			continue
		}
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEnquiryRepo) AddMessage(ctx context.Context, e *domain.Enquiry, from domain.EnquiryStatus, msg *domain.EnquiryMessage) error {
	if err := r.checkStatus(e.ID, from); err != nil {
		return err
	}
	copied := *e
	r.enquiries[e.ID] = &copied
	r.messages[e.ID] = append(r.messages[e.ID], *msg)
	return nil
}

func (r *fakeEnquiryRepo) UpdateStatus(ctx context.Context, e *domain.Enquiry, from domain.EnquiryStatus) error {
	if err := r.checkStatus(e.ID, from); err != nil {
		return err
	}
	copied := *e
	r.enquiries[e.ID] = &copied
	return nil
}

func (r *fakeEnquiryRepo) checkStatus(id uuid.UUID, from domain.EnquiryStatus) error {
	stored, ok := r.enquiries[id]
	if !ok || stored.Status != from {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *fakeEnquiryRepo) ListMessages(ctx context.Context, enquiryID uuid.UUID) ([]domain.EnquiryMessage, error) {
	return append([]domain.EnquiryMessage(nil), r.messages[enquiryID]...), nil
}

func (r *fakeEnquiryRepo) MarkRead(ctx context.Context, enquiryID, readerID uuid.UUID) (int64, error) {
	var n int64
	msgs := r.messages[enquiryID]
	for i := range msgs {
		if msgs[i].SenderID != readerID && !msgs[i].IsRead {
			msgs[i].IsRead = true
			n++
		}
	}
	return n, nil
}

// --- adapters ---

type fakeTokenService struct{}

func (fakeTokenService) GenerateToken(ctx context.Context, c domain.Claims, ttl time.Duration) (string, error) {
	return fmt.Sprintf("%s|%s|%s", c.Type, c.UserID, c.Role), nil
}

func (fakeTokenService) ValidateToken(ctx context.Context, token string, expected domain.TokenType) (*domain.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 || domain.TokenType(parts[0]) != expected {
		return nil, domain.ErrTokenInvalid
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.Claims{UserID: id, Role: domain.Role(parts[2]), Type: expected}, nil
}

type fakeMailer struct {
	sent []domain.VerificationEmail
	err  error
}

func (m *fakeMailer) SendVerificationEmail(ctx context.Context, email domain.VerificationEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type fakeEmailSender struct {
	sent []domain.EmailMessage
	err  error
}

func (s *fakeEmailSender) Send(ctx context.Context, msg domain.EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeRecentlyViewed struct {
	mu   sync.Mutex
	data map[string]domain.RecentlyViewed
}

func newFakeRecentlyViewed() *fakeRecentlyViewed {
	return &fakeRecentlyViewed{data: map[string]domain.RecentlyViewed{}}
}

func (s *fakeRecentlyViewed) Push(ctx context.Context, key string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = s.data[key].Push(id)
	return nil
}

func (s *fakeRecentlyViewed) List(ctx context.Context, key string) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.data[key]...), nil
}

type fakeNotifier struct {
	events []port.EnquiryEvent
}

func (n *fakeNotifier) Notify(ctx context.Context, e port.EnquiryEvent) {
	n.events = append(n.events, e)
}

// --- helpers ---

func testListing(owner uuid.UUID, p domain.Point, price float64) *domain.Listing {
	return &domain.Listing{
		ID:           uuid.New(),
		OwnerID:      owner,
		Title:        "Listing",
		PropertyType: domain.PropertyHostel,
		Price:        price,
		Address:      "Dar es Salaam",
		Location:     p,
		IsAvailable:  true,
		CreatedAt:    time.Now().UTC(),
	}
}

// pointEastKm - точка на экваторе в km километрах к востоку от (0,0)
func pointEastKm(km float64) domain.Point {
	return domain.Point{Lon: km / 111.19492664455873, Lat: 0}
}
