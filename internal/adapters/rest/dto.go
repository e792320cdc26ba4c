package rest

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// date - календарная дата в формате YYYY-MM-DD
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// label превращает "shared_room" в "Shared Room"
func label(value string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(value, "_", " "))
}

// --- Запросы ---

type RegisterRequest struct {
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Password     string     `json:"password"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Mobile       string     `json:"mobile"`
	Role         string     `json:"role"`
	UniversityID *uuid.UUID `json:"university_id"`
	Course       string     `json:"course"`
	Year         string     `json:"year"`
	CompanyName  string     `json:"company_name"`
}

func (r RegisterRequest) toInput() domain.RegistrationInput {
	return domain.RegistrationInput{
		Username:     r.Username,
		Email:        r.Email,
		Password:     r.Password,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Mobile:       r.Mobile,
		Role:         domain.Role(r.Role),
		UniversityID: r.UniversityID,
		Course:       r.Course,
		Year:         r.Year,
		CompanyName:  r.CompanyName,
	}
}

// LoginRequest - вход по имени пользователя или email
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type MediaRequest struct {
	MediaType   string `json:"media_type"`
	URL         string `json:"url"`
	ContentHash string `json:"content_hash"`
}

func toMediaInputs(items []MediaRequest) []domain.MediaInput {
	out := make([]domain.MediaInput, len(items))
	for i, m := range items {
		out[i] = domain.MediaInput{MediaType: domain.MediaType(m.MediaType), URL: m.URL, ContentHash: m.ContentHash}
	}
	return out
}

type scoresRequest struct {
	Safety         *float64 `json:"safety_score"`
	Transportation *float64 `json:"transportation_score"`
	Amenities      *float64 `json:"amenities_score"`
	Overall        *float64 `json:"overall_score"`
}

func (s scoresRequest) empty() bool {
	return s.Safety == nil && s.Transportation == nil && s.Amenities == nil && s.Overall == nil
}

func (s scoresRequest) toDomain() domain.Scores {
	return domain.Scores{Safety: s.Safety, Transportation: s.Transportation, Amenities: s.Amenities, Overall: s.Overall}
}

type CreateListingRequest struct {
	Title           string       `json:"title"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	PropertyType    string       `json:"property_type"`
	Price           float64      `json:"price"`
	Bedrooms        int          `json:"bedrooms"`
	Toilets         int          `json:"toilets"`
	Address         string       `json:"address"`
	Location        domain.Point `json:"location"`
	Size            string       `json:"size"`
	AvailableFrom   *date        `json:"available_from"`
	LeaseDuration   *int         `json:"lease_duration"`
	IsFurnished     bool         `json:"is_furnished"`
	IsSpecialNeeds  bool         `json:"is_special_needs"`
	IsFenced        bool         `json:"is_fenced"`
	WindowsType     string       `json:"windows_type"`
	ElectricityType string       `json:"electricity_type"`
	WaterSupply     bool         `json:"water_supply"`
	scoresRequest
	AmenityIDs []uuid.UUID     `json:"amenity_ids"`
	Media      []MediaRequest `json:"media"`
}

func (r CreateListingRequest) toInput() domain.ListingInput {
	return domain.ListingInput{
		Title:               r.Title,
		Name:                r.Name,
		Description:         r.Description,
		PropertyType:        domain.PropertyType(r.PropertyType),
		Price:               r.Price,
		Bedrooms:            r.Bedrooms,
		Toilets:             r.Toilets,
		Address:             r.Address,
		Location:            r.Location,
		Size:                r.Size,
		AvailableFrom:       r.AvailableFrom.ptr(),
		LeaseDurationMonths: r.LeaseDuration,
		IsFurnished:         r.IsFurnished,
		IsSpecialNeeds:      r.IsSpecialNeeds,
		IsFenced:            r.IsFenced,
		WindowsType:         domain.WindowsType(r.WindowsType),
		ElectricityType:     domain.ElectricityType(r.ElectricityType),
		WaterSupply:         r.WaterSupply,
		Scores:              r.scoresRequest.toDomain(),
		AmenityIDs:          r.AmenityIDs,
		Media:               toMediaInputs(r.Media),
	}
}

type UpdateListingRequest struct {
	Title           *string       `json:"title"`
	Name            *string       `json:"name"`
	Description     *string       `json:"description"`
	PropertyType    *string       `json:"property_type"`
	Price           *float64      `json:"price"`
	Bedrooms        *int          `json:"bedrooms"`
	Toilets         *int          `json:"toilets"`
	Address         *string       `json:"address"`
	Location        *domain.Point `json:"location"`
	Size            *string       `json:"size"`
	AvailableFrom   *date         `json:"available_from"`
	LeaseDuration   *int          `json:"lease_duration"`
	IsFurnished     *bool         `json:"is_furnished"`
	IsSpecialNeeds  *bool         `json:"is_special_needs"`
	IsAvailable     *bool         `json:"is_available"`
	IsFenced        *bool         `json:"is_fenced"`
	WindowsType     *string       `json:"windows_type"`
	ElectricityType *string       `json:"electricity_type"`
	WaterSupply     *bool         `json:"water_supply"`
	scoresRequest
	AmenityIDs   *[]uuid.UUID   `json:"amenity_ids"`
	Media        []MediaRequest `json:"media"`
	ReplaceMedia bool           `json:"replace_media"`
}

func (r UpdateListingRequest) toPatch() domain.ListingPatch {
	patch := domain.ListingPatch{
		Title:               r.Title,
		Name:                r.Name,
		Description:         r.Description,
		Price:               r.Price,
		Bedrooms:            r.Bedrooms,
		Toilets:             r.Toilets,
		Address:             r.Address,
		Location:            r.Location,
		Size:                r.Size,
		AvailableFrom:       r.AvailableFrom.ptr(),
		LeaseDurationMonths: r.LeaseDuration,
		IsFurnished:         r.IsFurnished,
		IsSpecialNeeds:      r.IsSpecialNeeds,
		IsAvailable:         r.IsAvailable,
		IsFenced:            r.IsFenced,
		WaterSupply:         r.WaterSupply,
		AmenityIDs:          r.AmenityIDs,
		Media:               toMediaInputs(r.Media),
		ReplaceMedia:        r.ReplaceMedia,
	}
	if r.PropertyType != nil {
		t := domain.PropertyType(*r.PropertyType)
		patch.PropertyType = &t
	}
	if r.WindowsType != nil {
		w := domain.WindowsType(*r.WindowsType)
		patch.WindowsType = &w
	}
	if r.ElectricityType != nil {
		e := domain.ElectricityType(*r.ElectricityType)
		patch.ElectricityType = &e
	}
	if !r.scoresRequest.empty() {
		s := r.scoresRequest.toDomain()
		patch.Scores = &s
	}
	return patch
}

type AddMediaRequest struct {
	Media []MediaRequest `json:"media"`
}

type CreateEnquiryRequest struct {
	ListingID uuid.UUID `json:"listing_id"`
	Message   string    `json:"message"`
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type UniversityRequest struct {
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Website  string       `json:"website"`
	LogoURL  string       `json:"logo_url"`
	Location domain.Point `json:"location"`
}

func (r UniversityRequest) toInput() domain.UniversityInput {
	return domain.UniversityInput{Name: r.Name, Address: r.Address, Website: r.Website, LogoURL: r.LogoURL, Location: r.Location}
}

type CampusRequest struct {
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Location domain.Point `json:"location"`
}

func (r CampusRequest) toInput() domain.CampusInput {
	return domain.CampusInput{Name: r.Name, Address: r.Address, Location: r.Location}
}

type NearbyPlaceRequest struct {
	Name      string       `json:"name"`
	PlaceType string       `json:"place_type"`
	Address   string       `json:"address"`
	Location  domain.Point `json:"location"`
}

func (r NearbyPlaceRequest) toInput() domain.NearbyPlaceInput {
	return domain.NearbyPlaceInput{Name: r.Name, PlaceType: domain.PlaceType(r.PlaceType), Address: r.Address, Location: r.Location}
}

type AttachNearbyPlaceRequest struct {
	PlaceID uuid.UUID `json:"place_id"`
}

// --- Ответы ---

type AmenityResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MediaResponse struct {
	ID           string    `json:"id"`
	MediaType    string    `json:"media_type"`
	URL          string    `json:"url"`
	ContentHash  string    `json:"content_hash,omitempty"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type MediaFailureResponse struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

type NearbyPlaceResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	PlaceType string       `json:"place_type"`
	Address   string       `json:"address"`
	Location  domain.Point `json:"location"`
}

type ListingNearbyPlaceResponse struct {
	Place          NearbyPlaceResponse `json:"place"`
	DistanceKm     float64             `json:"distance_km"`
	WalkingMinutes int                 `json:"walking_minutes"`
}

type RatingResponse struct {
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

type ListingResponse struct {
	ID              string       `json:"id"`
	OwnerID         string       `json:"owner_id"`
	Title           string       `json:"title"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	PropertyType    string       `json:"property_type"`
	Price           float64      `json:"price"`
	Bedrooms        int          `json:"bedrooms"`
	Toilets         int          `json:"toilets"`
	Address         string       `json:"address"`
	Location        domain.Point `json:"location"`
	Geohash         string       `json:"geohash"`
	Size            string       `json:"size,omitempty"`
	AvailableFrom   *string      `json:"available_from"`
	LeaseDuration   *int         `json:"lease_duration"`
	IsFurnished     bool         `json:"is_furnished"`
	IsSpecialNeeds  bool         `json:"is_special_needs"`
	IsAvailable     bool         `json:"is_available"`
	IsFenced        bool         `json:"is_fenced"`
	WindowsType     string       `json:"windows_type,omitempty"`
	ElectricityType string       `json:"electricity_type,omitempty"`
	WaterSupply     bool         `json:"water_supply"`
	ViewCount       int64        `json:"view_count"`
	LastViewed      *time.Time   `json:"last_viewed"`
	domain.Scores
	Amenities    []AmenityResponse            `json:"amenities"`
	Media        []MediaResponse              `json:"media"`
	NearbyPlaces []ListingNearbyPlaceResponse `json:"nearby_places"`
	Rating       RatingResponse               `json:"rating"`
	DistanceKm   *float64                     `json:"distance_km,omitempty"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

type PaginatedListingsResponse struct {
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	Data       []ListingResponse `json:"data"`
}

type SavedListingResponse struct {
	Listing     ListingResponse        `json:"listing"`
	MediaErrors []MediaFailureResponse `json:"media_errors,omitempty"`
}

type AddMediaResponse struct {
	Media  []MediaResponse        `json:"media"`
	Failed []MediaFailureResponse `json:"failed,omitempty"`
}

type CategoryResponse struct {
	Label    string            `json:"label"`
	Listings []ListingResponse `json:"listings"`
}

type PropertyTypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Mobile        string    `json:"mobile,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

type StudentProfileResponse struct {
	UniversityID *string `json:"university_id"`
	Course       string  `json:"course"`
	Year         string  `json:"year,omitempty"`
}

type BrokerProfileResponse struct {
	CompanyName string `json:"company_name"`
}

type AccountResponse struct {
	User           UserResponse            `json:"user"`
	StudentProfile *StudentProfileResponse `json:"student_profile,omitempty"`
	BrokerProfile  *BrokerProfileResponse  `json:"broker_profile,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

// RegisterResponse - tokens отсутствует, если выпустить их не удалось
type RegisterResponse struct {
	Account AccountResponse `json:"account"`
	Tokens  *TokenResponse  `json:"tokens,omitempty"`
}

type CampusResponse struct {
	ID           string       `json:"id"`
	UniversityID string       `json:"university_id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	Location     domain.Point `json:"location"`
}

type UniversityResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	Website  string           `json:"website,omitempty"`
	LogoURL  string           `json:"logo_url,omitempty"`
	Location domain.Point     `json:"location"`
	Campuses []CampusResponse `json:"campuses"`
}

type PaginatedUniversitiesResponse struct {
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Data     []UniversityResponse `json:"data"`
}

type FavouriteResponse struct {
	Listing      ListingResponse `json:"listing"`
	FavouritedAt time.Time       `json:"favourited_at"`
}

type TopFavouriteResponse struct {
	Listing         ListingResponse `json:"listing"`
	FavouritesCount int             `json:"favourites_count"`
}

type ReviewResponse struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listing_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListingReviewsResponse struct {
	Rating  RatingResponse   `json:"rating"`
	Reviews []ReviewResponse `json:"reviews"`
}

type EnquiryResponse struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listing_id"`
	ListingTitle string    `json:"listing_title,omitempty"`
	RequesterID  string    `json:"requester_id"`
	OwnerID      string    `json:"owner_id"`
	Status       string    `json:"status"`
	IsActive     bool      `json:"is_active"`
	UnreadCount  int       `json:"unread_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	EnquiryID string    `json:"enquiry_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type MarkReadResponse struct {
	MarkedRead int64 `json:"marked_read"`
}

// --- Маппинг ---

func toAmenityResponses(items []domain.Amenity) []AmenityResponse {
	out := make([]AmenityResponse, len(items))
	for i, a := range items {
		out[i] = AmenityResponse{ID: a.ID.String(), Name: a.Name, Description: a.Description, Icon: a.Icon}
	}
	return out
}

func toMediaResponse(m domain.Media) MediaResponse {
	return MediaResponse{
		ID:           m.ID.String(),
		MediaType:    string(m.MediaType),
		URL:          m.URL,
		ContentHash:  m.ContentHash,
		IsPrimary:    m.IsPrimary,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
	}
}

func toMediaResponses(items []domain.Media) []MediaResponse {
	out := make([]MediaResponse, len(items))
	for i, m := range items {
		out[i] = toMediaResponse(m)
	}
	return out
}

func toMediaFailureResponses(items []domain.MediaFailure) []MediaFailureResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]MediaFailureResponse, len(items))
	for i, f := range items {
		out[i] = MediaFailureResponse{Index: f.Index, URL: f.URL, Reason: f.Reason}
	}
	return out
}

func toNearbyPlaceResponse(p domain.NearbyPlace) NearbyPlaceResponse {
	return NearbyPlaceResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		PlaceType: string(p.PlaceType),
		Address:   p.Address,
		Location:  p.Location,
	}
}

func toListingNearbyPlaceResponse(p domain.ListingNearbyPlace) ListingNearbyPlaceResponse {
	return ListingNearbyPlaceResponse{
		Place:          toNearbyPlaceResponse(p.Place),
		DistanceKm:     p.DistanceKm,
		WalkingMinutes: p.WalkingMinutes,
	}
}

func toRatingResponse(r domain.RatingSummary) RatingResponse {
	return RatingResponse{Average: r.Average, Count: r.Count}
}

func toListingResponse(v domain.ListingView) ListingResponse {
	l := v.Listing
	resp := ListingResponse{
		ID:              l.ID.String(),
		OwnerID:         l.OwnerID.String(),
		Title:           l.Title,
		Name:            l.Name,
		Description:     l.Description,
		PropertyType:    string(l.PropertyType),
		Price:           l.Price,
		Bedrooms:        l.Bedrooms,
		Toilets:         l.Toilets,
		Address:         l.Address,
		Location:        l.Location,
		Geohash:         l.Geohash,
		Size:            l.Size,
		AvailableFrom:   formatDate(l.AvailableFrom),
		LeaseDuration:   l.LeaseDurationMonths,
		IsFurnished:     l.IsFurnished,
		IsSpecialNeeds:  l.IsSpecialNeeds,
		IsAvailable:     l.IsAvailable,
		IsFenced:        l.IsFenced,
		WindowsType:     string(l.WindowsType),
		ElectricityType: string(l.ElectricityType),
		WaterSupply:     l.WaterSupply,
		ViewCount:       l.ViewCount,
		LastViewed:      l.LastViewed,
		Scores:          l.Scores,
		Amenities:       toAmenityResponses(v.Amenities),
		Media:           toMediaResponses(v.Media),
		NearbyPlaces:    make([]ListingNearbyPlaceResponse, len(v.NearbyPlaces)),
		Rating:          toRatingResponse(v.Rating),
		DistanceKm:      v.DistanceKm,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	for i, p := range v.NearbyPlaces {
		resp.NearbyPlaces[i] = toListingNearbyPlaceResponse(p)
	}
	return resp
}

func toListingResponses(views []domain.ListingView) []ListingResponse {
	out := make([]ListingResponse, len(views))
	for i, v := range views {
		out[i] = toListingResponse(v)
	}
	return out
}

func toPaginatedListingsResponse(page *domain.ListingPage) PaginatedListingsResponse {
	return PaginatedListingsResponse{
		Total:      page.TotalCount,
		Page:       page.CurrentPage,
		PageSize:   page.ItemsPerPage,
		TotalPages: page.TotalPages(),
		Data:       toListingResponses(page.Listings),
	}
}

func toCategoriesResponse(categories domain.MarketingCategories) map[string]CategoryResponse {
	out := make(map[string]CategoryResponse, len(domain.Categories))
	for _, c := range domain.Categories {
		out[string(c)] = CategoryResponse{Label: label(string(c)), Listings: toListingResponses(categories[c])}
	}
	return out
}

func propertyTypeResponses() []PropertyTypeResponse {
	out := make([]PropertyTypeResponse, len(domain.PropertyTypes))
	for i, t := range domain.PropertyTypes {
		out[i] = PropertyTypeResponse{Value: string(t), Label: label(string(t))}
	}
	return out
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		Username:      u.Username,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Mobile:        u.Mobile,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

func toAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{User: toUserResponse(a.User)}
	if a.Student != nil {
		sp := &StudentProfileResponse{Course: a.Student.Course, Year: a.Student.Year}
		if a.Student.UniversityID != nil {
			id := a.Student.UniversityID.String()
			sp.UniversityID = &id
		}
		resp.StudentProfile = sp
	}
	if a.Broker != nil {
		resp.BrokerProfile = &BrokerProfileResponse{CompanyName: a.Broker.CompanyName}
	}
	return resp
}

func toTokenResponse(t *domain.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(t.ExpiresIn.Seconds()),
	}
}

func toCampusResponse(c domain.Campus) CampusResponse {
	return CampusResponse{
		ID:           c.ID.String(),
		UniversityID: c.UniversityID.String(),
		Name:         c.Name,
		Address:      c.Address,
		Location:     c.Location,
	}
}

func toUniversityResponse(u domain.University) UniversityResponse {
	resp := UniversityResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Address:  u.Address,
		Website:  u.Website,
		LogoURL:  u.LogoURL,
		Location: u.Location,
		Campuses: make([]CampusResponse, len(u.Campuses)),
	}
	for i, c := range u.Campuses {
		resp.Campuses[i] = toCampusResponse(c)
	}
	return resp
}

func toReviewResponse(r domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID.String(),
		ListingID:    r.ListingID.String(),
		ReviewerID:   r.ReviewerID.String(),
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

func toReviewResponses(items []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(items))
	for i, r := range items {
		out[i] = toReviewResponse(r)
	}
	return out
}

func toEnquiryResponse(e domain.Enquiry) EnquiryResponse {
	return EnquiryResponse{
		ID:           e.ID.String(),
		ListingID:    e.ListingID.String(),
		ListingTitle: e.ListingTitle,
		RequesterID:  e.RequesterID.String(),
		OwnerID:      e.OwnerID.String(),
		Status:       string(e.Status),
		IsActive:     e.IsActive,
		UnreadCount:  e.UnreadCount,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toMessageResponse(m domain.EnquiryMessage) MessageResponse {
	return MessageResponse{
		ID:        m.ID.String(),
		EnquiryID: m.EnquiryID.String(),
		SenderID:  m.SenderID.String(),
		Content:   m.Content,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
