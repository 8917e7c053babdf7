package store

import "time"

type Location struct {
	ID               string    `json:"id"`
	City             string    `json:"city,omitempty"`
	State            string    `json:"state,omitempty"`
	Country          string    `json:"country,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty"`
	Locality         string    `json:"locality,omitempty"`
	Neighborhood     string    `json:"neighborhood,omitempty"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	FormattedAddress string    `json:"formattedAddress,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Builder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Property struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Type                string    `json:"type"`
	BuilderID           string    `json:"builderId"`
	LocationID          string    `json:"locationId"`
	PostedByUserID      string    `json:"postedByUserId"`
	BannerImageURL      string    `json:"bannerImageUrl,omitempty"`
	FloorplanImageURLs  []string  `json:"floorplanImageUrls,omitempty"`
	ClubhouseImageURLs  []string  `json:"clubhouseImageUrls,omitempty"`
	GalleryImageURLs    []string  `json:"galleryImageUrls,omitempty"`
	ThumbnailURL        string    `json:"thumbnailUrl,omitempty"`
	ImageURLs           []string  `json:"imageUrls,omitempty"`
	WebsiteLink         string    `json:"websiteLink,omitempty"`
	BrochureURL         string    `json:"brochureUrl,omitempty"`
	WalkthroughVideoURL string    `json:"walkthroughVideoUrl,omitempty"`
	Highlights          []string  `json:"highlights,omitempty"`
	Amenities           []string  `json:"amenities,omitempty"`
	IsArchived          bool      `json:"isArchived"`
	IsSold              bool      `json:"isSold"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`

	Location *Location `json:"location,omitempty"`
	Builder  *Builder  `json:"builder,omitempty"`
}

type Project struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Type                string    `json:"type"`
	BuilderID           string    `json:"builderId"`
	LocationID          string    `json:"locationId"`
	PostedByUserID      string    `json:"postedByUserId"`
	BannerImageURL      string    `json:"bannerImageUrl,omitempty"`
	FloorplanImageURLs  []string  `json:"floorplanImageUrls,omitempty"`
	ClubhouseImageURLs  []string  `json:"clubhouseImageUrls,omitempty"`
	GalleryImageURLs    []string  `json:"galleryImageUrls,omitempty"`
	SiteLayoutImageURLs []string  `json:"siteLayoutImageUrls,omitempty"`
	ThumbnailURL        string    `json:"thumbnailUrl,omitempty"`
	ImageURLs           []string  `json:"imageUrls,omitempty"`
	WebsiteLink         string    `json:"websiteLink,omitempty"`
	BrochureURL         string    `json:"brochureUrl,omitempty"`
	WalkthroughVideoURL string    `json:"walkthroughVideoUrl,omitempty"`
	Highlights          []string  `json:"highlights,omitempty"`
	Amenities           []string  `json:"amenities,omitempty"`
	IsArchived          bool      `json:"isArchived"`
	IsSold              bool      `json:"isSold"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`

	Location *Location `json:"location,omitempty"`
	Builder  *Builder  `json:"builder,omitempty"`
}
