package ingest

// Image/document categories and their hard cardinality ceilings. Incoming
// batches are truncated to the ceiling before any upload happens, so the
// ceiling also bounds upload cost per category.
const (
	CategoryBanner     = "banner"
	CategoryBrochure   = "brochure"
	CategoryFloorplans = "floorplans"
	CategoryClubhouse  = "clubhouse"
	CategoryGallery    = "gallery"
	CategorySiteLayout = "site-layout"
)

const (
	MaxFloorplanImages = 20
	MaxClubhouseImages = 10
	MaxGalleryImages   = 20
	// site layout shares the gallery ceiling
	MaxSiteLayoutImages = MaxGalleryImages
)

// DefaultListingType is stamped on listings created without an explicit type.
const DefaultListingType = "RESIDENTIAL"
