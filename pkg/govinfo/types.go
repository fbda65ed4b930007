package govinfo

// DefaultPageSize is used when a caller does not specify a page size.
const DefaultPageSize = 100

// PublishedParams select packages by publication date range.
// StartDate and EndDate are calendar dates in YYYY-MM-DD form; both are
// required. Collection optionally narrows results to one collection code.
type PublishedParams struct {
	Collection string
	StartDate  string
	EndDate    string
	PageSize   int
}

// PackageRecord describes one package as returned in list responses.
// The schema is owned by the remote API; only the fields this tool
// consumes are mapped.
type PackageRecord struct {
	PackageID    string `json:"packageId"`
	LastModified string `json:"lastModified"`
	PackageLink  string `json:"packageLink"`
	DocClass     string `json:"docClass"`
	Title        string `json:"title"`
	Congress     string `json:"congress"`
	DateIssued   string `json:"dateIssued"`
}

// PackagePage is one page of a package list response.
// NextPage and PreviousPage are absolute URLs that already embed every
// query parameter of the original request.
type PackagePage struct {
	Count        int             `json:"count"`
	Message      string          `json:"message"`
	NextPage     string          `json:"nextPage"`
	PreviousPage string          `json:"previousPage"`
	Packages     []PackageRecord `json:"packages"`
}

// Collection describes one govInfo collection (e.g. BILLS, CREC).
type Collection struct {
	CollectionCode string `json:"collectionCode"`
	CollectionName string `json:"collectionName"`
	PackageCount   int    `json:"packageCount"`
	GranuleCount   int    `json:"granuleCount"`
}

// collectionsResponse is the envelope of GET /collections.
type collectionsResponse struct {
	Collections []Collection `json:"collections"`
}

// PackageSummary is the metadata and download links for one package.
type PackageSummary struct {
	PackageID      string            `json:"packageId"`
	Title          string            `json:"title"`
	Category       string            `json:"category"`
	CollectionCode string            `json:"collectionCode"`
	CollectionName string            `json:"collectionName"`
	Congress       string            `json:"congress"`
	BillNumber     string            `json:"billNumber"`
	BillType       string            `json:"billType"`
	DateIssued     string            `json:"dateIssued"`
	LastModified   string            `json:"lastModified"`
	Download       map[string]string `json:"download"`
}

// Granule describes one sub-unit of a package.
type Granule struct {
	GranuleID    string `json:"granuleId"`
	Title        string `json:"title"`
	GranuleClass string `json:"granuleClass"`
	GranuleLink  string `json:"granuleLink"`
}

// GranulePage is one page of a package's granule list.
type GranulePage struct {
	Count        int       `json:"count"`
	Message      string    `json:"message"`
	NextPage     string    `json:"nextPage"`
	PreviousPage string    `json:"previousPage"`
	Granules     []Granule `json:"granules"`
}

// GranuleSummary is the metadata and download links for one granule.
type GranuleSummary struct {
	PackageID    string            `json:"packageId"`
	GranuleID    string            `json:"granuleId"`
	Title        string            `json:"title"`
	GranuleClass string            `json:"granuleClass"`
	DateIssued   string            `json:"dateIssued"`
	Download     map[string]string `json:"download"`
}

// Relationship is one entry in a related-content response.
type Relationship struct {
	Collection   string `json:"collection"`
	Relationship string `json:"relationship"`
	Link         string `json:"link"`
}

// RelatedResponse is the envelope of GET /related/{accessId}.
type RelatedResponse struct {
	Relationships []Relationship `json:"relationships"`
}

// RelatedEdge is one flattened related-content graph edge, suitable for
// CSV export.
type RelatedEdge struct {
	AccessID     string
	Relationship string
	Collection   string
	Link         string
}
