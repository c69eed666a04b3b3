package pagination

// Default pagination values
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params represents pagination parameters for list queries
type Params struct {
	Page  int `json:"page"`  // Current page number (1-based)
	Limit int `json:"limit"` // Number of items per page
}

// Meta contains pagination metadata for responses
type Meta struct {
	CurrentPage  int  `json:"current_page"`
	PerPage      int  `json:"per_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// NewParams builds validated pagination parameters
func NewParams(page, limit int) Params {
	p := Params{Page: page, Limit: limit}
	p.Validate()
	return p
}

// Validate ensures pagination parameters are valid and sets defaults if needed
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset returns the SQL OFFSET for the current page
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CalculateMeta computes pagination metadata from the total record count
func CalculateMeta(params Params, totalRecords int) Meta {
	totalPages := totalRecords / params.Limit
	if totalRecords%params.Limit != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	return Meta{
		CurrentPage:  params.Page,
		PerPage:      params.Limit,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		HasNext:      params.Page < totalPages,
		HasPrevious:  params.Page > 1,
	}
}
