package models

// Page is the paginated list envelope the backend wraps collection
// responses in.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// DocumentQuery holds the browse parameters for GET /documents.
// Zero values are omitted from the request.
type DocumentQuery struct {
	Search        string
	CategoryID    int64
	DepartmentID  int64
	StartDate     string // YYYY-MM-DD
	EndDate       string // YYYY-MM-DD
	SortBy        string
	SortDirection string
	Page          int
}
