package core

const (
	DefaultRowsPerPage = 5
	MaxRowsPerPage     = 100
)

// PageRequest selects a zero-based page of a listing.
type PageRequest struct {
	Page        int
	RowsPerPage int
}

// Page is one page of a listing. From and To are 1-based and inclusive so a
// table footer can print "From-To of Total"; both are 0 for an empty page.
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	Page        int `json:"page"`
	RowsPerPage int `json:"rowsPerPage"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// Paginate slices items according to req, applying defaults and limits.
func Paginate[T any](items []T, req PageRequest) *Page[T] {
	rows := req.RowsPerPage
	if rows <= 0 {
		rows = DefaultRowsPerPage
	}
	if rows > MaxRowsPerPage {
		rows = MaxRowsPerPage
	}
	page := req.Page
	if page < 0 {
		page = 0
	}

	total := len(items)
	start := total
	if page <= total/rows {
		start = page * rows
	}
	if start > total {
		start = total
	}
	end := start + rows
	if end > total {
		end = total
	}

	p := &Page[T]{
		Items:       append(make([]T, 0, end-start), items[start:end]...),
		Total:       total,
		Page:        page,
		RowsPerPage: rows,
	}
	if end > start {
		p.From = start + 1
		p.To = end
	}
	return p
}
