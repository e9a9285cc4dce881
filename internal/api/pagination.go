package api

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
)

// paginate slices one page out of the full sorted result. An out-of-range
// page clamps to the last page and invalid values fall back to defaults, so
// the caller always gets a page rather than an error.
func paginate[T any](items []T, page, size int) []T {
	if size < 1 {
		size = defaultPageSize
	}
	if page < 1 {
		page = defaultPageNumber
	}

	lastPage := (len(items) + size - 1) / size
	if lastPage == 0 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
