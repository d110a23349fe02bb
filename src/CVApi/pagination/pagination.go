package pagination

const (
	// DefaultLimit applies when the caller sends no limit or a non-positive one.
	DefaultLimit = 50
	// MaxLimit is the hard server-side ceiling regardless of caller input.
	MaxLimit = 100
)

// Window is an offset/limit page request. Queries over-fetch one row past the
// limit so "more results" falls out of the row count without a COUNT(*).
type Window struct {
	Offset int
	Limit  int
}

// Clamp normalizes caller-supplied values in place and returns the window.
func (w Window) Clamp() Window {
	if w.Offset < 0 {
		w.Offset = 0
	}
	if w.Limit <= 0 {
		w.Limit = DefaultLimit
	}
	if w.Limit > MaxLimit {
		w.Limit = MaxLimit
	}
	return w
}

// FetchLimit is the row count to request from the store: one past the page.
func (w Window) FetchLimit() int {
	return w.Limit + 1
}

// Trim reports how many of n fetched rows belong to the page and whether a
// further page exists.
func (w Window) Trim(n int) (keep int, hasMore bool) {
	if n > w.Limit {
		return w.Limit, true
	}
	return n, false
}
