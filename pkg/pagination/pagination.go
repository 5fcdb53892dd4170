package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize clamps a 1-indexed page and a page size to sane bounds.
func Normalize(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func Skip(page, limit int64) int64 {
	return (page - 1) * limit
}

func TotalPages(total, limit int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
