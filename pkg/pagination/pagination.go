package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page   int
	Limit  int
	Sort   Sort
	Search string
}

// Sort names a field and direction for upstream list queries.
type Sort struct {
	Field string
	Desc  bool
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage floors the page number at 1.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Query renders the params in the upstream API's query format
// (page, limit, sort=field,ASC|DESC, s=search).
func (p Params) Query() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(NormalizePage(p.Page)))
	values.Set("limit", strconv.Itoa(NormalizeLimit(p.Limit)))
	if p.Sort.Field != "" {
		direction := "ASC"
		if p.Sort.Desc {
			direction = "DESC"
		}
		values.Set("sort", fmt.Sprintf("%s,%s", p.Sort.Field, direction))
	}
	if search := strings.TrimSpace(p.Search); search != "" {
		values.Set("s", search)
	}
	return values
}

// ParseSort decodes the "field,ASC|DESC" wire form.
func ParseSort(value string) (Sort, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Sort{}, nil
	}
	parts := strings.SplitN(trimmed, ",", 2)
	sort := Sort{Field: strings.TrimSpace(parts[0])}
	if sort.Field == "" {
		return Sort{}, fmt.Errorf("invalid sort %q", value)
	}
	if len(parts) == 2 {
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "ASC", "":
		case "DESC":
			sort.Desc = true
		default:
			return Sort{}, fmt.Errorf("invalid sort direction %q", parts[1])
		}
	}
	return sort, nil
}

// PageCount derives the number of pages for a total at the given limit.
func PageCount(total, limit int) int {
	limit = NormalizeLimit(limit)
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
