package httputil

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Paging bounds for list endpoints.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

var (
	errInvalidOffset = errors.New("invalid offset parameter: must be a non-negative integer")
	errInvalidLimit  = errors.New(
		"invalid limit parameter: must be between 1 and " + strconv.Itoa(MaxPageLimit),
	)
)

// Page is a window over a listing, read from the offset and limit query parameters.
type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads offset (default 0) and limit (default DefaultPageLimit, at most
// MaxPageLimit) from the query string.
func ParsePage(c *gin.Context) (Page, error) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok || offset < 0 {
		return Page{}, errInvalidOffset
	}
	limit, ok := queryInt(c, "limit", DefaultPageLimit)
	if !ok || limit < 1 || limit > MaxPageLimit {
		return Page{}, errInvalidLimit
	}
	return Page{Offset: offset, Limit: limit}, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
