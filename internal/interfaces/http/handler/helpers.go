package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
)

// listFilter binds common pagination and ordering query parameters into a
// domain filter. Handlers add their own filter keys on top.
func listFilter(c *gin.Context) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter, nil
}

// stringFilter copies a query parameter into the filter map when present
func stringFilter(c *gin.Context, filter *shared.Filter, key string) {
	if v := c.Query(key); v != "" {
		filter.Filters[key] = v
	}
}

// boolFilter copies a boolean query parameter into the filter map when present
func boolFilter(c *gin.Context, filter *shared.Filter, key string) error {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	switch v {
	case "true", "1":
		filter.Filters[key] = true
	case "false", "0":
		filter.Filters[key] = false
	default:
		return fmt.Errorf("invalid boolean value for %s: %q", key, v)
	}
	return nil
}

// timeFilter copies an RFC 3339 or date-only query parameter into the filter
// map when present
func timeFilter(c *gin.Context, filter *shared.Filter, key string) error {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("invalid time value for %s: %q", key, v)
		}
	}
	filter.Filters[key] = t
	return nil
}
