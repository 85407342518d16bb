package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hooksink/hooksink/internal/store"
)

// handleMessages serves the paginated, filtered read-back. Out-of-range
// limit/offset values are clamped per contract; non-numeric ones are
// rejected.
func handleMessages(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := intQuery(c, "limit", store.DefaultLimit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be an integer"})
			return
		}
		offset, err := intQuery(c, "offset", 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "offset must be an integer"})
			return
		}
		if limit < 1 {
			limit = 1
		}
		if limit > store.MaxLimit {
			limit = store.MaxLimit
		}
		if offset < 0 {
			offset = 0
		}

		since := c.Query("since")
		if since != "" {
			if err := validateUTCZ(since); err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []fieldError{
					{Loc: []string{"query", "since"}, Msg: "invalid since", Type: "value_error"},
				}})
				return
			}
		}

		filter := store.ListFilter{
			From:  c.Query("from"),
			Since: since,
			Q:     c.Query("q"),
		}
		data, total, err := store.List(opts.DB, filter, limit, offset)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "storage unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":   data,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// intQuery parses an optional integer query parameter.
func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
