package respond

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Static writes a 200 for data that only changes with a deploy, such as the
// crop list, and lets clients cache it for maxAge.
func Static(c *gin.Context, maxAge time.Duration, payload any) {
	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge/time.Second)))
	c.JSON(http.StatusOK, payload)
}

// Private writes a per-user payload that shared caches must not keep.
func Private(c *gin.Context, status int, payload any) {
	c.Header("Cache-Control", "private, no-store")
	c.JSON(status, payload)
}
