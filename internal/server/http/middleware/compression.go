package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes caps request bodies after decompression.
const DefaultMaxBodyBytes int64 = 64 << 10

// DecompressRequest transparently handles gzip encoded requests and limits
// the decoded body to maxBytes. A non-positive limit disables the cap.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			originalBody := c.Request.Body
			reader, err := gzip.NewReader(originalBody)
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			defer reader.Close()
			defer originalBody.Close()

			c.Request.Body = io.NopCloser(reader)
			c.Request.Header.Del("Content-Encoding")
			c.Request.ContentLength = -1
		}

		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
