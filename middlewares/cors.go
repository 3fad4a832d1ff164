package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OriginSet is the parsed CORS_ORIGIN allow-list. "*" allows any origin.
type OriginSet struct {
	wildcard bool
	origins  map[string]struct{}
}

// ParseOrigins reads a comma separated list of origins.
func ParseOrigins(origin string) OriginSet {
	set := OriginSet{origins: map[string]struct{}{}}
	for _, o := range strings.Split(origin, ",") {
		switch o = strings.TrimSpace(o); o {
		case "":
		case "*":
			set.wildcard = true
		default:
			set.origins[o] = struct{}{}
		}
	}
	return set
}

func (s OriginSet) Wildcard() bool { return s.wildcard }

func (s OriginSet) Allows(origin string) bool {
	if s.wildcard {
		return true
	}
	_, ok := s.origins[origin]
	return ok
}

// CORSMiddlewares answers preflight requests and allows origin. "*" allows any origin
// without credentials; a list echoes back the matching request origin.
func CORSMiddlewares(origin string) gin.HandlerFunc {
	allowed := ParseOrigins(origin)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		reqOrigin := c.GetHeader("Origin")
		switch {
		case allowed.Wildcard():
			h.Set("Access-Control-Allow-Origin", "*")
		case reqOrigin != "" && allowed.Allows(reqOrigin):
			h.Set("Access-Control-Allow-Origin", reqOrigin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Idempotency-Key, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
