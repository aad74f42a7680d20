package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CallID propagates the telephony call sid through the request. Requests that
// arrive without one (health checks, manual testing) get a generated id so
// log lines stay correlatable.
func CallID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader("X-Call-Sid")
		if sid == "" {
			sid = uuid.NewString()
		}
		c.Set("call_sid", sid)
		c.Writer.Header().Set("X-Call-Sid", sid)
		c.Next()
	}
}

// CallSID returns the call sid set by the CallID middleware.
func CallSID(c *gin.Context) string {
	sid, _ := c.Get("call_sid")
	s, _ := sid.(string)
	return s
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[http] call=%s %s %s status=%d dur=%s",
			CallSID(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
