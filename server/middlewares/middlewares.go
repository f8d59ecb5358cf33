package middlewares

import (
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/gin-gonic/gin"
	Logger "github.com/retronet/feedranker/utils/log"
)

var (
	// statsdClient reports request and candidate metrics. May stay nil when
	// Setup fails or was never called (tests), every call site tolerates
	// that.
	statsdClient *statsd.Client
)

// Setup initializes all package scoped variables that are needed to perform
// middleware functionalities, such as the statsd client. This function must
// be called before any middleware is used.
func Setup() {
	client, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		// Metrics are not worth refusing to start over.
		Logger.Log.Warn("statsd unavailable, request metrics disabled: ", err)
		return
	}
	statsdClient = client
}

// Metrics emits a counter and timing per request, tagged by route and
// status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if statsdClient == nil {
			return
		}
		tags := []string{
			"route:" + c.FullPath(),
			"status:" + statusClass(c.Writer.Status()),
		}
		statsdClient.Incr("feedranker.api.request", tags, 1)
		statsdClient.Timing("feedranker.api.latency", time.Since(start), tags, 1)
	}
}

// CountCandidates reports how many items a ranking surface returned.
func CountCandidates(surface string, count int) {
	if statsdClient == nil {
		return
	}
	statsdClient.Gauge("feedranker.feed.items", float64(count), []string{"surface:" + surface}, 1)
}

func statusClass(code int) string {
	switch {
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
