/*
Package monitoring provides Prometheus metrics for the clone service.

Tracked:
  - HTTP requests (count, latency, response size) keyed by route template
  - Clone jobs (submitted, active, finished by status, stage durations)
  - Design context cache hits and misses
  - Skipped extraction steps
  - Generation provider calls and latency
  - Job stream WebSocket connections

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	timer := monitoring.NewTimer(metrics, "scrape")
	// ... capture ...
	timer.Stop("success")
*/
package monitoring
