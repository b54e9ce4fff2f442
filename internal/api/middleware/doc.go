// Package middleware provides the gin middleware of the clone API.
//
// Features:
//   - CORS for the browser front end (gin-contrib/cors)
//   - Per-IP and global ingress rate limiting (x/time/rate)
//   - Request ids and structured access logs (google/uuid, zap)
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.AccessLog(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
