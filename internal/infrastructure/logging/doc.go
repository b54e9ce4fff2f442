// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Job processing logs through ForJob so every entry of one clone run
// carries job_id and url fields.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.ForJob(jobID, url).Info("scraping started")
//	logger.Error("artifact write failed", zap.Error(err))
package logging
