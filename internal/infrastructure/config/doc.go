// Package config provides 12-factor configuration for the clone service.
//
// Configuration is loaded from environment variables with defaults. A .env
// file in the working directory is applied before Load by cmd/server, and
// CLI flags override the port and development mode.
//
// Configuration Sections:
//   - Server: HTTP listen address
//   - Logging: log level and output format
//   - RateLimit: per-IP ingress limiting
//   - Browser: headless Chrome connection and render timeout
//   - Cache: design context cache directory and in-memory LRU size
//   - Artifacts: generated document storage (directory or S3)
//   - Generation: provider keys, models and timeout
//
// Environment Variables:
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - BROWSER_REMOTE_URL, BROWSER_RENDER_TIMEOUT, BROWSER_STEALTH
//   - CACHE_DIR, CACHE_LRU_SIZE
//   - ARTIFACT_DIR, ARTIFACT_S3_ENDPOINT, ARTIFACT_S3_BUCKET, ...
//   - ANTHROPIC_API_KEY, ANTHROPIC_MODEL, GOOGLE_API_KEY, GEMINI_MODEL
package config
