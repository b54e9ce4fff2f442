// Package client provides the outbound HTTP client used for generation
// provider APIs.
//
// Built on go-resty/resty for production reliability:
//   - Automatic retries with backoff on 429 and 5xx responses
//   - Pooled keep-alive transport from hashicorp/go-retryablehttp
//   - Rate limiting per client instance (x/time/rate)
//   - A circuit breaker per upstream that opens on repeated 5xx, 429 or
//     transport failures and ignores the caller's own 4xx mistakes
//
// Example Usage:
//
//	c := client.NewClient(client.DefaultOptions("anthropic"))
//	req, err := c.Request(ctx)
//	resp, err := c.ExecuteWithBreaker(func() (*resty.Response, error) {
//		return req.SetBody(body).Post(url)
//	})
package client
