/*
Package resilience provides the circuit breaker that guards generation
provider calls.

A provider that keeps failing (quota exhausted, outage) opens its breaker so
queued clone jobs fail fast with ErrCircuitOpen instead of each waiting out
the full generation timeout.

# Usage

	breaker := resilience.New("claude", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	resp, err := resilience.Do(breaker, func() (*Response, error) {
		return client.Call(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open
*/
package resilience
