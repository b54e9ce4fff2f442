// Package contextcache memoizes design contexts by URL.
//
// Entries are keyed by the URL-safe base64 encoding of the URL, which is
// deterministic, reversible and safe as a file name or object key. Entries
// never expire: a URL is captured once per cache lifetime.
//
// FileStore persists one JSON file per URL. CachedStore puts an in-memory
// LRU of serialized entries in front of any Store.
package contextcache
