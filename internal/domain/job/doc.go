// Package job drives clone jobs from request to generated document.
//
// A job moves pending → scraping → generating → completed, or to failed
// from scraping or generating. Completed and failed are terminal. The
// Coordinator is the only writer of job records: each job is processed by
// one task started through the Dispatcher, and that task alone mutates
// the job's record in the Store.
//
// Store lifecycle: the server creates one MemoryStore at startup and
// shares it for the life of the process. Records are never persisted and
// never evicted. Only the generated document outlives the process, in the
// artifact store.
package job
