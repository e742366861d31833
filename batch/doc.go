// Package batch highlights many documents with one shared term set.
//
// A Runner expands the query once, retrying the expansion service with
// exponential backoff, and then highlights every document on a bounded
// worker pool. Each document is owned by exactly one worker. Progress can be
// reported to a writer while the batch runs.
package batch
