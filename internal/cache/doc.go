// Package cache implements a single-process, in-memory key/value store with
// per-entry TTL, reachable through two views of the same map:
//
//   - Pool hands out item handles (fetch, mutate, Save)
//   - Simple reads and writes raw values with an optional TTL
//
// Both views validate keys with ValidateKey and compute expiration with
// ResolveTTL, so an entry written through one is visible through the other
// with the same remaining lifetime. Values are copied on the way in and on the
// way out. Expired entries are dropped the next time they are read.
package cache
