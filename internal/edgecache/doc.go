// Package edgecache publishes denormalized snapshots of the public content
// views to blob storage after every mutation, with a small key-value
// directory pointing each partition at its latest immutable blob. The
// public site reads the snapshots from the edge; the primary database stays
// the single source of truth.
package edgecache
