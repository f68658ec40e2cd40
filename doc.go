// Package main provides the entry point for the swim federation website
// backend. It starts a Fiber web server carrying the member back office
// (news, meets, records, seminars, live streams, groups and permissions),
// the public read endpoints and the edge cache publisher. Content is kept
// in a relational database via gorm; public listings are additionally
// published as immutable blobs behind a key-value pointer directory.
package main
