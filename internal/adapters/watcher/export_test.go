package watcher

// IsPublicHeader exposes the header filter for testing.
var IsPublicHeader = isPublicHeader
