package download

// Package download streams the installer archive over HTTP to a local file.
// Fetch is the synchronous core; Service runs it on a worker goroutine and
// reports task progress through an update callback consumed by the UI.
