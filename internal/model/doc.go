package model

// Package model defines the data structures shared by the services and the UI:
// download and extraction tasks, their status enum, and the installer flow
// that sequences the two steps. Structures are mutated by their owning service
// or by the UI goroutine only.
