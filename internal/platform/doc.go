package platform

// Package platform contains OS integration: the user's Downloads directory,
// directory creation, and revealing a folder in the system file manager.
