package platform

// Package platform contains OS and filesystem helpers plus YouTube URL
// parsing. Nothing here knows about tasks or the UI.
