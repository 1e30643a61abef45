package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires the URL field, save dialog, progress bar and
// cancel button to the download service.
