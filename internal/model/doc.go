package model

// Package model defines domain data structures used across the app: the
// download request and task, the task state machine, and the task error
// taxonomy. Structures are designed for direct binding in the UI and
// explicit state transitions.
