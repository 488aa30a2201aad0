package model

// Package model defines domain data structures used across the app: the
// conversion item, its source, and the status enum. Structures are designed
// for direct binding in the UI and explicit state transitions.
