package conversion

// Package conversion owns the ordered in-memory list of conversion items and
// runs the PNG to WebP pipeline over it one item at a time. Every state change
// is pushed to the UI through the update callback.
