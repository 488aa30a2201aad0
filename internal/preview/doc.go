package preview

// Package preview issues temporary display handles for original and converted
// images. A handle keeps the raw bytes as a fyne resource plus a downscaled
// thumbnail, and must be released once the owning item is removed.
