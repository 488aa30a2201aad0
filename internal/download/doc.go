package download

// Package download writes converted WebP results to disk. Each completed item
// becomes one file named after the original with a .webp extension; existing
// files are never overwritten.
