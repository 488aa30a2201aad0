package intake

// Package intake turns dropped, picked or watched files into sources and
// filters them down to PNG images before they reach the conversion list.
