package platform

// Package platform contains OS integration glue: filesystem helpers for the
// download directory, collision-free output paths, and revealing saved files
// in the system file manager.
