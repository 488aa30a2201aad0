package ui

// Package ui contains the Fyne-based desktop user interface for the converter.
// It wires drops, the file picker and the watch folder to the conversion queue,
// renders one row per item and saves results through the download service.
// All UI strings are localized via Localization.
