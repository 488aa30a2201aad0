package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconError    = "❌"
	IconDone     = "✔"
	IconPending  = "⏳"
	IconImage    = "🖼"
)

// Text fragments
const (
	ArrowSeparator = " → "
)

// Layout sizing (ItemRow / lists)
const (
	StatusLabelWidth float32 = 160
	SizeLabelWidth   float32 = 72
	ThumbnailSize    float32 = 64

	RowMinWidth  float32 = 480
	RowMinHeight float32 = 88

	DropZoneHeight float32 = 96

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 420

	PreviewDialogWidth  float32 = 640
	PreviewDialogHeight float32 = 480
)

// Quality slider range, in percent
const (
	QualitySliderMin  = 1
	QualitySliderMax  = 100
	QualitySliderStep = 1
)
