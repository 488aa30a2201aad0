package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/png2webp/internal/model"
	"github.com/ytget/png2webp/internal/preview"
)

// ItemRow renders one conversion item: name, status, previews and actions
type ItemRow struct {
	widget.BaseWidget

	item         *model.ConversionItem
	localization *Localization

	// UI components
	nameLabel         *widget.Label
	statusLabel       *widget.Label
	spinner           *widget.ProgressBarInfinite
	originalImage     *canvas.Image
	resultImage       *canvas.Image
	originalSizeLabel *widget.Label
	resultSizeLabel   *widget.Label
	savingsLabel      *widget.Label

	// Action buttons
	downloadBtn *widget.Button
	previewBtn  *widget.Button
	removeBtn   *widget.Button

	// Callbacks
	onDownload func(itemID string)
	onPreview  func(itemID string)
	onRemove   func(itemID string)
}

// NewItemRow creates an empty row; SetItem fills it
func NewItemRow(localization *Localization) *ItemRow {
	row := &ItemRow{localization: localization}
	row.ExtendBaseWidget(row)
	row.createUI()
	return row
}

// SetCallbacks sets the action callbacks
func (r *ItemRow) SetCallbacks(onDownload, onPreview, onRemove func(itemID string)) {
	r.onDownload = onDownload
	r.onPreview = onPreview
	r.onRemove = onRemove
}

// SetItem points the row at item and refreshes every component
func (r *ItemRow) SetItem(item *model.ConversionItem) {
	if item == nil {
		log.Printf("Warning: SetItem called with nil item")
		return
	}
	r.item = item
	r.updateFromItem()
	r.Refresh()
}

func (r *ItemRow) createUI() {
	r.nameLabel = widget.NewLabel("")
	r.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.nameLabel.Truncation = fyne.TextTruncateEllipsis

	r.statusLabel = widget.NewLabel("")
	r.statusLabel.Wrapping = fyne.TextWrapWord

	r.spinner = widget.NewProgressBarInfinite()
	r.spinner.Hide()

	r.originalImage = newThumbnail()
	r.resultImage = newThumbnail()

	r.originalSizeLabel = widget.NewLabel(model.SizePlaceholder)
	r.originalSizeLabel.Alignment = fyne.TextAlignCenter
	r.resultSizeLabel = widget.NewLabel(model.SizePlaceholder)
	r.resultSizeLabel.Alignment = fyne.TextAlignCenter
	r.savingsLabel = widget.NewLabel("")
	r.savingsLabel.TextStyle = fyne.TextStyle{Monospace: true}

	r.downloadBtn = widget.NewButton(r.localization.GetText(KeyDownloadWebP), func() {
		if r.item != nil && r.onDownload != nil {
			r.onDownload(r.item.ID)
		}
	})
	r.downloadBtn.Importance = widget.HighImportance
	r.downloadBtn.Hide()

	r.previewBtn = widget.NewButton(r.localization.GetText(KeyPreview), func() {
		if r.item != nil && r.onPreview != nil {
			r.onPreview(r.item.ID)
		}
	})
	r.previewBtn.Hide()

	r.removeBtn = widget.NewButton(r.localization.GetText(KeyRemove), func() {
		if r.item != nil && r.onRemove != nil {
			r.onRemove(r.item.ID)
		}
	})
	r.removeBtn.Importance = widget.LowImportance
}

func newThumbnail() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))
	return img
}

// updateFromItem copies item state into the widgets
func (r *ItemRow) updateFromItem() {
	item := r.item

	r.nameLabel.SetText(item.DisplayName())
	r.downloadBtn.SetText(r.localization.GetText(KeyDownloadWebP))
	r.previewBtn.SetText(r.localization.GetText(KeyPreview))
	r.removeBtn.SetText(r.localization.GetText(KeyRemove))

	switch item.Status {
	case model.ItemStatusConverting:
		r.statusLabel.Importance = widget.HighImportance
		r.statusLabel.SetText(r.localization.GetText(KeyConverting))
		r.spinner.Show()
	case model.ItemStatusCompleted:
		r.statusLabel.Importance = widget.SuccessImportance
		r.statusLabel.SetText(IconDone + " " + r.localization.GetText(KeyCompleted))
		r.spinner.Hide()
	case model.ItemStatusError:
		r.statusLabel.Importance = widget.DangerImportance
		r.statusLabel.SetText(IconError + " " + r.localization.ItemErrorText(item.Error))
		r.spinner.Hide()
	default:
		r.statusLabel.Importance = widget.MediumImportance
		r.statusLabel.SetText(IconPending + " " + r.localization.GetText(KeyReady))
		r.spinner.Hide()
	}

	originalSize := item.OriginalSize
	r.originalSizeLabel.SetText(model.FormatFileSize(&originalSize))
	r.resultSizeLabel.SetText(model.FormatFileSize(item.ResultSize))

	setThumbnail(r.originalImage, item.OriginalHandle)
	setThumbnail(r.resultImage, item.ResultHandle)

	if item.Status == model.ItemStatusCompleted {
		r.savingsLabel.SetText(fmt.Sprintf("%s %s",
			model.CalculateSavings(item.OriginalSize, item.ResultSize), r.localization.GetText(KeySaved)))
		r.downloadBtn.Show()
		r.previewBtn.Show()
	} else {
		r.savingsLabel.SetText("")
		r.downloadBtn.Hide()
		r.previewBtn.Hide()
	}

	// removing is blocked only while this item is being encoded
	if item.Status.IsActive() {
		r.removeBtn.Disable()
	} else {
		r.removeBtn.Enable()
	}
}

// setThumbnail shows the preview behind h, or nothing once it is released
func setThumbnail(img *canvas.Image, h model.DisplayHandle) {
	var thumb image.Image
	if ph, ok := h.(*preview.Handle); ok && ph != nil && !ph.Released() {
		thumb = ph.Image()
	}
	img.Image = thumb
	if thumb == nil {
		img.Hide()
	} else {
		img.Show()
	}
	img.Refresh()
}

// CreateRenderer creates the widget renderer
func (r *ItemRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	previewCell := func(img *canvas.Image, size *widget.Label) fyne.CanvasObject {
		frame := canvas.NewRectangle(color.Transparent)
		frame.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))
		return container.NewVBox(container.NewStack(frame, img), fixedWidth(SizeLabelWidth, size))
	}

	previews := container.NewHBox(
		previewCell(r.originalImage, r.originalSizeLabel),
		container.NewCenter(widget.NewLabel(ArrowSeparator)),
		previewCell(r.resultImage, r.resultSizeLabel),
	)

	info := container.NewVBox(
		r.nameLabel,
		fixedWidth(StatusLabelWidth, r.statusLabel),
		r.spinner,
		r.savingsLabel,
	)

	actions := container.NewVBox(r.downloadBtn, container.NewHBox(r.previewBtn, r.removeBtn))

	content := container.NewVBox(
		container.NewBorder(nil, nil, previews, container.NewCenter(actions), info),
		widget.NewSeparator(),
	)
	return widget.NewSimpleRenderer(content)
}

// MinSize keeps rows tall enough for two thumbnails and their sizes
func (r *ItemRow) MinSize() fyne.Size {
	size := r.BaseWidget.MinSize()
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	return size
}
