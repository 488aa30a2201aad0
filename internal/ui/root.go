package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/png2webp/internal/config"
	"github.com/ytget/png2webp/internal/conversion"
	"github.com/ytget/png2webp/internal/download"
	"github.com/ytget/png2webp/internal/intake"
	"github.com/ytget/png2webp/internal/model"
	"github.com/ytget/png2webp/internal/platform"
	"github.com/ytget/png2webp/internal/preview"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	queue        conversion.Queue
	downloader   download.Downloader
	settings     *config.Settings
	localization *Localization

	ctx    context.Context
	cancel context.CancelFunc

	watcherMu sync.Mutex
	watcher   *intake.Watcher

	// owned by the UI goroutine
	items       []*model.ConversionItem
	batchActive bool
	closeOnce   sync.Once

	// Drop zone
	dropLabel *widget.Label
	selectBtn *widget.Button

	// Error banner
	bannerContainer *fyne.Container
	bannerLabel     *widget.Label

	// Controls shown when the list is not empty
	controls       *fyne.Container
	qualityLabel   *widget.Label
	qualitySlider  *widget.Slider
	convertAllBtn  *widget.Button
	downloadAllBtn *widget.Button

	itemList *widget.List
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, queue conversion.Queue, downloader download.Downloader) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())

	ui := &RootUI{
		window:       window,
		queue:        queue,
		downloader:   downloader,
		settings:     settings,
		localization: localization,
		ctx:          ctx,
		cancel:       cancel,
	}

	queue.SetQuality(settings.GetQuality())
	downloader.SetDownloadDirectory(settings.GetDownloadDirectory())

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for item updates
	queue.SetUpdateCallback(ui.onItemUpdate)

	ui.setupUI()

	window.SetOnDropped(ui.onDropped)
	window.SetOnClosed(ui.Close)

	ui.restartWatcher()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	title := widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}
	topBar := container.NewBorder(nil, nil, settingsBtn, nil, title)

	// Drop zone
	ui.dropLabel = widget.NewLabel(IconImage + " " + ui.localization.GetText(KeyDropHint))
	ui.dropLabel.Alignment = fyne.TextAlignCenter
	ui.selectBtn = widget.NewButton(ui.localization.GetText(KeySelectFiles), ui.onSelectFiles)
	ui.selectBtn.Importance = widget.HighImportance

	dropBackground := canvas.NewRectangle(theme.Color(ColorNameDropZone))
	dropBackground.StrokeColor = theme.Color(ColorNameDropZoneBorder)
	dropBackground.StrokeWidth = 2
	dropBackground.CornerRadius = 8
	dropBackground.SetMinSize(fyne.NewSize(RowMinWidth, DropZoneHeight))
	dropZone := container.NewStack(
		dropBackground,
		container.NewCenter(container.NewVBox(ui.dropLabel, container.NewCenter(ui.selectBtn))),
	)

	// Error banner under the drop zone (hidden by default)
	ui.bannerLabel = widget.NewLabel("")
	ui.bannerLabel.Importance = widget.DangerImportance
	ui.bannerLabel.Wrapping = fyne.TextWrapWord
	dismissBtn := widget.NewButton(IconClose, ui.hideBanner)
	dismissBtn.Importance = widget.LowImportance
	ui.bannerContainer = container.NewStack(
		canvas.NewRectangle(theme.Color(ColorNameBanner)),
		container.NewBorder(nil, nil, nil, dismissBtn, ui.bannerLabel),
	)
	ui.bannerContainer.Hide()

	// Quality slider and bulk actions
	ui.qualityLabel = widget.NewLabel("")
	ui.qualitySlider = widget.NewSlider(QualitySliderMin, QualitySliderMax)
	ui.qualitySlider.Step = QualitySliderStep
	ui.qualitySlider.SetValue(float64(qualityPercent(ui.queue.Quality())))
	ui.qualitySlider.OnChanged = ui.onQualityChanged
	ui.updateQualityLabel(qualityPercent(ui.queue.Quality()))

	ui.convertAllBtn = widget.NewButton(ui.localization.GetText(KeyConvertAll), ui.onConvertAll)
	ui.convertAllBtn.Importance = widget.HighImportance
	ui.downloadAllBtn = widget.NewButton(ui.localization.GetText(KeyDownloadAll), ui.onDownloadAll)

	ui.controls = container.NewVBox(
		container.NewBorder(nil, nil, ui.qualityLabel, nil, ui.qualitySlider),
		container.NewHBox(ui.convertAllBtn, ui.downloadAllBtn),
	)
	ui.controls.Hide()

	ui.itemList = widget.NewList(
		func() int {
			return len(ui.items)
		},
		func() fyne.CanvasObject {
			row := NewItemRow(ui.localization)
			row.SetCallbacks(ui.onDownloadItem, ui.onPreviewItem, ui.onRemoveItem)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.items) {
				return
			}
			if row, ok := obj.(*ItemRow); ok {
				row.SetItem(ui.items[id])
			}
		},
	)

	top := container.NewVBox(topBar, dropZone, ui.bannerContainer, ui.controls)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.itemList))

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.dropLabel.SetText(IconImage + " " + ui.localization.GetText(KeyDropHint))
	ui.selectBtn.SetText(ui.localization.GetText(KeySelectFiles))
	ui.downloadAllBtn.SetText(ui.localization.GetText(KeyDownloadAll))
	ui.updateQualityLabel(int(ui.qualitySlider.Value))
	ui.refreshItems()
}

// addSources runs the intake filter and queues what passes
func (ui *RootUI) addSources(sources []*model.Source) {
	accepted, message := intake.Filter(sources, ui.settings.GetMultiple())
	if message != "" {
		log.Printf("Intake rejected %d file(s): %s", len(sources), message)
		ui.showBanner(ui.localization.GetText(KeyPNGOnly))
		return
	}

	ui.hideBanner()
	added := ui.queue.AddSources(accepted)
	log.Printf("Added %d item(s) to the queue", len(added))
	ui.refreshItems()
}

// dropDisabled reports whether intake is paused for a running conversion
func (ui *RootUI) dropDisabled() bool {
	return ui.batchActive || ui.queue.AnyConverting()
}

// onDropped handles files dropped onto the window
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if ui.dropDisabled() {
		log.Printf("Ignoring drop of %d file(s) while converting", len(uris))
		return
	}

	var sources []*model.Source
	var unreadable []string
	for _, uri := range uris {
		src, err := readURI(uri)
		if err != nil {
			// folders and vanished files are skipped, the rest of the drop still counts
			log.Printf("Skipping dropped entry %s: %v", uri, err)
			unreadable = append(unreadable, uri.Name())
			continue
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 && len(unreadable) > 0 {
		ui.showBanner(ui.localization.GetText(KeyErrorReadingFile) + ": " + strings.Join(unreadable, ", "))
		return
	}
	ui.addSources(sources)
}

// readURI loads a fyne URI into a source, detecting its type from name and content
func readURI(uri fyne.URI) (*model.Source, error) {
	reader, err := storage.Reader(uri)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return intake.FromReader(uri.Name(), "", reader)
}

// onSelectFiles opens the PNG-filtered file picker
func (ui *RootUI) onSelectFiles() {
	if ui.dropDisabled() {
		return
	}

	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showBanner(ui.localization.GetText(KeyErrorReadingFile) + ": " + err.Error())
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		src, err := intake.FromReader(reader.URI().Name(), "", reader)
		if err != nil {
			log.Printf("Failed to read selected file: %v", err)
			ui.showBanner(ui.localization.GetText(KeyErrorReadingFile) + ": " + reader.URI().Name())
			return
		}
		ui.addSources([]*model.Source{src})
	}, ui.window)
	picker.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".PNG"}))
	picker.Show()
}

// onQualityChanged applies a slider value in percent
func (ui *RootUI) onQualityChanged(value float64) {
	percent := int(value)
	ui.queue.SetQuality(float64(percent) / 100)
	ui.updateQualityLabel(percent)
}

func (ui *RootUI) updateQualityLabel(percent int) {
	ui.qualityLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyQualityLabel), percent))
}

func qualityPercent(quality float64) int {
	return int(quality*100 + 0.5)
}

// onConvertAll starts a sequential batch in the background
func (ui *RootUI) onConvertAll() {
	if ui.batchActive {
		return
	}
	ui.batchActive = true
	ui.refreshControls()

	go func() {
		err := ui.queue.ConvertAll(ui.ctx)
		fyne.Do(func() {
			ui.batchActive = false
			switch {
			case err == nil:
				ui.sendCompletionNotification()
			case errors.Is(err, context.Canceled):
				log.Printf("Convert all cancelled")
			default:
				log.Printf("Convert all failed: %v", err)
				ui.showBanner(err.Error())
			}
			ui.refreshItems()
		})
	}()
}

// sendCompletionNotification sends a system notification when a batch ends
func (ui *RootUI) sendCompletionNotification() {
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	completed := len(ui.queue.Completed())
	app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyConversionDone),
		Content: fmt.Sprintf("%d %s", completed, ui.localization.GetText(KeyCompleted)),
	})
}

// onDownloadAll writes every completed result into the download directory
func (ui *RootUI) onDownloadAll() {
	dir := ui.settings.GetDownloadDirectory()
	ui.downloader.SetDownloadDirectory(dir)

	paths, err := ui.downloader.DownloadAll(ui.queue.Completed())
	if err != nil {
		log.Printf("Download all finished with errors: %v", err)
		ui.showBanner(ui.localization.GetText(KeyErrorSavingFile) + ": " + err.Error())
	}
	if len(paths) == 0 {
		return
	}

	message := fmt.Sprintf(ui.localization.GetText(KeyFilesSaved), len(paths), dir)
	dialog.ShowCustomConfirm(
		ui.localization.GetText(KeyDownloadAll),
		ui.localization.GetText(KeyReveal),
		ui.localization.GetText(KeyCancel),
		widget.NewLabel(message),
		func(reveal bool) {
			if reveal {
				ui.onRevealFile(paths[0])
			}
		},
		ui.window,
	)
}

// onDownloadItem saves one result through a save dialog
func (ui *RootUI) onDownloadItem(itemID string) {
	item, ok := ui.queue.Get(itemID)
	if !ok || item.Status != model.ItemStatusCompleted {
		log.Printf("Download requested for unavailable item %s", itemID)
		return
	}

	saver := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.showBanner(ui.localization.GetText(KeyErrorSavingFile) + ": " + err.Error())
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := ui.downloader.WriteTo(item, writer); err != nil {
			log.Printf("Failed to save item %s: %v", itemID, err)
			ui.showBanner(ui.localization.GetText(KeyErrorSavingFile) + ": " + err.Error())
			return
		}
		log.Printf("Item %s saved to %s", itemID, writer.URI())
	}, ui.window)
	saver.SetFileName(download.FileName(item))
	saver.Show()
}

// onPreviewItem shows the full-size result in a dialog
func (ui *RootUI) onPreviewItem(itemID string) {
	item, ok := ui.queue.Get(itemID)
	if !ok {
		return
	}
	img := fullPreview(item)
	if img == nil {
		log.Printf("No preview available for item %s", itemID)
		return
	}
	dialog.ShowCustom(download.FileName(item), ui.localization.GetText(KeyClose), img, ui.window)
}

// fullPreview renders the result payload at full resolution, nil unless the item is completed
func fullPreview(item *model.ConversionItem) *canvas.Image {
	if item.Status != model.ItemStatusCompleted {
		return nil
	}
	h, ok := item.ResultHandle.(*preview.Handle)
	if !ok || h == nil {
		return nil
	}
	res := h.Resource()
	if res == nil {
		return nil
	}
	img := canvas.NewImageFromResource(res)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(PreviewDialogWidth, PreviewDialogHeight))
	return img
}

// onRemoveItem drops an item and its previews
func (ui *RootUI) onRemoveItem(itemID string) {
	if err := ui.queue.RemoveItem(itemID); err != nil {
		log.Printf("Failed to remove item %s: %v", itemID, err)
	}
	ui.refreshItems()
}

// onRevealFile opens the file manager at filePath
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Failed to reveal %s: %v", filePath, err)
		ui.showBanner(ui.localization.GetText(KeyErrorOpeningDir) + ": " + err.Error())
	}
}

// onItemUpdate handles item updates from the conversion service
func (ui *RootUI) onItemUpdate(item *model.ConversionItem) {
	log.Printf("Item update received: id=%s status=%s", item.ID, item.Status)
	fyne.Do(ui.refreshItems)
}

// refreshItems re-reads the queue and redraws the list and the controls
func (ui *RootUI) refreshItems() {
	ui.items = ui.queue.Items()
	ui.itemList.Refresh()
	ui.refreshControls()
}

func (ui *RootUI) refreshControls() {
	if len(ui.items) == 0 {
		ui.controls.Hide()
	} else {
		ui.controls.Show()
	}

	converting := ui.dropDisabled()
	if converting {
		ui.convertAllBtn.SetText(ui.localization.GetText(KeyConverting))
		ui.convertAllBtn.Disable()
		ui.selectBtn.Disable()
	} else {
		ui.convertAllBtn.SetText(ui.localization.GetText(KeyConvertAll))
		ui.convertAllBtn.Enable()
		ui.selectBtn.Enable()
	}

	if ui.queue.HasCompleted() {
		ui.downloadAllBtn.Enable()
	} else {
		ui.downloadAllBtn.Disable()
	}
}

// showBanner displays a message in the banner under the drop zone
func (ui *RootUI) showBanner(message string) {
	ui.bannerLabel.SetText(message)
	ui.bannerContainer.Show()
}

// hideBanner hides the banner
func (ui *RootUI) hideBanner() {
	ui.bannerLabel.SetText("")
	ui.bannerContainer.Hide()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved pushes changed settings into the services
func (ui *RootUI) onSettingsSaved() {
	ui.downloader.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
	ui.qualitySlider.SetValue(float64(ui.settings.GetQualityPercent()))
	ui.onQualityChanged(ui.qualitySlider.Value)

	if ui.localization.GetCurrentLanguage() != ui.settings.GetLanguage() {
		ui.onLanguageChange(ui.settings.GetLanguage())
	}
	ui.restartWatcher()
}

// restartWatcher (re)starts the watch folder from settings; an empty folder stops it
func (ui *RootUI) restartWatcher() {
	dir := ui.settings.GetWatchDirectory()

	ui.watcherMu.Lock()
	defer ui.watcherMu.Unlock()

	if ui.watcher != nil {
		if ui.watcher.Dir() == dir {
			return
		}
		if err := ui.watcher.Close(); err != nil {
			log.Printf("Failed to close watcher: %v", err)
		}
		ui.watcher = nil
	}
	if dir == "" {
		return
	}

	w, err := intake.NewWatcher(dir, func(src *model.Source) {
		fyne.Do(func() {
			if ui.dropDisabled() {
				log.Printf("Skipping watched file %s while converting", src.Name)
				return
			}
			ui.addSources([]*model.Source{src})
		})
	})
	if err == nil {
		if err = w.Start(ui.ctx); err != nil {
			w.Close()
		}
	}
	if err != nil {
		log.Printf("Failed to watch %s: %v", dir, err)
		ui.showBanner(ui.localization.GetText(KeyErrorWatching) + ": " + dir)
		return
	}
	ui.watcher = w
}

// Close stops background work and releases every preview
func (ui *RootUI) Close() {
	ui.closeOnce.Do(func() {
		ui.cancel()

		ui.watcherMu.Lock()
		if ui.watcher != nil {
			if err := ui.watcher.Close(); err != nil {
				log.Printf("Failed to close watcher: %v", err)
			}
			ui.watcher = nil
		}
		ui.watcherMu.Unlock()

		ui.queue.Close()
		log.Printf("UI closed")
	})
}
