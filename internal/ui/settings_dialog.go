package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/png2webp/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	qualityEntry     *widget.Entry
	watchDirEntry    *widget.Entry
	multipleCheck    *widget.Check
	languageSelect   *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after values are applied.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.downloadDirEntry = widget.NewEntry()
	browseDownloadBtn := widget.NewButton(l.GetText(KeyBrowse), func() {
		sd.browseDirectory(sd.downloadDirEntry)
	})
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDownloadBtn, sd.downloadDirEntry)

	sd.qualityEntry = widget.NewEntry()
	sd.qualityEntry.SetPlaceHolder("1-100")
	sd.qualityEntry.Validator = validateQualityPercent

	sd.watchDirEntry = widget.NewEntry()
	sd.watchDirEntry.SetPlaceHolder(l.GetText(KeyWatchHint))
	browseWatchBtn := widget.NewButton(l.GetText(KeyBrowse), func() {
		sd.browseDirectory(sd.watchDirEntry)
	})
	watchDirRow := container.NewBorder(nil, nil, nil, browseWatchBtn, sd.watchDirEntry)

	sd.multipleCheck = widget.NewCheck(l.GetText(KeyMultiple), nil)

	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,

		widget.NewLabel(l.GetText(KeyDefaultQuality)+":"),
		sd.qualityEntry,

		widget.NewLabel(l.GetText(KeyWatchDirectory)+":"),
		watchDirRow,
		sd.multipleCheck,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// validateQualityPercent accepts whole numbers; range clamping happens in config
func validateQualityPercent(text string) error {
	if text == "" {
		return nil
	}
	_, err := strconv.Atoi(text)
	return err
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.qualityEntry.SetText(strconv.Itoa(sd.settings.GetQualityPercent()))
	sd.watchDirEntry.SetText(sd.settings.GetWatchDirectory())
	sd.multipleCheck.SetChecked(sd.settings.GetMultiple())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// browseDirectory fills target with a folder picked in a dialog
func (sd *SettingsDialog) browseDirectory(target *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		target.SetText(uri.Path())
	}, sd.window)
}

// onSave applies the entered values to the session settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

func (sd *SettingsDialog) apply() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if percent, err := strconv.Atoi(sd.qualityEntry.Text); err == nil {
		sd.settings.SetQualityPercent(percent)
	}

	// empty is allowed and turns watching off
	sd.settings.SetWatchDirectory(sd.watchDirEntry.Text)
	sd.settings.SetMultiple(sd.multipleCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
