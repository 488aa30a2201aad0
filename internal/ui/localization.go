package ui

import (
	"os"
	"strings"

	"github.com/ytget/png2webp/internal/convert"
	"github.com/ytget/png2webp/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyDefaultQuality    = "default_quality"
	KeyWatchDirectory    = "watch_directory"
	KeyWatchHint         = "watch_hint"
	KeyMultiple          = "multiple"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyDropHint          = "drop_hint"
	KeySelectFiles       = "select_files"
	KeyPNGOnly           = "png_only"
	KeyQualityLabel      = "quality_label"
	KeyConvertAll        = "convert_all"
	KeyConverting        = "converting"
	KeyDownloadAll       = "download_all"
	KeyDownloadWebP      = "download_webp"
	KeyRemove            = "remove"
	KeyReady             = "ready"
	KeyCompleted         = "completed"
	KeySaved             = "saved"
	KeyConversionDone    = "conversion_done"
	KeyFilesSaved        = "files_saved"
	KeyReveal            = "reveal"
	KeyErrorReadingFile  = "error_reading_file"
	KeyErrorSavingFile   = "error_saving_file"
	KeyErrorWatching     = "error_watching"
	KeyErrorOpeningDir   = "error_opening_dir"
	KeyErrorLoadingImage = "error_loading_image"
	KeyErrorSurface      = "error_surface"
	KeyErrorEncoding     = "error_encoding"
	KeyErrorConversion   = "error_conversion"
	KeyPreview           = "preview"
	KeyClose             = "close"
)

// itemErrorKeys maps the messages stored on failed items to their text keys
var itemErrorKeys = map[string]string{
	convert.MsgReadFailed:     KeyErrorReadingFile,
	convert.MsgDecodeFailed:   KeyErrorLoadingImage,
	convert.MsgSurfaceFailed:  KeyErrorSurface,
	convert.MsgEncodeFailed:   KeyErrorEncoding,
	model.DefaultErrorMessage: KeyErrorConversion,
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage picks the UI language from the POSIX locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(env)
		if len(value) >= 2 {
			return strings.ToLower(value[:2])
		}
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// ItemErrorText translates an item error message; unknown messages are shown as is
func (l *Localization) ItemErrorText(message string) string {
	if key, ok := itemErrorKeys[message]; ok {
		return l.GetText(key)
	}
	return message
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "PNG to WebP Converter",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyDefaultQuality:    "Default Quality (1-100)",
		KeyWatchDirectory:    "Watch Folder",
		KeyWatchHint:         "Leave empty to disable",
		KeyMultiple:          "Accept several files at once",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyDropHint:          "Drop PNG files here",
		KeySelectFiles:       "Select files",
		KeyPNGOnly:           "Please select PNG images only",
		KeyQualityLabel:      "WebP Quality: %d%%",
		KeyConvertAll:        "Convert All",
		KeyConverting:        "Converting...",
		KeyDownloadAll:       "Download All",
		KeyDownloadWebP:      "Download WebP",
		KeyRemove:            "Remove",
		KeyReady:             "Ready",
		KeyCompleted:         "Done",
		KeySaved:             "saved",
		KeyConversionDone:    "Conversion finished",
		KeyFilesSaved:        "Saved %d file(s) to %s",
		KeyReveal:            "Reveal",
		KeyErrorReadingFile:  "Failed to read file",
		KeyErrorSavingFile:   "Failed to save file",
		KeyErrorWatching:     "Failed to watch folder",
		KeyErrorOpeningDir:   "Failed to open folder",
		KeyErrorLoadingImage: "Failed to load image",
		KeyErrorSurface:      "Failed to get canvas context",
		KeyErrorEncoding:     "Failed to convert image",
		KeyErrorConversion:   "Conversion failed",
		KeyPreview:           "View",
		KeyClose:             "Close",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Конвертер PNG в WebP",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyDefaultQuality:    "Качество по умолчанию (1-100)",
		KeyWatchDirectory:    "Отслеживаемая папка",
		KeyWatchHint:         "Оставьте пустым, чтобы отключить",
		KeyMultiple:          "Принимать несколько файлов сразу",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyDropHint:          "Перетащите PNG-файлы сюда",
		KeySelectFiles:       "Выбрать файлы",
		KeyPNGOnly:           "Пожалуйста, выберите только PNG-изображения",
		KeyQualityLabel:      "Качество WebP: %d%%",
		KeyConvertAll:        "Конвертировать все",
		KeyConverting:        "Конвертация...",
		KeyDownloadAll:       "Скачать все",
		KeyDownloadWebP:      "Скачать WebP",
		KeyRemove:            "Удалить",
		KeyReady:             "Готов",
		KeyCompleted:         "Готово",
		KeySaved:             "экономия",
		KeyConversionDone:    "Конвертация завершена",
		KeyFilesSaved:        "Сохранено файлов: %d в %s",
		KeyReveal:            "Показать",
		KeyErrorReadingFile:  "Не удалось прочитать файл",
		KeyErrorSavingFile:   "Не удалось сохранить файл",
		KeyErrorWatching:     "Не удалось отслеживать папку",
		KeyErrorOpeningDir:   "Не удалось открыть папку",
		KeyErrorLoadingImage: "Не удалось загрузить изображение",
		KeyErrorSurface:      "Не удалось создать холст",
		KeyErrorEncoding:     "Не удалось конвертировать изображение",
		KeyErrorConversion:   "Ошибка конвертации",
		KeyPreview:           "Просмотр",
		KeyClose:             "Закрыть",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Conversor PNG para WebP",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyDefaultQuality:    "Qualidade Padrão (1-100)",
		KeyWatchDirectory:    "Pasta Monitorada",
		KeyWatchHint:         "Deixe vazio para desativar",
		KeyMultiple:          "Aceitar vários arquivos de uma vez",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyDropHint:          "Solte arquivos PNG aqui",
		KeySelectFiles:       "Selecionar arquivos",
		KeyPNGOnly:           "Por favor, selecione apenas imagens PNG",
		KeyQualityLabel:      "Qualidade WebP: %d%%",
		KeyConvertAll:        "Converter Todos",
		KeyConverting:        "Convertendo...",
		KeyDownloadAll:       "Baixar Todos",
		KeyDownloadWebP:      "Baixar WebP",
		KeyRemove:            "Remover",
		KeyReady:             "Pronto",
		KeyCompleted:         "Concluído",
		KeySaved:             "economia",
		KeyConversionDone:    "Conversão concluída",
		KeyFilesSaved:        "%d arquivo(s) salvo(s) em %s",
		KeyReveal:            "Mostrar",
		KeyErrorReadingFile:  "Falha ao ler arquivo",
		KeyErrorSavingFile:   "Falha ao salvar arquivo",
		KeyErrorWatching:     "Falha ao monitorar pasta",
		KeyErrorOpeningDir:   "Falha ao abrir pasta",
		KeyErrorLoadingImage: "Falha ao carregar imagem",
		KeyErrorSurface:      "Falha ao obter contexto do canvas",
		KeyErrorEncoding:     "Falha ao converter imagem",
		KeyErrorConversion:   "Falha na conversão",
		KeyPreview:           "Ver",
		KeyClose:             "Fechar",
	}
}
