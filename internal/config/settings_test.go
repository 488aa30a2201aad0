package config

import (
	"testing"
)

func TestNewSettings(t *testing.T) {
	settings := NewSettings(Defaults{})

	if settings.GetQuality() != DefaultQuality {
		t.Errorf("Expected default quality %v, got %v", DefaultQuality, settings.GetQuality())
	}
	if settings.GetLanguage() != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, settings.GetLanguage())
	}
	if settings.GetWatchDirectory() != "" {
		t.Errorf("Expected watching to be disabled by default, got %s", settings.GetWatchDirectory())
	}
	if settings.GetMultiple() != DefaultMultiple {
		t.Errorf("Expected multiple %v by default", DefaultMultiple)
	}
}

func TestNewSettings_FromDefaults(t *testing.T) {
	quality := 0.6
	multiple := false
	settings := NewSettings(Defaults{
		DownloadDirectory: "/data/out",
		Quality:           &quality,
		Language:          "pt",
		WatchDirectory:    "/data/in",
		Multiple:          &multiple,
	})

	if settings.GetDownloadDirectory() != "/data/out" {
		t.Errorf("Expected download directory /data/out, got %s", settings.GetDownloadDirectory())
	}
	if settings.GetQuality() != 0.6 {
		t.Errorf("Expected quality 0.6, got %v", settings.GetQuality())
	}
	if settings.GetLanguage() != "pt" {
		t.Errorf("Expected language pt, got %s", settings.GetLanguage())
	}
	if settings.GetWatchDirectory() != "/data/in" {
		t.Errorf("Expected watch directory /data/in, got %s", settings.GetWatchDirectory())
	}
	if settings.GetMultiple() {
		t.Error("Expected multiple to be disabled")
	}
}

func TestDownloadDirectory(t *testing.T) {
	settings := NewSettings(Defaults{})

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestQuality(t *testing.T) {
	settings := NewSettings(Defaults{})

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0, MinQuality},
		{-3, MinQuality},
		{1.5, MaxQuality},
		{1, 1},
	}

	for _, test := range tests {
		settings.SetQuality(test.input)
		if settings.GetQuality() != test.expected {
			t.Errorf("SetQuality(%v): expected %v, got %v", test.input, test.expected, settings.GetQuality())
		}
	}
}

func TestQualityPercent(t *testing.T) {
	settings := NewSettings(Defaults{})

	settings.SetQualityPercent(75)
	if settings.GetQuality() != 0.75 {
		t.Errorf("Expected quality 0.75, got %v", settings.GetQuality())
	}
	if settings.GetQualityPercent() != 75 {
		t.Errorf("Expected percent 75, got %d", settings.GetQualityPercent())
	}

	settings.SetQualityPercent(0) // Should be clamped to 1
	if settings.GetQualityPercent() != 1 {
		t.Errorf("Expected percent clamped to 1, got %d", settings.GetQualityPercent())
	}

	settings.SetQualityPercent(150) // Should be clamped to 100
	if settings.GetQualityPercent() != 100 {
		t.Errorf("Expected percent clamped to 100, got %d", settings.GetQualityPercent())
	}
}

func TestLanguage(t *testing.T) {
	settings := NewSettings(Defaults{})

	settings.SetLanguage("en")
	if settings.GetLanguage() != "en" {
		t.Errorf("Expected language 'en', got %s", settings.GetLanguage())
	}

	settings.SetLanguage("xx")
	if settings.GetLanguage() != DefaultLanguage {
		t.Errorf("Unknown language should fall back to %s, got %s", DefaultLanguage, settings.GetLanguage())
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(Defaults{})

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
