package convert

import "testing"

func TestWebPFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"photo.png", "photo.webp"},
		{"photo.PNG", "photo.webp"},
		{"archive.tar.png", "archive.tar.webp"},
		{"noextension", "noextension.webp"},
		{".hidden", ".webp"},
		{"", ".webp"},
	}

	for _, test := range tests {
		result := WebPFileName(test.input)
		if result != test.expected {
			t.Errorf("WebPFileName(%s) = %s, expected %s", test.input, result, test.expected)
		}
	}
}
