package platform

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=abc123", "abc123", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"", "", false},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"https://www.youtube.com/playlist?list=PL123", "", false},
		{"https://www.youtube.com/watch", "", false},
		{"not a url at all!", "", false},
		{"https://vimeo.com/12345", "", false},
	}

	for _, test := range tests {
		id, ok := ExtractVideoID(test.raw)
		if ok != test.ok || id != test.expected {
			t.Errorf("ExtractVideoID(%q) = (%q, %v), expected (%q, %v)",
				test.raw, id, ok, test.expected, test.ok)
		}
	}
}

func TestIsVideoURL(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://example.com/video", false},
		{"", false},
	}

	for _, test := range tests {
		result := IsVideoURL(test.raw)
		if result != test.expected {
			t.Errorf("IsVideoURL(%q) = %v, expected %v", test.raw, result, test.expected)
		}
	}
}
