package platform

import (
	"testing"
	"time"
)

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PLtest123", true},
		{"https://www.youtube.com/watch?v=abc&list=PLtest123", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"", false},
	}

	for _, test := range tests {
		if result := IsPlaylistURL(test.url); result != test.expected {
			t.Errorf("IsPlaylistURL(%q) = %v, expected %v", test.url, result, test.expected)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PLtest123", "PLtest123"},
		{"https://www.youtube.com/watch?v=abc&list=PLtest123&index=2", "PLtest123"},
		{"https://www.youtube.com/watch?v=abc", ""},
		{"https://www.youtube.com/playlist?list=", ""},
		{"", ""},
	}

	for _, test := range tests {
		if result := ExtractPlaylistID(test.url); result != test.expected {
			t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", test.url, result, test.expected)
		}
	}
}

func TestPlaylistExpander_Timeout(t *testing.T) {
	expander := NewPlaylistExpander()
	if expander.timeout != DefaultExpandTimeout {
		t.Errorf("default timeout = %v, expected %v", expander.timeout, DefaultExpandTimeout)
	}

	expander.SetTimeout(5 * time.Second)
	if expander.timeout != 5*time.Second {
		t.Errorf("timeout = %v after SetTimeout", expander.timeout)
	}
}
