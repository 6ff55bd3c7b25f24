package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BlufyTeam/contacts/internal/service"
)

func TestFileLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mimeType string
		expected string
	}{
		{"Known document type", "application/pdf", "PDF"},
		{"Known spreadsheet type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "XLSX"},
		{"Known image type", "image/png", "PNG"},
		{"Known archive type", "application/zip", "ZIP"},
		{"Unknown image falls back to first image label", "image/x-icon", "JPG"},
		{"Unknown video falls back to first video label", "video/webm", "MP4"},
		{"Unknown audio falls back to first audio label", "audio/ogg", "MP3"},
		{"Unknown major type", "font/woff2", "FILE"},
		{"Empty media type", "", "UNKNOWN"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.expected, service.FileLabel(test.mimeType))
		})
	}
}
