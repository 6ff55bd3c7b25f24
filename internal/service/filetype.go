package service

import "strings"

type mimeLabel struct {
	mime  string
	label string
}

// mimeLabels maps common media types to short display labels. Order matters:
// the prefix fallback picks the first entry sharing the major type.
var mimeLabels = []mimeLabel{
	// Documents
	{"application/pdf", "PDF"},
	{"application/msword", "DOC"},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "DOCX"},
	{"application/vnd.ms-excel", "XLS"},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "XLSX"},
	{"application/vnd.ms-powerpoint", "PPT"},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", "PPTX"},
	{"text/plain", "TXT"},
	{"text/csv", "CSV"},

	// Images
	{"image/jpeg", "JPG"},
	{"image/png", "PNG"},
	{"image/gif", "GIF"},
	{"image/svg+xml", "SVG"},
	{"image/webp", "WEBP"},

	// Archives
	{"application/zip", "ZIP"},
	{"application/x-rar-compressed", "RAR"},
	{"application/x-7z-compressed", "7Z"},
	{"application/gzip", "GZ"},

	// Executables
	{"application/x-msdownload", "EXE"},
	{"application/x-executable", "EXE"},
	{"application/octet-stream", "BIN"},

	// Audio/Video
	{"video/mp4", "MP4"},
	{"video/x-msvideo", "AVI"},
	{"video/quicktime", "MOV"},
	{"audio/mpeg", "MP3"},
	{"audio/wav", "WAV"},

	// Others
	{"application/json", "JSON"},
	{"application/xml", "XML"},
}

// FileLabel resolves a media type to a short display label. Exact match first,
// then the first table entry with the same major type, then "FILE". Empty
// input yields "UNKNOWN". Pure: same input, same label.
func FileLabel(mimeType string) string {
	if mimeType == "" {
		return "UNKNOWN"
	}

	for _, e := range mimeLabels {
		if e.mime == mimeType {
			return e.label
		}
	}

	major, _, _ := strings.Cut(mimeType, "/")
	prefix := major + "/"

	for _, e := range mimeLabels {
		if strings.HasPrefix(e.mime, prefix) {
			return e.label
		}
	}

	return "FILE"
}
