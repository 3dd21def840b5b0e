package utils

import (
	"path/filepath"
	"strings"
)

// allowedContentTypes maps accepted attachment extensions to their MIME type.
// Anything not listed here is rejected.
var allowedContentTypes = map[string]string{
	// images
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"jpe":  "image/jpeg",
	"gif":  "image/gif",
	"png":  "image/png",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"ico":  "image/x-icon",
	"heic": "image/heic",
	"heif": "image/heif",
	"avif": "image/avif",

	// text
	"txt": "text/plain",
	"asc": "text/plain",
	"log": "text/plain",
	"csv": "text/csv",
	"tsv": "text/tab-separated-values",
	"ics": "text/calendar",
	"vcf": "text/vcard",
	"rtx": "text/richtext",
	"vtt": "text/vtt",

	// documents
	"pdf":  "application/pdf",
	"rtf":  "application/rtf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"odt":  "application/vnd.oasis.opendocument.text",
	"ods":  "application/vnd.oasis.opendocument.spreadsheet",
	"odp":  "application/vnd.oasis.opendocument.presentation",
	"key":  "application/vnd.apple.keynote",
	"eml":  "message/rfc822",

	// archives
	"zip":  "application/zip",
	"gz":   "application/x-gzip",
	"gzip": "application/x-gzip",
	"tar":  "application/x-tar",
	"7z":   "application/x-7z-compressed",
	"rar":  "application/rar",

	// audio / video
	"mp3":  "audio/mpeg",
	"m4a":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"mp4":  "video/mp4",
	"m4v":  "video/mp4",
	"mov":  "video/quicktime",
	"webm": "video/webm",
	"avi":  "video/avi",
}

var allowedContentTypeValues = func() map[string]bool {
	values := make(map[string]bool, len(allowedContentTypes))
	for _, contentType := range allowedContentTypes {
		values[contentType] = true
	}
	return values
}()

// IsAllowedContentType reports whether contentType, without parameters, is
// one of the types an accepted extension maps to.
func IsAllowedContentType(contentType string) bool {
	return allowedContentTypeValues[contentType]
}

// GetContentTypeFromFilename resolves the MIME type of a file by its
// extension. The second return value is false for unknown extensions.
func GetContentTypeFromFilename(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "", false
	}
	contentType, ok := allowedContentTypes[ext]
	return contentType, ok
}
