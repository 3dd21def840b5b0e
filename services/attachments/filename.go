package attachments

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFilenameBytes = 255

var unsafeFilenameChars = strings.NewReplacer(
	"?", "", "[", "", "]", "", "=", "", "<", "", ">", "",
	":", "", ";", "", ",", "", "'", "", "\"", "", "&", "",
	"$", "", "#", "", "*", "", "(", "", ")", "", "|", "",
	"~", "", "`", "", "!", "", "{", "", "}", "", "%", "",
	"+", "", "^", "", "’", "", "«", "", "»", "",
	"“", "", "”", "",
)

// SanitizeFilename reduces an untrusted attachment name to a safe base name.
// The extension is kept. An empty result means nothing usable was left.
func SanitizeFilename(name string) string {
	// treat both separators alike regardless of the host OS
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	name = strings.Map(func(r rune) rune {
		if r == utf8.RuneError || unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	name = unsafeFilenameChars.Replace(name)

	// whitespace and dash runs become a single dash
	var b strings.Builder
	pendingDash := false
	for _, r := range name {
		if unicode.IsSpace(r) || r == '-' {
			pendingDash = true
			continue
		}
		if pendingDash {
			b.WriteRune('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	if pendingDash {
		b.WriteRune('-')
	}
	name = strings.Trim(b.String(), ".-_")

	return truncateFilename(name)
}

func truncateFilename(name string) string {
	if len(name) <= maxFilenameBytes {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) >= maxFilenameBytes {
		ext = ""
	}
	base := name[:len(name)-len(ext)]
	limit := maxFilenameBytes - len(ext)
	for len(base) > limit {
		_, size := utf8.DecodeLastRuneInString(base)
		base = base[:len(base)-size]
	}
	return base + ext
}
