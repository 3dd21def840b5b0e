package attachments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "report.pdf", want: "report.pdf"},
		{in: "../../etc/passwd.txt", want: "passwd.txt"},
		{in: `C:\Users\bob\My Report.docx`, want: "My-Report.docx"},
		{in: "quarterly   results (final).xlsx", want: "quarterly-results-final.xlsx"},
		{in: "in\x00voice\x07.pdf", want: "invoice.pdf"},
		{in: "a<b>c:d?e*.png", want: "abcde.png"},
		{in: "  spaced - name .txt", want: "spaced-name-.txt"},
		{in: ".hidden.png", want: "hidden.png"},
		{in: "???", want: ""},
		{in: "dir/", want: ""},
		{in: "résumé.pdf", want: "résumé.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFilename_KeepsExtensionWhenTruncating(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 400) + ".pdf")

	assert.Equal(t, maxFilenameBytes, len(got))
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}
