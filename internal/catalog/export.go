package catalog

import (
	"encoding/json"
	"mime"
	"regexp"
	"strings"

	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// DownloadFilename names the JSON export of p: the title with every
// whitespace run replaced by an underscore, plus ".json".
func DownloadFilename(p models.Project) string {
	return whitespaceRun.ReplaceAllString(p.Title, "_") + ".json"
}

// SnippetFilename names the code snippet download of p.
func SnippetFilename(p models.Project) string {
	ext := "txt"
	if strings.EqualFold(p.Language, "python") {
		ext = "py"
	}
	return p.Title + "." + ext
}

// ContentDisposition formats an attachment header for filename. Names that
// are not plain ASCII use the RFC 2231 extended parameter.
func ContentDisposition(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// MarshalProject encodes p as indented JSON.
func MarshalProject(p models.Project) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
