package m3u

import (
	"fmt"
	"io"
	"strings"
)

// TVGTags holds the tvg-* attributes of an #EXTINF line.
type TVGTags struct {
	Name string
	Logo string
}

func (t *TVGTags) empty() bool {
	return t.Name == "" && t.Logo == ""
}

func (t *TVGTags) encode(w io.Writer) error {
	attrs := make([]string, 0, 2)
	if t.Name != "" {
		attrs = append(attrs, fmt.Sprintf("tvg-name=%q", singleLine(t.Name)))
	}
	if t.Logo != "" {
		attrs = append(attrs, fmt.Sprintf("tvg-logo=%q", singleLine(t.Logo)))
	}

	_, err := io.WriteString(w, strings.Join(attrs, " "))
	return err
}
