package m3u

import (
	"fmt"
	"io"
	"strings"
)

// lineBreaks turns CR and LF into spaces. Every field of an entry must stay
// on its own line or the playlist gains entries.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// Channel is a single #EXTINF entry.
type Channel struct {
	Title    string
	URI      string
	Duration float64
	TVGTags  *TVGTags
}

func (pi *Channel) encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "#EXTINF:%0.0f", pi.Duration); err != nil {
		return err
	}

	if pi.TVGTags != nil && !pi.TVGTags.empty() {
		if _, err := w.Write([]byte(" ")); err != nil {
			return err
		}

		if err := pi.TVGTags.encode(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, ",%s\n%s\n", singleLine(pi.Title), singleLine(pi.URI)); err != nil {
		return err
	}

	return nil
}
