package m3u

import (
	"fmt"
	"io"
)

// Encoder writes an extended M3U playlist.
type Encoder struct {
	items []*Channel
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{items: []*Channel{}}
}

// AddChannel appends an entry; entries are written in insertion order.
func (p *Encoder) AddChannel(item *Channel) {
	p.items = append(p.items, item)
}

// Encode writes the playlist to w.
func (p *Encoder) Encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "#EXTM3U\n"); err != nil {
		return err
	}

	for _, item := range p.items {
		if err := item.encode(w); err != nil {
			return err
		}
	}

	return nil
}
