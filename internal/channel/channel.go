package channel

import (
	"errors"
)

// Domain errors
var (
	ErrCorruptPersistedData = errors.New("persisted channel list is corrupt")
	ErrIndexOutOfRange      = errors.New("channel index out of range")
)

// Channel represents a TV channel entry in the player's list.
// It is an immutable value: edits replace the whole record.
type Channel struct {
	name string
	url  string
	logo string
}

// NewChannel creates a new Channel. No validation is performed; empty
// strings are valid values for every field.
func NewChannel(name, url, logo string) Channel {
	return Channel{name: name, url: url, logo: logo}
}

// Name returns the channel's display label.
func (c Channel) Name() string {
	return c.name
}

// URL returns the stream locator handed to the player.
func (c Channel) URL() string {
	return c.url
}

// Logo returns the channel's image locator.
func (c Channel) Logo() string {
	return c.logo
}

// Defaults returns the seed list used when nothing has been persisted yet.
func Defaults() []Channel {
	return []Channel{
		NewChannel(
			"Canal de las estrellas",
			"https://channel01-onlymex.akamaized.net/hls/live/2022749/event01/index.m3u8",
			"https://th.bing.com/th/id/R.f287f024fb98505160209ddf885b91c5?rik=UUzrGFJnNKm6tw&riu=http%3a%2f%2fimages.mi.tv%2fchannels%2fcl_canal-de-las-estrellas_m.png&ehk=WeR4N2%2b41FbWUl4DKkuqqqB0Kr1%2f6GduORX6ahMXOKA%3d&risl=&pid=ImgRaw&r=0",
		),
		NewChannel(
			"ADN 40",
			"https://mdstrm.com/live-stream-playlist/60b578b060947317de7b57ac.m3u8",
			"https://th.bing.com/th/id/R.d46444904658ce1e4f895c0338ce27c1?rik=wQLUrCQ6fdNFzQ&riu=http%3a%2f%2fdirectostv.teleame.com%2fwp-content%2fuploads%2f2018%2f02%2fADN-40-en-vivo-Online.png&ehk=%2fhGu0g2u9i5yfict%2fDb8xgEzRBujBfIgEZ7itohFsQ8%3d&risl=&pid=ImgRaw&r=0",
		),
	}
}

// Equal reports whether two lists hold the same channels in the same order.
func Equal(a, b []Channel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
