package m3u

import (
	"strings"
	"testing"
)

func TestEncoder_Encode(t *testing.T) {
	tests := []struct {
		name  string
		items []*Channel
		want  string
	}{
		{
			name: "empty playlist",
			want: "#EXTM3U\n",
		},
		{
			name: "entry without tags",
			items: []*Channel{
				{Title: "HBO", URI: "http://example.com/hbo", Duration: -1},
			},
			want: "#EXTM3U\n#EXTINF:-1,HBO\nhttp://example.com/hbo\n",
		},
		{
			name: "entry with name and logo",
			items: []*Channel{
				{
					Title:    "ADN 40",
					URI:      "http://example.com/adn.m3u8",
					Duration: -1,
					TVGTags:  &TVGTags{Name: "ADN 40", Logo: "http://example.com/adn.png"},
				},
			},
			want: "#EXTM3U\n#EXTINF:-1 tvg-name=\"ADN 40\" tvg-logo=\"http://example.com/adn.png\",ADN 40\nhttp://example.com/adn.m3u8\n",
		},
		{
			name: "line breaks stay inside the entry",
			items: []*Channel{
				{
					Title:    "Evil\nhttp://attacker/x",
					URI:      "http://ok\r\n",
					Duration: -1,
					TVGTags:  &TVGTags{Name: "Evil\nhttp://attacker/x", Logo: "l\rx"},
				},
			},
			want: "#EXTM3U\n#EXTINF:-1 tvg-name=\"Evil http://attacker/x\" tvg-logo=\"l x\",Evil http://attacker/x\nhttp://ok \n",
		},
		{
			name: "empty tags are omitted",
			items: []*Channel{
				{Title: "X", URI: "u", Duration: -1, TVGTags: &TVGTags{}},
			},
			want: "#EXTM3U\n#EXTINF:-1,X\nu\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder()
			for _, item := range tt.items {
				enc.AddChannel(item)
			}

			var sb strings.Builder
			if err := enc.Encode(&sb); err != nil {
				t.Fatalf("Encode() unexpected error = %v", err)
			}

			if got := sb.String(); got != tt.want {
				t.Errorf("Encode() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
