package audio

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
)

func TestReadMetadataFromID3Tag(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	tag.SetTitle("Pulse")
	tag.SetArtist("Night Drive")
	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("writing tag: %v", err)
	}

	m := ReadMetadata("/music/track01.mp3", buf.Bytes())
	if m.Title != "Pulse" || m.Artist != "Night Drive" {
		t.Fatalf("unexpected metadata: %+v", m)
	}
}

func TestReadMetadataFallsBackToFileName(t *testing.T) {
	m := ReadMetadata("/music/Some Song.flac", []byte("fLaC"))
	if m.Title != "Some Song" || m.Artist != "" {
		t.Fatalf("unexpected fallback metadata: %+v", m)
	}
}
