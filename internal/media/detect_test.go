package media

import (
	"strings"
	"testing"
)

func TestIsSupportedExtCoversDecodableFormats(t *testing.T) {
	for _, ext := range []string{".mp3", ".WAV", ".aiff", ".flac", ".ogg"} {
		if !IsSupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".m4a", ".txt", ""} {
		if IsSupportedExt(ext) {
			t.Fatalf("expected %q to be unsupported", ext)
		}
	}
}

func TestSupportedExtsAreAllRecognized(t *testing.T) {
	for _, ext := range SupportedExts() {
		if !IsSupportedExt(ext) {
			t.Fatalf("SupportedExts lists %s but IsSupportedExt rejects it", ext)
		}
	}
	if !strings.Contains(SupportedExtsList(), ".flac") {
		t.Fatalf("expected list to mention .flac, got %q", SupportedExtsList())
	}
}

func TestDetectSniffsContentBeforeExtension(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want Format
	}{
		{"wav", "song.mp3", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), FormatWAV},
		{"aiff", "song", []byte("FORM\x00\x00\x00\x00AIFFCOMM"), FormatAIFF},
		{"aifc", "song", []byte("FORM\x00\x00\x00\x00AIFCCOMM"), FormatAIFF},
		{"flac", "song.ogg", []byte("fLaC\x00\x00\x00\x22"), FormatFLAC},
		{"ogg", "song", []byte("OggS\x00\x02"), FormatOGG},
		{"id3 mp3", "song", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), FormatMP3},
		{"mpeg sync", "song", []byte{0xFF, 0xFB, 0x90, 0x64}, FormatMP3},
		{"extension fallback", "track.flac", []byte("????"), FormatFLAC},
		{"unknown", "notes.txt", []byte("hello world"), FormatUnknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.file, tt.data); got != tt.want {
			t.Errorf("%s: Detect() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetectFLACBehindID3Tag(t *testing.T) {
	data := []byte("ID3\x04\x00\x00\x00\x00\x00\x02")
	data = append(data, 0, 0)
	data = append(data, []byte("fLaC")...)
	if got := Detect("x", data); got != FormatFLAC {
		t.Fatalf("Detect() = %v, want flac", got)
	}
}
