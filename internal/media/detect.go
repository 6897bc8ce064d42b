package media

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies an audio container the decoder understands.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatWAV
	FormatAIFF
	FormatFLAC
	FormatOGG
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatWAV:
		return "wav"
	case FormatAIFF:
		return "aiff"
	case FormatFLAC:
		return "flac"
	case FormatOGG:
		return "ogg"
	default:
		return "unknown"
	}
}

var audioExts = map[string]Format{
	".mp3":  FormatMP3,
	".wav":  FormatWAV,
	".wave": FormatWAV,
	".aif":  FormatAIFF,
	".aiff": FormatAIFF,
	".flac": FormatFLAC,
	".ogg":  FormatOGG,
	".oga":  FormatOGG,
}

// IsSupportedExt returns true if the extension is a decodable audio format.
func IsSupportedExt(ext string) bool {
	_, ok := audioExts[strings.ToLower(ext)]
	return ok
}

// SupportedExts returns the accepted extensions in display order.
func SupportedExts() []string {
	return []string{".mp3", ".wav", ".wave", ".aif", ".aiff", ".flac", ".ogg", ".oga"}
}

// SupportedExtsList returns a human-readable list of supported formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .aiff, .flac, .ogg"
}

// Detect identifies the container from its leading bytes, falling back to the
// file extension of name when the content is not recognized.
func Detect(name string, data []byte) Format {
	if f := sniff(data); f != FormatUnknown {
		return f
	}
	return audioExts[strings.ToLower(filepath.Ext(name))]
}

func sniff(data []byte) Format {
	switch {
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WAVE":
		return FormatWAV
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("FORM")) &&
		(string(data[8:12]) == "AIFF" || string(data[8:12]) == "AIFC"):
		return FormatAIFF
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatOGG
	case bytes.HasPrefix(data, []byte("ID3")):
		// FLAC files occasionally carry a leading ID3v2 tag.
		if off := id3Size(data); off > 0 && off+4 <= len(data) && string(data[off:off+4]) == "fLaC" {
			return FormatFLAC
		}
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	}
	return FormatUnknown
}

// id3Size returns the total size of a leading ID3v2 tag, header included.
func id3Size(data []byte) int {
	if len(data) < 10 {
		return 0
	}
	size := int(data[6]&0x7F)<<21 | int(data[7]&0x7F)<<14 | int(data[8]&0x7F)<<7 | int(data[9]&0x7F)
	size += 10
	if data[5]&0x10 != 0 {
		size += 10 // footer
	}
	return size
}
