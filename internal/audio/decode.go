package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"

	"github.com/olivier-w/climp3d/internal/media"
)

var (
	// ErrUnsupportedFormat is returned for content no decoder recognizes.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrEmptyAudio is returned when a file decodes to zero frames.
	ErrEmptyAudio = errors.New("audio contains no samples")
)

// DecodeError reports that a file could not be turned into a Buffer.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const (
	// readChunkFrames is how many frames are pulled between cancellation checks.
	readChunkFrames = 4096
	// maxEmptyReads bounds consecutive (0, nil) reads before a source is
	// treated as exhausted.
	maxEmptyReads = 64
)

// sampleSource is implemented by all format-specific decoders. ReadSamples
// fills dst with interleaved samples and returns io.EOF once exhausted.
type sampleSource interface {
	SampleRate() int
	Channels() int
	ReadSamples(dst []float32) (int, error)
}

// ReadFile loads the raw bytes of an audio file.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading audio file: %w", err)
	}
	return data, nil
}

// Decode decodes data into a Buffer at DefaultSampleRate.
func Decode(ctx context.Context, name string, data []byte) (*Buffer, error) {
	return decode(ctx, name, data, DefaultSampleRate)
}

func decode(ctx context.Context, name string, data []byte, rate int) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := newSampleSource(media.Detect(name, data), data)
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}
	channels := src.Channels()
	if channels < 1 || src.SampleRate() <= 0 {
		return nil, &DecodeError{Name: name, Err: fmt.Errorf("invalid stream layout: %d channels at %d Hz", channels, src.SampleRate())}
	}

	var interleaved []float32
	chunk := make([]float32, readChunkFrames*channels)
	empty := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := src.ReadSamples(chunk)
		interleaved = append(interleaved, chunk[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DecodeError{Name: name, Err: err}
		}
		if n == 0 {
			if empty++; empty >= maxEmptyReads {
				break
			}
			continue
		}
		empty = 0
	}

	if len(interleaved) < channels {
		return nil, &DecodeError{Name: name, Err: ErrEmptyAudio}
	}

	buf := &Buffer{SampleRate: src.SampleRate(), Data: deinterleave(interleaved, channels)}
	if buf.SampleRate != rate {
		buf = Resample(buf, rate)
	}
	return buf, nil
}

func newSampleSource(format media.Format, data []byte) (sampleSource, error) {
	switch format {
	case media.FormatMP3:
		return newMP3Source(data)
	case media.FormatWAV:
		return newWAVSource(data)
	case media.FormatAIFF:
		return newAIFFSource(data)
	case media.FormatFLAC:
		return newFLACSource(data)
	case media.FormatOGG:
		return newOGGSource(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// --- MP3 ---

type mp3Source struct {
	dec *mp3.Decoder
	raw []byte
}

func newMP3Source(data []byte) (*mp3Source, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Source{dec: dec}, nil
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }

// go-mp3 always produces 16-bit little-endian stereo.
func (s *mp3Source) Channels() int { return 2 }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	if cap(s.raw) < len(dst)*2 {
		s.raw = make([]byte, len(dst)*2)
	}
	raw := s.raw[:len(dst)*2]
	n, err := io.ReadFull(s.dec, raw)
	samples := n / 2
	for i := 0; i < samples; i++ {
		dst[i] = float32(int16(uint16(raw[2*i])|uint16(raw[2*i+1])<<8)) / 32768
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return samples, err
}

// --- WAV / AIFF (go-audio) ---

// pcmReader is the subset of the go-audio decoders used here.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type intSource struct {
	dec       pcmReader
	format    *goaudio.Format
	bitDepth  int
	unsigned8 bool
	intBuf    *goaudio.IntBuffer
}

func (s *intSource) SampleRate() int { return s.format.SampleRate }
func (s *intSource) Channels() int   { return s.format.NumChannels }

func (s *intSource) ReadSamples(dst []float32) (int, error) {
	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	scale := fullScale(s.bitDepth)
	for i := 0; i < n; i++ {
		v := s.intBuf.Data[i]
		if s.unsigned8 {
			v -= 128
		}
		dst[i] = float32(v) / scale
	}
	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}

func fullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return 32768
	}
}

func newWAVSource(data []byte) (*intSource, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("reading WAV format")
	}
	bitDepth := int(dec.BitDepth)
	return &intSource{
		dec:       dec,
		format:    format,
		bitDepth:  bitDepth,
		unsigned8: bitDepth == 8, // 8-bit WAV is unsigned
	}, nil
}

func newAIFFSource(data []byte) (*intSource, error) {
	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid AIFF file")
	}
	dec.ReadInfo()
	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("reading AIFF format")
	}
	return &intSource{
		dec:      dec,
		format:   format,
		bitDepth: int(dec.BitDepth),
	}, nil
}

// --- FLAC ---

type flacSource struct {
	stream   *flac.Stream
	pending  []float32
	channels int
	bps      int
}

func newFLACSource(data []byte) (*flacSource, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	return &flacSource{
		stream:   stream,
		channels: int(stream.Info.NChannels),
		bps:      int(stream.Info.BitsPerSample),
	}, nil
}

func (s *flacSource) SampleRate() int { return int(s.stream.Info.SampleRate) }
func (s *flacSource) Channels() int   { return s.channels }

func (s *flacSource) ReadSamples(dst []float32) (int, error) {
	if len(s.pending) == 0 {
		frame, err := s.stream.ParseNext()
		if err != nil {
			return 0, err
		}
		scale := float32(int64(1) << (s.bps - 1))
		nSamples := frame.Subframes[0].NSamples
		for i := 0; i < nSamples; i++ {
			for ch := 0; ch < s.channels; ch++ {
				s.pending = append(s.pending, float32(frame.Subframes[ch].Samples[i])/scale)
			}
		}
	}
	n := copy(dst, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// --- OGG Vorbis ---

type oggSource struct {
	reader *oggvorbis.Reader
}

func newOGGSource(data []byte) (*oggSource, error) {
	reader, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggSource{reader: reader}, nil
}

func (s *oggSource) SampleRate() int { return s.reader.SampleRate() }
func (s *oggSource) Channels() int   { return s.reader.Channels() }

func (s *oggSource) ReadSamples(dst []float32) (int, error) {
	return s.reader.Read(dst)
}
