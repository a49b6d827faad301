package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/khmerdub/subvoice/internal/ffmpeg"
)

// supported output container formats for assembled timelines
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

// FormatFromPath selects the output container from the destination file
// extension. Unrecognized extensions fall back to mp3.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3
	case ".wav":
		return FormatWAV
	default:
		return FormatMP3
	}
}

// DecodeClip decodes encoded audio bytes (as returned by a synthesis
// backend) into PCM at the requested layout. The bytes are staged in a
// temporary file that is removed on every exit path.
func DecodeClip(
	ctx context.Context,
	data []byte,
	ext string,
	sampleRate, channels int,
) (*Clip, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data to decode")
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	tmpFile, err := os.CreateTemp("", "subvoice-clip-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err = ffmpeg.Input(tmpPath).
		Output("pipe:", ffmpeg.KwArgs{
			"f":      "s16le",
			"acodec": "pcm_s16le",
			"ar":     sampleRate,
			"ac":     channels,
		}).
		WithOutput(&out).
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio: %w", err)
	}

	return &Clip{
		PCM:        out.Bytes(),
		SampleRate: sampleRate,
		Channels:   channels,
	}, nil
}

// EncodeTimeline encodes an assembled timeline into the destination file.
// The container format is passed explicitly so an unrecognized destination
// extension cannot steer ffmpeg's own format guessing.
func EncodeTimeline(
	ctx context.Context,
	tl *Timeline,
	outputPath string,
	format Format,
) error {
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{"y": ""}
	switch format {
	case FormatWAV:
		kwargs["f"] = "wav"
		kwargs["acodec"] = "pcm_s16le"
	default:
		kwargs["f"] = "mp3"
		kwargs["acodec"] = "libmp3lame"
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":  "s16le",
		"ar": tl.SampleRate(),
		"ac": tl.Channels(),
	}).
		Output(outputPath, kwargs).
		OverWriteOutput().
		WithInput(bytes.NewReader(tl.PCM())).
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("failed to encode audio: %w", err)
	}

	return nil
}
