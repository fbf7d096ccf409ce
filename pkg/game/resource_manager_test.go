package game

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// makeWAV builds a minimal 16-bit stereo PCM WAV file with the given number of frames.
func makeWAV(frames int) []byte {
	const (
		channels      = 2
		sampleRate    = 48000
		bitsPerSample = 16
	)
	dataSize := frames * channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*bitsPerSample/8))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestDecodeAudioWAV(t *testing.T) {
	stream, err := DecodeAudio(".WAV", bytes.NewReader(makeWAV(4)))
	if err != nil {
		t.Fatalf("DecodeAudio failed: %v", err)
	}
	if stream.Length() <= 0 {
		t.Errorf("expected positive stream length, got %d", stream.Length())
	}
}

func TestDecodeAudioAU(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(".snd")
	for _, v := range []uint32{24, 0xFFFFFFFF, 1, 8000, 1} { // offset, size, μ-law, rate, mono
		binary.Write(&buf, binary.BigEndian, v)
	}
	buf.Write([]byte{0xFF, 0xFF, 0xFF})

	stream, err := DecodeAudio(".au", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeAudio failed: %v", err)
	}
	if stream.Length() != 12 {
		t.Errorf("Length() = %d, want 12", stream.Length())
	}
}

func TestDecodeAudioErrors(t *testing.T) {
	tests := []struct {
		name        string
		ext         string
		data        []byte
		errContains string
	}{
		{"unsupported format", ".flac", []byte("fLaC"), "unsupported audio format"},
		{"corrupted wav", ".wav", []byte("not a wav file"), ""},
		{"corrupted au", ".au", []byte(".snd"), "too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAudio(tt.ext, bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err, tt.errContains)
			}
		})
	}
}

func TestResourceManagerPath(t *testing.T) {
	rm := NewResourceManager(nil, "assets")
	want := filepath.Join("assets", "reel1", "frame1.png")
	if got := rm.Path("reel1/frame1.png"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	rm := NewResourceManager(nil, t.TempDir())
	if _, err := rm.LoadImage("missing.png"); err == nil {
		t.Error("expected error for missing image")
	}
	if rm.GetImage("missing.png") != nil {
		t.Error("failed image should not be cached")
	}
}

func TestLoadImageCorrupted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	rm := NewResourceManager(nil, dir)
	_, err := rm.LoadImage("bad.png")
	if err == nil || !strings.Contains(err.Error(), "failed to decode image") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestLoadAudioWithoutContext(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Spin.wav"), makeWAV(4), 0o644); err != nil {
		t.Fatal(err)
	}
	rm := NewResourceManager(nil, dir)

	if _, err := rm.LoadSoundEffect("Spin.wav"); err == nil || !strings.Contains(err.Error(), "audio context not available") {
		t.Errorf("expected missing context error, got %v", err)
	}
	if _, err := rm.LoadAudio("Spin.wav"); err == nil {
		t.Error("expected error from LoadAudio without audio context")
	}
}
