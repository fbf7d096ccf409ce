package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	auformat "github.com/decker502/slotreel/internal/audio"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ResourceManager is responsible for centralized management of slot machine assets.
// It loads images and audio from an assets directory and caches them so that
// every file is read only once.
//
// The ResourceManager implements the following key features:
//   - Image loading and caching (PNG/JPEG)
//   - Audio loading and caching (WAV/MP3/OGG/AU), looping or one-shot
//   - Error handling for missing or corrupted resources
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is used only from the ebiten game loop.
type ResourceManager struct {
	assetsDir    string
	imageCache   map[string]*ebiten.Image // Cache for loaded images: name -> Image
	musicCache   map[string]*audio.Player // Looping players: name -> Player
	soundCache   map[string]*audio.Player // One-shot players: name -> Player
	audioContext *audio.Context
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context, may be nil when audio is disabled.
//   - assetsDir: Directory that asset names are resolved against.
func NewResourceManager(audioContext *audio.Context, assetsDir string) *ResourceManager {
	return &ResourceManager{
		assetsDir:    assetsDir,
		imageCache:   make(map[string]*ebiten.Image),
		musicCache:   make(map[string]*audio.Player),
		soundCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
	}
}

// Path resolves an asset name (e.g. "reel1/frame1.png") to a file path.
func (rm *ResourceManager) Path(name string) string {
	return filepath.Join(rm.assetsDir, filepath.FromSlash(name))
}

// LoadImage loads an image asset and caches it for future use.
// If the image has already been loaded, it returns the cached version.
func (rm *ResourceManager) LoadImage(name string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[name]; exists {
		return cachedImage, nil
	}

	path := rm.Path(name)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[name] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(name string) *ebiten.Image {
	return rm.imageCache[name]
}

// LoadAudio loads an audio asset wrapped in an infinite loop (background music).
func (rm *ResourceManager) LoadAudio(name string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.musicCache[name]; exists {
		return cachedPlayer, nil
	}

	stream, err := rm.decodeAudio(name)
	if err != nil {
		return nil, err
	}

	loopStream := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", name, err)
	}

	rm.musicCache[name] = player
	return player, nil
}

// LoadSoundEffect loads an audio asset for one-shot playback.
// Unlike LoadAudio, the stream is NOT wrapped in an infinite loop.
func (rm *ResourceManager) LoadSoundEffect(name string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.soundCache[name]; exists {
		return cachedPlayer, nil
	}

	stream, err := rm.decodeAudio(name)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", name, err)
	}

	rm.soundCache[name] = player
	return player, nil
}

// AudioStream is the common shape of the ebiten audio decoders.
type AudioStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAudio reads the whole file into memory and decodes it by extension.
func (rm *ResourceManager) decodeAudio(name string) (AudioStream, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not available for %s", name)
	}

	path := rm.Path(name)
	audioData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	stream, err := DecodeAudio(filepath.Ext(path), bytes.NewReader(audioData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w", path, err)
	}
	return stream, nil
}

// DecodeAudio decodes an in-memory audio file by its extension.
// Supported formats: .wav, .mp3, .ogg, .au
func DecodeAudio(ext string, reader io.ReadSeeker) (AudioStream, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, err
		}
		return stream, nil
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, err
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, err
		}
		return stream, nil
	case ".au":
		stream, err := auformat.DecodeAU(reader)
		if err != nil {
			return nil, err
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", ext)
	}
}
