package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakePlayer struct {
	name    string
	loop    bool
	playing bool
	plays   int
	rewinds int
	volume  float64
}

func (p *fakePlayer) Play() { p.playing = true; p.plays++ }
func (p *fakePlayer) Pause() { p.playing = false }
func (p *fakePlayer) Rewind() error { p.rewinds++; return nil }
func (p *fakePlayer) IsPlaying() bool { return p.playing }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }

type fakeLoader struct {
	loaded  []string
	players map[string]*fakePlayer
	fail    map[string]error
}

func (l *fakeLoader) load(name string, loop bool) (Player, error) {
	if err := l.fail[name]; err != nil {
		return nil, err
	}
	key := name
	if loop {
		key += "#loop"
	}
	l.loaded = append(l.loaded, key)
	p := &fakePlayer{name: name, loop: loop}
	l.players[key] = p
	return p, nil
}

var testTracks = map[string]string{
	"BG_Music":   "BG_Music.wav",
	"Spin_Music": "Spin.wav",
}

func newTestAudioManager() (*AudioManager, *fakeLoader) {
	loader := &fakeLoader{players: make(map[string]*fakePlayer)}
	return NewAudioManagerWithLoader(loader.load, testTracks, nil), loader
}

func TestAudioManagerPreload(t *testing.T) {
	am, loader := newTestAudioManager()
	if err := am.Preload("BG_Music", "Spin_Music"); err != nil {
		t.Fatalf("Preload failed: %v", err)
	}
	want := []string{"BG_Music.wav#loop", "Spin.wav"}
	if diff := cmp.Diff(want, loader.loaded); diff != "" {
		t.Errorf("loaded files mismatch (-want +got):\n%s", diff)
	}

	// 预加载后播放不再重复加载
	if err := am.PlayOnce("Spin_Music"); err != nil {
		t.Fatal(err)
	}
	if len(loader.loaded) != 2 {
		t.Errorf("track reloaded after preload: %v", loader.loaded)
	}
}

func TestAudioManagerPreloadFailure(t *testing.T) {
	am, loader := newTestAudioManager()
	loader.fail = map[string]error{"Spin.wav": errors.New("no such file")}

	err := am.Preload("BG_Music", "Spin_Music")
	if err == nil {
		t.Fatal("expected preload error")
	}
	if !errors.Is(err, loader.fail["Spin.wav"]) {
		t.Errorf("expected wrapped loader error, got %v", err)
	}
}

func TestAudioManagerPlayLooping(t *testing.T) {
	am, loader := newTestAudioManager()

	if err := am.PlayLooping("BG_Music"); err != nil {
		t.Fatal(err)
	}
	if err := am.PlayLooping("BG_Music"); err != nil {
		t.Fatal(err)
	}

	p := loader.players["BG_Music.wav#loop"]
	if p == nil || !p.playing {
		t.Fatal("background track not playing")
	}
	if p.plays != 1 {
		t.Errorf("looping track started %d times, want 1", p.plays)
	}
}

func TestAudioManagerPlayOnceAndStop(t *testing.T) {
	am, loader := newTestAudioManager()

	for i := 0; i < 2; i++ {
		if err := am.PlayOnce("Spin_Music"); err != nil {
			t.Fatal(err)
		}
	}
	p := loader.players["Spin.wav"]
	if p.plays != 2 || p.rewinds != 2 {
		t.Errorf("plays=%d rewinds=%d, want 2/2", p.plays, p.rewinds)
	}

	if err := am.Stop("Spin_Music"); err != nil {
		t.Fatal(err)
	}
	if p.playing {
		t.Error("spin track still playing after Stop")
	}
}

func TestAudioManagerUnknownTrack(t *testing.T) {
	am, _ := newTestAudioManager()

	for name, call := range map[string]func(string) error{
		"PlayLooping": am.PlayLooping,
		"PlayOnce":    am.PlayOnce,
		"Stop":        am.Stop,
	} {
		if err := call("Jackpot"); !errors.Is(err, ErrUnknownTrack) {
			t.Errorf("%s: expected ErrUnknownTrack, got %v", name, err)
		}
	}
}

func TestAudioManagerSetVolume(t *testing.T) {
	am, loader := newTestAudioManager()
	am.SetVolume(0.5)

	if err := am.PlayOnce("Spin_Music"); err != nil {
		t.Fatal(err)
	}
	if got := loader.players["Spin.wav"].volume; got != 0.5 {
		t.Errorf("new player volume = %v, want 0.5", got)
	}

	am.SetVolume(0.25)
	if got := loader.players["Spin.wav"].volume; got != 0.25 {
		t.Errorf("cached player volume = %v, want 0.25", got)
	}
}
