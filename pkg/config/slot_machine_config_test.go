package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/decker502/slotreel/pkg/embedded"
	"github.com/decker502/slotreel/pkg/slot"
	"github.com/google/go-cmp/cmp"
)

// 仓库中的默认配置文件必须与 Default() 一致
func TestDefaultConfigFileMatchesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("data/slot_machine.yaml differs from Default() (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SlotMachineConfig)
	}{
		{
			name:        "empty keeps defaults",
			yamlContent: "",
			validate: func(t *testing.T, cfg *SlotMachineConfig) {
				if diff := cmp.Diff(Default(), cfg); diff != "" {
					t.Errorf("unexpected config (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "duration strings",
			yamlContent: `
timing:
  buttonEnableDelay: 250ms
  autoStopDelay: 1.5s
  stopStagger: 0s
`,
			validate: func(t *testing.T, cfg *SlotMachineConfig) {
				want := TimingConfig{
					ButtonEnableDelay: 250 * time.Millisecond,
					AutoStopDelay:     1500 * time.Millisecond,
					StopStagger:       0,
				}
				if cfg.Timing != want {
					t.Errorf("timing = %+v, want %+v", cfg.Timing, want)
				}
			},
		},
		{
			name: "partial reels override",
			yamlContent: `
reels:
  count: 3
`,
			validate: func(t *testing.T, cfg *SlotMachineConfig) {
				if cfg.Reels.Count != 3 {
					t.Errorf("count = %d, want 3", cfg.Reels.Count)
				}
				if cfg.Reels.FrameCount != 4 {
					t.Errorf("frameCount = %d, want default 4", cfg.Reels.FrameCount)
				}
			},
		},
		{
			name:        "zero reels",
			yamlContent: "reels:\n  count: 0\n",
			wantErr:     true,
			errContains: "reels.count",
		},
		{
			name:        "settled frame out of range",
			yamlContent: "reels:\n  settledFrame: 4\n",
			wantErr:     true,
			errContains: "settledFrame",
		},
		{
			name:        "negative stagger",
			yamlContent: "timing:\n  stopStagger: -1s\n",
			wantErr:     true,
			errContains: "stopStagger",
		},
		{
			name:        "zero button delay",
			yamlContent: "timing:\n  buttonEnableDelay: 0s\n",
			wantErr:     true,
			errContains: "buttonEnableDelay",
		},
		{
			name:        "same audio tracks",
			yamlContent: "audio:\n  backgroundTrack: Spin_Music\n",
			wantErr:     true,
			errContains: "audio tracks must differ",
		},
		{
			name:        "bad log level",
			yamlContent: "logging:\n  level: verbose\n",
			wantErr:     true,
			errContains: "logging.level",
		},
		{
			name:        "malformed yaml",
			yamlContent: "timing: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name:        "malformed duration",
			yamlContent: "timing:\n  autoStopDelay: soon\n",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.yaml")
	if err := os.WriteFile(path, []byte("reels:\n  count: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reels.Count != 7 {
		t.Errorf("count = %d, want 7", cfg.Reels.Count)
	}
}

func TestLoadEmbedded(t *testing.T) {
	t.Cleanup(func() { embedded.Init(nil) })

	embedded.Init(nil)
	if _, err := LoadEmbedded(); err == nil {
		t.Error("expected error before embedded.Init")
	}

	embedded.Init(fstest.MapFS{
		DefaultConfigPath: {Data: []byte("timing:\n  stopStagger: 300ms\n")},
	})
	cfg, err := LoadEmbedded()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timing.StopStagger != 300*time.Millisecond {
		t.Errorf("stopStagger = %v, want 300ms", cfg.Timing.StopStagger)
	}
}

func TestLayout(t *testing.T) {
	l := Default().Layout

	x, y := l.ContainerOrigin()
	if x != 240 || y != 76 {
		t.Errorf("container origin = (%v, %v), want (240, 76)", x, y)
	}

	tests := []struct {
		index int
		wantX float64
	}{
		{0, 312.5},
		{1, 451.5},
		{4, 868.5},
	}
	for _, tt := range tests {
		x, y := l.ReelCenter(tt.index)
		if x != tt.wantX || y != 180.5 {
			t.Errorf("ReelCenter(%d) = (%v, %v), want (%v, 180.5)", tt.index, x, y, tt.wantX)
		}
	}

	bx, by, bw, bh := l.ButtonRect()
	if bx != 565 || by != 619 || bw != 150 || bh != 50 {
		t.Errorf("ButtonRect = (%v, %v, %v, %v), want (565, 619, 150, 50)", bx, by, bw, bh)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()

	if diff := cmp.Diff(slot.DefaultConfig(), cfg.SlotConfig()); diff != "" {
		t.Errorf("SlotConfig mismatch (-want +got):\n%s", diff)
	}

	rl := cfg.ReelLayout()
	if rl.FrameCount != 4 || rl.FrameDuration != 100*time.Millisecond {
		t.Errorf("reel layout frames = %d x %v, want 4 x 100ms", rl.FrameCount, rl.FrameDuration)
	}
	if rl.OriginX != 312.5 || rl.OriginY != 180.5 || rl.Spacing != 139 {
		t.Errorf("reel layout origin = (%v, %v) spacing %v", rl.OriginX, rl.OriginY, rl.Spacing)
	}
}
