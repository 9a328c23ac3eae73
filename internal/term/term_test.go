package term

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/sims/sandfall"
	"sandfall/internal/tuning"
)

func TestMapKey(t *testing.T) {
	cases := []struct {
		key    tcell.Key
		r      rune
		action core.Action
		cmd    Command
	}{
		{tcell.KeyLeft, 0, core.ActionMoveLeft, CommandNone},
		{tcell.KeyRight, 0, core.ActionMoveRight, CommandNone},
		{tcell.KeyUp, 0, core.ActionJump, CommandNone},
		{tcell.KeyRune, 'a', core.ActionMoveLeft, CommandNone},
		{tcell.KeyRune, 'd', core.ActionMoveRight, CommandNone},
		{tcell.KeyRune, ' ', core.ActionJump, CommandNone},
		{tcell.KeyRune, 'r', core.ActionReset, CommandNone},
		{tcell.KeyRune, 'p', core.ActionNone, CommandPause},
		{tcell.KeyRune, 'n', core.ActionNone, CommandStep},
		{tcell.KeyRune, 'q', core.ActionNone, CommandQuit},
		{tcell.KeyEscape, 0, core.ActionNone, CommandQuit},
		{tcell.KeyRune, 'z', core.ActionNone, CommandNone},
		{tcell.KeyTab, 0, core.ActionNone, CommandNone},
	}
	for _, tc := range cases {
		action, cmd := MapKey(tcell.NewEventKey(tc.key, tc.r, tcell.ModNone))
		if action != tc.action || cmd != tc.cmd {
			t.Fatalf("key %v rune %q: got %v/%d, want %v/%d", tc.key, tc.r, action, cmd, tc.action, tc.cmd)
		}
	}
}

type recordedCell struct {
	r     rune
	style tcell.Style
}

type fakeScreen struct {
	cells map[[2]int]recordedCell
}

func (f *fakeScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	if f.cells == nil {
		f.cells = map[[2]int]recordedCell{}
	}
	f.cells[[2]int{x, y}] = recordedCell{r: primary, style: style}
}

func TestDrawWorldDoublesColumns(t *testing.T) {
	world := sandfall.New(10, 10)
	var screen fakeScreen
	drawWorld(&screen, world.Cells(), world.Size(), render.PaletteFor(world), 1, 0, 1)

	if len(screen.cells) != 10*10*cellWidth {
		t.Fatalf("drew %d cells, want %d", len(screen.cells), 10*10*cellWidth)
	}
	x, y := world.ActorCell()
	for dx := 0; dx < cellWidth; dx++ {
		got := screen.cells[[2]int{x*cellWidth + dx, y + 1}]
		if got.r != '@' {
			t.Fatalf("actor column %d drawn as %q", dx, got.r)
		}
		_, bg, _ := got.style.Decompose()
		want := tcellColor(world.Palette()[sandfall.Actor])
		if bg != want {
			t.Fatalf("actor background = %v, want %v", bg, want)
		}
	}
}

func TestDrawWorldRejectsMismatchedBuffer(t *testing.T) {
	var screen fakeScreen
	drawWorld(&screen, make([]uint8, 3), core.Size{W: 2, H: 2}, nil, 1, 0, 0)
	if len(screen.cells) != 0 {
		t.Fatal("mismatched buffer should draw nothing")
	}
}

func TestDrawTextPadsAndClips(t *testing.T) {
	var screen fakeScreen
	drawText(&screen, 0, 0, 4, "abcdef", tcell.StyleDefault)
	if screen.cells[[2]int{3, 0}].r != 'd' || len(screen.cells) != 4 {
		t.Fatalf("clipped text = %v", screen.cells)
	}
	screen = fakeScreen{}
	drawText(&screen, 0, 0, 4, "ab", tcell.StyleDefault)
	if screen.cells[[2]int{3, 0}].r != ' ' {
		t.Fatal("short text should be padded with spaces")
	}
}

func TestStatusAndStormBar(t *testing.T) {
	cfg := sandfall.DefaultConfig()
	cfg.Width, cfg.Height = 12, 12
	cfg.Params.HazardInterval = 4
	world := sandfall.NewWithConfig(cfg)
	if got := statusText(world); got[:9] != "Time 0.0s" {
		t.Fatalf("status = %q", got)
	}
	world.Step()
	world.Step()
	if got := stormBar(world, 8); got != "▀▀▀▀" {
		t.Fatalf("storm bar = %q", got)
	}
}

type recordingSim struct {
	actions []core.Action
	steps   int
	resets  int
}

func (s *recordingSim) Name() string        { return "recording" }
func (s *recordingSim) Size() core.Size     { return core.Size{W: 2, H: 2} }
func (s *recordingSim) Reset(int64)         { s.resets++ }
func (s *recordingSim) Step()               { s.steps++ }
func (s *recordingSim) Cells() []uint8      { return make([]uint8, 4) }
func (s *recordingSim) Apply(a core.Action) { s.actions = append(s.actions, a) }

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 10)
	return screen
}

func TestRunnerHandle(t *testing.T) {
	sim := &recordingSim{}
	r := NewRunner(newSimScreen(t), sim, Options{TPS: 60})

	key := func(k tcell.Key, ch rune) bool {
		return r.Handle(tcell.NewEventKey(k, ch, tcell.ModNone))
	}
	if !key(tcell.KeyLeft, 0) || !key(tcell.KeyRune, ' ') || !key(tcell.KeyRune, 'r') {
		t.Fatal("movement keys should keep the loop running")
	}
	want := []core.Action{core.ActionMoveLeft, core.ActionJump, core.ActionReset}
	if len(sim.actions) != len(want) {
		t.Fatalf("actions = %v, want %v", sim.actions, want)
	}
	for i := range want {
		if sim.actions[i] != want[i] {
			t.Fatalf("actions = %v, want %v", sim.actions, want)
		}
	}

	key(tcell.KeyRune, 'p')
	if !r.Paused() {
		t.Fatal("p should pause")
	}
	key(tcell.KeyRune, 'n')
	r.Advance()
	if sim.steps != 1 {
		t.Fatalf("single step while paused ran %d steps", sim.steps)
	}
	r.Advance()
	if sim.steps != 1 {
		t.Fatal("paused runner kept stepping")
	}

	if key(tcell.KeyRune, 'q') {
		t.Fatal("q should stop the loop")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newSimScreen(t)
	world := sandfall.New(12, 6)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Run(ctx, screen, world, Options{TPS: 60}) }()

	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newSimScreen(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, screen, sandfall.New(12, 6), Options{Frame: time.Millisecond}) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestRunnerShowsTuningReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandfall.yaml")
	if err := os.WriteFile(path, []byte("params:\n  hazard_chance: 0.2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := tuning.Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	world := sandfall.New(12, 6)
	r := NewRunner(newSimScreen(t), world, Options{TPS: 60, Tuning: w})
	r.paused = true

	if err := os.WriteFile(path, []byte("params:\n  hazard_chance: 4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for r.Notice() == "" && time.Now().Before(deadline) {
		r.Advance()
		time.Sleep(10 * time.Millisecond)
	}
	if got := r.Notice(); !strings.Contains(got, "invalid config") {
		t.Fatalf("notice = %q, want the reload error", got)
	}
	if world.Config().Params.HazardChance == 4 {
		t.Fatal("invalid reload was applied")
	}

	for i := 0; i < noticeFrames; i++ {
		r.Draw()
	}
	if got := r.Notice(); got != "" {
		t.Fatalf("notice still shown after %d frames: %q", noticeFrames, got)
	}
}
