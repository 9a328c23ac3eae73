package sandfall

import (
	"testing"

	"sandfall/internal/core"
)

func TestAutopilot(t *testing.T) {
	cases := []struct {
		name string
		lava [][2]int
		want core.Action
	}{
		{"calm", nil, core.ActionNone},
		{"lava overhead", [][2]int{{5, 3}}, core.ActionJump},
		{"lava too high", [][2]int{{5, 1}}, core.ActionMoveRight},
		{"lava to the left", [][2]int{{2, 8}}, core.ActionMoveRight},
		{"lava to the right", [][2]int{{8, 8}}, core.ActionMoveLeft},
		{"nearest wins", [][2]int{{0, 9}, {7, 0}}, core.ActionMoveLeft},
	}
	for _, tc := range cases {
		world := bareWorld(t, quietConfig(12, 10), 5, 5)
		for _, c := range tc.lava {
			world.grid.Set(c[0], c[1], Lava)
		}
		if got := Autopilot(world); got != tc.want {
			t.Fatalf("%s: autopilot = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAutopilotIdleWhenDead(t *testing.T) {
	world := bareWorld(t, quietConfig(10, 10), 5, 9)
	world.grid.Set(6, 9, Lava)
	world.Step()
	if got := Autopilot(world); got != core.ActionNone {
		t.Fatalf("dead autopilot = %v", got)
	}
}
