package ui

import (
	"math"
	"strconv"
	"strings"

	"sandfall/internal/core"
)

// nextInt returns the value one step from cur in direction, clamped to the
// control's bounds. ok is false when the value would not change.
func nextInt(ctrl core.ParameterControl, cur, direction int) (int, bool) {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	target := cur + direction*step
	if ctrl.HasMin {
		if min := int(math.Round(ctrl.Min)); target < min {
			target = min
		}
	}
	if ctrl.HasMax {
		if max := int(math.Round(ctrl.Max)); target > max {
			target = max
		}
	}
	return target, target != cur
}

// nextFloat is nextInt for float controls.
func nextFloat(ctrl core.ParameterControl, cur float64, direction int) (float64, bool) {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target := cur + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	return target, math.Abs(target-cur) >= 1e-9
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// controlState is the HUD's cached view of one adjustable parameter.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	boolValue  bool
	hasValue   bool
}

// refresh parses the snapshot value for the control.
func (s *controlState) refresh(snapshot core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snapshot.Lookup(s.control.Key)
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue = parsed
		s.value = strconv.Itoa(parsed)
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = parsed
		s.value = formatFloat(s.control, parsed)
	case core.ParamTypeBool:
		parsed, err := strconv.ParseBool(param.Value)
		if err != nil {
			return
		}
		s.boolValue = parsed
		s.value = "off"
		if parsed {
			s.value = "on"
		}
	default:
		return
	}
	s.hasValue = true
}

// adjust applies one step in direction through whichever setter the sim
// implements. It reports whether the sim accepted the change.
func (s *controlState) adjust(sim core.Sim, direction int) bool {
	if !s.hasValue || direction == 0 {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		setter, ok := sim.(core.IntParameterSetter)
		if !ok {
			return false
		}
		target, changed := nextInt(s.control, s.intValue, direction)
		if !changed || !setter.SetIntParameter(s.control.Key, target) {
			return false
		}
		s.intValue = target
		s.value = strconv.Itoa(target)
	case core.ParamTypeFloat:
		setter, ok := sim.(core.FloatParameterSetter)
		if !ok {
			return false
		}
		target, changed := nextFloat(s.control, s.floatValue, direction)
		if !changed || !setter.SetFloatParameter(s.control.Key, target) {
			return false
		}
		s.floatValue = target
		s.value = formatFloat(s.control, target)
	case core.ParamTypeBool:
		setter, ok := sim.(core.BoolParameterSetter)
		if !ok || !setter.SetBoolParameter(s.control.Key, !s.boolValue) {
			return false
		}
		s.boolValue = !s.boolValue
		s.value = "off"
		if s.boolValue {
			s.value = "on"
		}
	default:
		return false
	}
	return true
}

func newControlStates(sim core.Sim) []controlState {
	provider, ok := sim.(core.ParameterControlsProvider)
	if !ok {
		return nil
	}
	controls := provider.ParameterControls()
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

// statusLines flattens the sim's status into "Label: value" strings.
func statusLines(sim core.Sim) []string {
	provider, ok := sim.(core.StatusProvider)
	if !ok {
		return nil
	}
	status := provider.Status()
	lines := make([]string, 0, len(status))
	for _, s := range status {
		lines = append(lines, s.Label+": "+s.Value)
	}
	return lines
}
