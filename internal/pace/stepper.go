package pace

// Stepper is a saturating counter: Inc and Dec move the value by a fixed
// step and clamp it to [min, max]. It models discrete adjustments from user
// input as a pure value transition, independent of whatever callback fired.
type Stepper struct {
	value, min, max, step int
}

func NewStepper(value, min, max, step int) *Stepper {
	if max < min {
		max = min
	}
	if step < 1 {
		step = 1
	}
	s := &Stepper{min: min, max: max, step: step}
	s.value = s.clamp(value)
	return s
}

func (s *Stepper) clamp(v int) int {
	if v < s.min {
		return s.min
	}
	if v > s.max {
		return s.max
	}
	return v
}

func (s *Stepper) Value() int { return s.value }

func (s *Stepper) Inc() int {
	s.value = s.clamp(s.value + s.step)
	return s.value
}

func (s *Stepper) Dec() int {
	s.value = s.clamp(s.value - s.step)
	return s.value
}

func (s *Stepper) Set(v int) int {
	s.value = s.clamp(v)
	return s.value
}
