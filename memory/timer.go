package memory

import "github.com/dmgcore/dmgcore/bit"

// timerBitForTAC maps the TAC clock-select bits to the system counter bit
// whose falling edge increments TIMA.
var timerBitForTAC = [4]uint8{9, 3, 5, 7}

// Timer implements DIV/TIMA/TMA/TAC. On overflow TIMA reads 0x00 until the
// first Tick call that starts 4 or more T-states later, which reloads it
// from TMA; the Timer interrupt follows at the start of the next Tick call.
type Timer struct {
	systemCounter uint16
	lastTimerBit  bool

	tima uint8
	tma  uint8
	tac  uint8

	timaOverflow int
	timaDelayInt bool

	// InterruptHandler is invoked at the start of the Tick call after the
	// one in which TIMA was reloaded from TMA.
	InterruptHandler func()
}

// SetSeed resets the system counter (used by tests that want a known DIV).
func (t *Timer) SetSeed(seed uint16) {
	t.systemCounter = seed
	t.lastTimerBit = false
}

// Tick advances the timer by the given number of cycles.
func (t *Timer) Tick(cycles int) {
	if t.timaDelayInt {
		t.timaDelayInt = false
		if t.InterruptHandler != nil {
			t.InterruptHandler()
		}
	}

	if t.timaOverflow > 0 {
		t.timaOverflow -= cycles
		if t.timaOverflow <= 0 {
			t.tima = t.tma
			t.timaDelayInt = true
		}
	}

	for i := 0; i < cycles; i++ {
		t.systemCounter++
		t.checkFallingEdge()
	}
}

func (t *Timer) checkFallingEdge() {
	enabled := t.tac&0x04 != 0
	bitIndex := timerBitForTAC[t.tac&0x03]
	currentBit := enabled && bit.IsSet16(bitIndex, t.systemCounter)

	if t.lastTimerBit && !currentBit {
		if t.tima == 0xFF {
			t.tima = 0
			t.timaOverflow = 4
		} else {
			t.tima++
		}
	}
	t.lastTimerBit = currentBit
}

// DIV returns the visible divider register (the upper byte of the system
// counter).
func (t *Timer) DIV() uint8 {
	return bit.High(t.systemCounter)
}

// ResetDIV implements the "any write resets DIV to 0" hardware behavior.
func (t *Timer) ResetDIV() {
	t.systemCounter = 0
	t.lastTimerBit = false
}

func (t *Timer) TIMA() uint8      { return t.tima }
func (t *Timer) SetTIMA(v uint8)  { t.tima = v }
func (t *Timer) TMA() uint8       { return t.tma }
func (t *Timer) SetTMA(v uint8)   { t.tma = v }
func (t *Timer) TAC() uint8       { return t.tac | 0xF8 }
func (t *Timer) SetTAC(v uint8)   { t.tac = v & 0x07 }
