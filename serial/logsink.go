// Package serial implements the SB/SC serial port collaborator. Since this
// core has no link-cable peer (spec.md Non-goals), the default sink treats
// every transfer as talking to an unplugged cable: it completes instantly,
// returns 0xFF as the received byte, and logs printable output a ROM writes
// a byte at a time (the common way test ROMs and homebrew report progress).
package serial

import (
	"log/slog"

	"github.com/dmgcore/dmgcore/addr"
	"github.com/dmgcore/dmgcore/bit"
)

// Port is the interface the Bus routes SB (0xFF01) and SC (0xFF02) reads
// and writes through.
type Port interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Tick(cycles int)
	Reset()
}

// Option configures a LogSink.
type Option func(*LogSink)

// WithFixedTiming makes the sink simulate the ~8192Hz internal-clock
// transfer delay instead of completing on the SC write itself.
func WithFixedTiming() Option {
	return func(s *LogSink) {
		s.immediate = false
	}
}

const transferCycles = 4096 // approximate 8 bits at the internal clock rate

// LogSink is the default serial collaborator: it logs any line a ROM
// writes out one byte at a time via SB/SC and always returns 0xFF as the
// "received" byte, as if no peer were connected.
type LogSink struct {
	irqHandler func()

	sb, sc byte

	transferActive bool
	countdown      int
	immediate      bool
	defaultRX      byte

	line   []byte
	logger *slog.Logger
}

// NewLogSink builds a LogSink that calls irq when a transfer completes.
func NewLogSink(irq func(), opts ...Option) *LogSink {
	s := &LogSink{
		irqHandler: irq,
		immediate:  true,
		defaultRX:  0xFF,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LogSink) Read(address uint16) uint8 {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E
	default:
		panic("serial: invalid address")
	}
}

func (s *LogSink) Write(address uint16, value uint8) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStartTransfer()
	default:
		panic("serial: invalid address")
	}
}

func (s *LogSink) maybeStartTransfer() {
	if s.sc&0x81 != 0x81 {
		return
	}

	if s.isPrintable(s.sb) {
		if s.sb == '\n' {
			s.logger.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		} else {
			s.line = append(s.line, s.sb)
		}
	}

	if s.immediate {
		s.completeTransfer()
		return
	}
	s.transferActive = true
	s.countdown = transferCycles
}

func (s *LogSink) isPrintable(b byte) bool {
	return b == '\n' || (b >= 0x20 && b < 0x7F)
}

func (s *LogSink) Tick(cycles int) {
	if !s.transferActive {
		return
	}
	s.countdown -= cycles
	if s.countdown <= 0 {
		s.completeTransfer()
	}
}

func (s *LogSink) completeTransfer() {
	s.sb = s.defaultRX
	s.sc = bit.Clear(7, s.sc)
	s.transferActive = false
	if s.irqHandler != nil {
		s.irqHandler()
	}
}

func (s *LogSink) Reset() {
	s.sb = 0
	s.sc = 0
	s.transferActive = false
	s.countdown = 0
	s.line = s.line[:0]
}
