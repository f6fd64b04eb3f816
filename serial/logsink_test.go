package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmgcore/dmgcore/addr"
)

func TestLogSink_instantTransferFiresIRQ(t *testing.T) {
	fired := false
	sink := NewLogSink(func() { fired = true })

	sink.Write(addr.SB, 'A')
	sink.Write(addr.SC, 0x81) // internal clock, start transfer

	assert.True(t, fired, "default sink completes a transfer on the same write")
	assert.Equal(t, uint8(0xFF), sink.Read(addr.SB), "no peer, so RX is always 0xFF")
	assert.Equal(t, uint8(0), sink.Read(addr.SC)&0x80, "transfer-in-progress bit clears on completion")
}

func TestLogSink_externalClockDoesNotStartATransfer(t *testing.T) {
	fired := false
	sink := NewLogSink(func() { fired = true })

	sink.Write(addr.SB, 'A')
	sink.Write(addr.SC, 0x80) // start bit set, but external clock
	assert.False(t, fired)
}

func TestLogSink_fixedTimingDelaysCompletion(t *testing.T) {
	fired := false
	sink := NewLogSink(func() { fired = true }, WithFixedTiming())

	sink.Write(addr.SC, 0x81)
	assert.False(t, fired, "fixed timing waits for Tick")

	sink.Tick(transferCycles - 1)
	assert.False(t, fired)

	sink.Tick(1)
	assert.True(t, fired)
}

func TestLogSink_bufferedLineFlushesOnNewline(t *testing.T) {
	sink := NewLogSink(nil)

	for _, b := range []byte("hi\n") {
		sink.Write(addr.SB, b)
		sink.Write(addr.SC, 0x81)
	}

	require.Empty(t, sink.line, "line buffer resets after flushing on newline")
}

func TestLogSink_reset(t *testing.T) {
	sink := NewLogSink(nil)
	sink.Write(addr.SB, 'x')
	sink.Write(addr.SC, 0x81)

	sink.Reset()
	assert.Equal(t, uint8(0), sink.sb)
	assert.Equal(t, uint8(0), sink.sc)
	assert.False(t, sink.transferActive)
}
