// Package dmgcore wires together the cpu, memory, and video packages into
// a runnable DMG: a cartridge is loaded, then the caller drives execution
// one instruction or one frame at a time.
package dmgcore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dmgcore/dmgcore/cpu"
	"github.com/dmgcore/dmgcore/memory"
	"github.com/dmgcore/dmgcore/video"
)

// CyclesPerFrame is the number of T-states in one 59.7Hz DMG frame
// (154 scanlines * 456 T-states).
const CyclesPerFrame = 70224

// Machine owns the CPU, Bus, and PPU and keeps them in lockstep: every CPU
// instruction's cycle cost also advances the bus's timer/serial/RTC and
// the PPU's mode state machine by the same amount.
type Machine struct {
	CPU *cpu.CPU
	Bus *memory.Bus
	PPU *video.PPU

	logger *slog.Logger
}

// NewFromROM loads data as a cartridge and returns a ready-to-run Machine.
func NewFromROM(data []byte) (*Machine, error) {
	cart, err := memory.LoadCartridge(data)
	if err != nil {
		return nil, fmt.Errorf("dmgcore: load cartridge: %w", err)
	}

	bus := memory.NewWithCartridge(cart)
	m := &Machine{
		CPU:    cpu.New(bus),
		Bus:    bus,
		PPU:    video.New(bus),
		logger: slog.Default(),
	}
	return m, nil
}

// Step executes exactly one CPU instruction (or interrupt dispatch, or one
// halted idle slot) and advances the bus and PPU by the same number of
// T-states.
func (m *Machine) Step() (int, error) {
	dt, err := m.CPU.Step()
	if err != nil {
		m.logger.Error("cpu fault", "error", err, "state", m.CPU.DebugState())
		return dt, err
	}
	m.Bus.Tick(dt)
	m.PPU.Tick(dt)

	if err := m.Bus.Err(); err != nil {
		m.logger.Error("bus fault", "error", err, "state", m.CPU.DebugState())
		return dt, err
	}
	return dt, nil
}

// StepFrame runs Step repeatedly until at least CyclesPerFrame T-states
// have elapsed, then returns the actual total (>= CyclesPerFrame, since
// the last instruction of the frame may overshoot the budget).
func (m *Machine) StepFrame() (int, error) {
	budget := 0
	for budget < CyclesPerFrame {
		dt, err := m.Step()
		if err != nil {
			return budget, err
		}
		budget += dt
	}
	return budget, nil
}

// LoadROMFile reads path and builds a Machine from it.
func LoadROMFile(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dmgcore: read rom: %w", err)
	}
	return NewFromROM(data)
}
