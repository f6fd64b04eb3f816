package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func romOfSize(banks int, fill func(rom []byte)) []byte {
	rom := make([]byte, banks*0x4000)
	if fill != nil {
		fill(rom)
	}
	return rom
}

func TestMBC1_romBankSwitching(t *testing.T) {
	rom := romOfSize(4, func(rom []byte) {
		rom[0x4000] = 0xAA // bank 1
		rom[2*0x4000] = 0xBB
		rom[3*0x4000] = 0xCC
	})
	mbc := newMBC1(&Cartridge{data: rom, RAMBankCount: 0})

	assert.Equal(t, uint8(0xAA), mbc.Read(0x4000))

	mbc.Write(0x2000, 0x02)
	assert.Equal(t, uint8(0xBB), mbc.Read(0x4000))

	mbc.Write(0x2000, 0x00) // bank 0 maps to bank 1
	assert.Equal(t, uint8(0xAA), mbc.Read(0x4000))
}

func TestMBC1_ramGatedByEnable(t *testing.T) {
	rom := romOfSize(2, nil)
	mbc := newMBC1(&Cartridge{data: rom, RAMBankCount: 1})

	mbc.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0xFF), mbc.Read(0xA000), "disabled RAM reads open bus")

	mbc.Write(0x0000, 0x0A) // enable
	mbc.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), mbc.Read(0xA000))
}

func TestMBC3_latchesRTCRegisters(t *testing.T) {
	rom := romOfSize(2, nil)
	mbc := newMBC3(&Cartridge{data: rom, RAMBankCount: 0, HasRTC: true})
	mbc.Write(0x0000, 0x0A) // enable ram/rtc

	mbc.Tick(cyclesPerRTCSecond * 90) // 90 seconds elapse
	assert.Equal(t, uint8(30), mbc.rtcSeconds)
	assert.Equal(t, uint8(1), mbc.rtcMinutes)

	mbc.Write(0x6000, 0x00)
	mbc.Write(0x6000, 0x01) // latch

	mbc.Write(0x4000, 0x08) // select seconds register
	assert.Equal(t, uint8(30), mbc.Read(0xA000))
}

func TestMBC3_outOfRangeRTCSelectLatchesError(t *testing.T) {
	rom := romOfSize(2, nil)
	mbc := newMBC3(&Cartridge{data: rom, RAMBankCount: 2, HasRTC: true})
	mbc.Write(0x0000, 0x0A) // enable ram/rtc

	mbc.Write(0x4000, 0x01) // select RAM bank 1
	mbc.Write(0xA000, 0x42)

	assert.NoError(t, mbc.Err())
	mbc.Write(0x4000, 0x05) // outside both 0x00-0x03 and 0x08-0x0C
	var invalid *InvalidRtcRegisterError
	require.ErrorAs(t, mbc.Err(), &invalid)
	assert.Equal(t, uint8(0x05), invalid.Value)

	// the rejected write leaves the previous, valid selection in place
	assert.Equal(t, uint8(0x42), mbc.Read(0xA000))
}

func TestMBC3_haltStopsClock(t *testing.T) {
	rom := romOfSize(2, nil)
	mbc := newMBC3(&Cartridge{data: rom, RAMBankCount: 0, HasRTC: true})
	mbc.rtcDayHigh = 0x40 // halt bit set

	mbc.Tick(cyclesPerRTCSecond * 10)
	assert.Equal(t, uint8(0), mbc.rtcSeconds)
}
