package memory

import "fmt"

// UnimplementedMBCError is returned when a cartridge declares an MBC type
// this core does not implement (MBC2, MBC5, or an unrecognized byte).
type UnimplementedMBCError struct {
	CartridgeType uint8
}

func (e *UnimplementedMBCError) Error() string {
	return fmt.Sprintf("memory: unimplemented cartridge type 0x%02X", e.CartridgeType)
}

// InvalidRtcRegisterError is returned when an MBC3 RAM-bank-or-RTC select
// write targets a value outside both the RAM-bank range (0x00-0x03) and
// the RTC register range (0x08-0x0C).
type InvalidRtcRegisterError struct {
	Value uint8
}

func (e *InvalidRtcRegisterError) Error() string {
	return fmt.Sprintf("memory: invalid RAM bank / RTC register select 0x%02X", e.Value)
}
