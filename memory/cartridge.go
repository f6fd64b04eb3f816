package memory

// header field offsets, named rather than left as magic numbers.
const (
	entryPointAddress     = 0x100
	titleAddress          = 0x134
	titleLength           = 16
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	headerChecksumAddress = 0x14D
	globalChecksumAddress = 0x14E
	versionNumberAddress  = 0x14C

	minCartridgeSize = 0x150
)

// MBCType classifies the bank-switching hardware a cartridge declares.
type MBCType int

const (
	// MBCNone is a cartridge with no bank switching (32KiB ROM, no MBC).
	MBCNone MBCType = iota
	// MBCTypeMBC1 banks ROM in 16KiB windows and optionally RAM in 8KiB windows.
	MBCTypeMBC1
	// MBCTypeMBC3 adds a real-time clock alongside ROM/RAM banking.
	MBCTypeMBC3
)

// Cartridge holds a ROM image and the header fields this core cares about.
// All fields are read once at load time and never mutated afterward.
type Cartridge struct {
	data []byte

	Title          string
	HeaderChecksum uint8
	GlobalChecksum uint16
	Version        uint8
	CartType       uint8
	ROMSize        uint8
	RAMSize        uint8

	MBC          MBCType
	HasBattery   bool
	HasRTC       bool
	RAMBankCount int
}

// LoadCartridge parses a raw ROM image and classifies its MBC family.
// MBC2 and MBC5 cartridge-type bytes are recognized but rejected with
// UnimplementedMBCError, per this core's scope.
func LoadCartridge(data []byte) (*Cartridge, error) {
	if len(data) < minCartridgeSize {
		return nil, &UnimplementedMBCError{CartridgeType: 0xFF}
	}

	cart := &Cartridge{
		data:           data,
		Title:          cleanGameboyTitle(data[titleAddress : titleAddress+titleLength]),
		HeaderChecksum: data[headerChecksumAddress],
		GlobalChecksum: uint16(data[globalChecksumAddress])<<8 | uint16(data[globalChecksumAddress+1]),
		Version:        data[versionNumberAddress],
		CartType:       data[cartridgeTypeAddress],
		ROMSize:        data[romSizeAddress],
		RAMSize:        data[ramSizeAddress],
	}

	cart.RAMBankCount = ramBankCount(cart.RAMSize)

	switch cart.CartType {
	case 0x00, 0x08, 0x09:
		cart.MBC = MBCNone
	case 0x01, 0x02, 0x03:
		cart.MBC = MBCTypeMBC1
		cart.HasBattery = cart.CartType == 0x03
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		cart.MBC = MBCTypeMBC3
		cart.HasRTC = cart.CartType == 0x0F || cart.CartType == 0x10
		cart.HasBattery = cart.CartType == 0x0F || cart.CartType == 0x10 || cart.CartType == 0x13
	default:
		return nil, &UnimplementedMBCError{CartridgeType: cart.CartType}
	}

	return cart, nil
}

// ramBankCount maps the 0x0149 RAM size code to a bank count. A code of 1
// (2KiB) is treated as a single partial bank for simplicity.
func ramBankCount(code uint8) int {
	switch code {
	case 0x00:
		return 0
	case 0x01, 0x02:
		return 1
	case 0x03:
		return 4
	case 0x04:
		return 16
	case 0x05:
		return 8
	default:
		return 0
	}
}

// ROM returns the underlying ROM image.
func (c *Cartridge) ROM() []byte {
	return c.data
}
