package machine

// MemSize is the full addressable memory: 64K 16-bit words.
const MemSize = 1 << 16

// RegisterCount is the number of general purpose registers.
const RegisterCount = 8

const (
	// DeviceSpace is the first address of the memory-mapped device region.
	// Ordinary program execution never enters it.
	DeviceSpace uint16 = 0xFE00
	// HaltSentinel is the program counter value the HALT trap parks the
	// machine at.
	HaltSentinel uint16 = 0xFFFF
	// DefaultOrigin is where programs load when no .ORIG is given.
	DefaultOrigin uint16 = 0x3000
)

const (
	OpBR uint16 = iota
	OpADD
	OpLD
	OpST
	OpJSR
	OpAND
	OpLDR
	OpSTR
	OpRTI
	OpNOT
	OpLDI
	OpSTI
	OpJMP
	OpReserved
	OpLEA
	OpTRAP
)

const (
	TrapGETC  uint16 = 0x20
	TrapOUT   uint16 = 0x21
	TrapPUTS  uint16 = 0x22
	TrapIN    uint16 = 0x23
	TrapPUTSP uint16 = 0x24
	TrapHALT  uint16 = 0x25
	TrapPUTN  uint16 = 0x26
	TrapREG   uint16 = 0x27
)

const (
	FlagPositive uint16 = 1 << 0
	FlagZero     uint16 = 1 << 1
	FlagNegative uint16 = 1 << 2
)
