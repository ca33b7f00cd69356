// Package inst decodes the RV32I subset consumed by pkg/cpu: field
// extraction and the five RISC-V immediate encodings (I/S/B/U/J). This is
// the "thin... straightforward dispatch" collaborator spec.md excludes
// from the core's bit-level discipline — instruction words are fixed
// 32-bit machine words, not arbitrary-width core operands, so decoding
// them with native shifts and masks (as the original reference does) is
// in scope here even though the arithmetic core never does the same.
package inst

// Opcode is the low 7 bits of an RV32I instruction word.
type Opcode uint8

// Base RV32I opcodes used by this subset.
const (
	OpReg    Opcode = 0x33 // R-type: register-register ALU ops
	OpImm    Opcode = 0x13 // I-type: register-immediate ALU ops
	OpLoad   Opcode = 0x03 // I-type: loads
	OpStore  Opcode = 0x23 // S-type: stores
	OpBranch Opcode = 0x63 // B-type: conditional branches
	OpJAL    Opcode = 0x6F // J-type: jump and link
	OpJALR   Opcode = 0x67 // I-type: jump and link register
	OpLUI    Opcode = 0x37 // U-type: load upper immediate
	OpAUIPC  Opcode = 0x17 // U-type: add upper immediate to PC
)

// Fields holds the decoded fixed-position fields of a 32-bit instruction
// word, before format-specific immediate reconstruction.
type Fields struct {
	Opcode Opcode
	Rd     uint8
	Funct3 uint8
	Rs1    uint8
	Rs2    uint8
	Funct7 uint8
}

// DecodeFields extracts the opcode/rd/funct3/rs1/rs2/funct7 bit fields
// common to R/I/S/B instruction words.
func DecodeFields(word uint32) Fields {
	return Fields{
		Opcode: Opcode(word & 0x7F),
		Rd:     uint8((word >> 7) & 0x1F),
		Funct3: uint8((word >> 12) & 0x7),
		Rs1:    uint8((word >> 15) & 0x1F),
		Rs2:    uint8((word >> 20) & 0x1F),
		Funct7: uint8((word >> 25) & 0x7F),
	}
}

func signExtend(x uint32, width int) int32 {
	signBit := uint32(1) << (width - 1)
	if x&signBit != 0 {
		x |= ^uint32(0) << width
	}
	return int32(x)
}

// ImmI decodes the I-type (imm[11:0]) immediate.
func ImmI(word uint32) int32 {
	imm := (word >> 20) & 0xFFF
	return signExtend(imm, 12)
}

// ImmS decodes the S-type (store) immediate.
func ImmS(word uint32) int32 {
	lo := (word >> 7) & 0x1F
	hi := (word >> 25) & 0x7F
	imm := (hi << 5) | lo
	return signExtend(imm, 12)
}

// ImmB decodes the B-type (branch) immediate.
func ImmB(word uint32) int32 {
	bit11 := (word >> 7) & 0x1
	bit4_1 := (word >> 8) & 0xF
	bit10_5 := (word >> 25) & 0x3F
	bit12 := (word >> 31) & 0x1
	imm := (bit12 << 12) | (bit11 << 11) | (bit10_5 << 5) | (bit4_1 << 1)
	return signExtend(imm, 13)
}

// ImmU decodes the U-type (LUI/AUIPC) immediate.
func ImmU(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

// ImmJ decodes the J-type (JAL) immediate.
func ImmJ(word uint32) int32 {
	bit20 := (word >> 31) & 0x1
	bit10_1 := (word >> 21) & 0x3FF
	bit11 := (word >> 20) & 0x1
	bit19_12 := (word >> 12) & 0xFF
	imm := (bit20 << 20) | (bit19_12 << 12) | (bit11 << 11) | (bit10_1 << 1)
	return signExtend(imm, 21)
}
