package matrix

import (
	"fmt"
	"strconv"
)

//go:generate stringer -type=Register,DecodeMode,ShutdownMode -trimprefix=Reg -output=register_string.go

// Register is a MAX7219 register address. Every command on the wire is
// {Register, value}.
type Register byte

const (
	RegNoOp        Register = 0x0
	RegDigit0      Register = 0x1
	RegDigit1      Register = 0x2
	RegDigit2      Register = 0x3
	RegDigit3      Register = 0x4
	RegDigit4      Register = 0x5
	RegDigit5      Register = 0x6
	RegDigit6      Register = 0x7
	RegDigit7      Register = 0x8
	RegDecodeMode  Register = 0x9
	RegIntensity   Register = 0xA
	RegScanLimit   Register = 0xB
	RegShutdown    Register = 0xC
	RegDisplayTest Register = 0xF
)

var digitRegisters = [PanelSize]Register{
	RegDigit0, RegDigit1, RegDigit2, RegDigit3,
	RegDigit4, RegDigit5, RegDigit6, RegDigit7,
}

// ParseRegister maps a raw address byte onto a Register. Addresses 0xD and
// 0xE are not decoded by the chip and are rejected.
func ParseRegister(b byte) (Register, error) {
	r := Register(b)
	switch r {
	case RegNoOp, RegDigit0, RegDigit1, RegDigit2, RegDigit3, RegDigit4, RegDigit5,
		RegDigit6, RegDigit7, RegDecodeMode, RegIntensity, RegScanLimit, RegShutdown,
		RegDisplayTest:
		return r, nil
	}
	return 0, fmt.Errorf("%w: 0x%02X", ErrRegister, b)
}

// DigitRegister returns the register that holds display row 0-7.
func DigitRegister(row int) (Register, error) {
	if row < 0 || row >= PanelSize {
		return 0, fmt.Errorf("%w: row %d", ErrRegister, row)
	}
	return digitRegisters[row], nil
}

// Byte returns the address as it goes on the wire.
func (r Register) Byte() byte {
	return byte(r)
}

// Row returns the display row addressed by a digit register.
func (r Register) Row() (int, bool) {
	if r < RegDigit0 || r > RegDigit7 {
		return 0, false
	}
	return int(r - RegDigit0), true
}

// DecodeMode selects Code B font decoding per digit. Matrix panels use
// NoDecode.
type DecodeMode byte

const (
	NoDecode  DecodeMode = 0x00
	CodeB0    DecodeMode = 0x01
	CodeB3to0 DecodeMode = 0x0F
	CodeB7to0 DecodeMode = 0xFF
)

// ParseDecodeMode maps a raw register value onto a DecodeMode.
func ParseDecodeMode(b byte) (DecodeMode, error) {
	m := DecodeMode(b)
	switch m {
	case NoDecode, CodeB0, CodeB3to0, CodeB7to0:
		return m, nil
	}
	return 0, fmt.Errorf("%w: 0x%02X", ErrDecodeMode, b)
}

// Byte is the raw register value.
func (m DecodeMode) Byte() byte {
	return byte(m)
}

// ShutdownMode is the value of the shutdown register.
type ShutdownMode byte

const (
	PowerDown       ShutdownMode = 0x0
	NormalOperation ShutdownMode = 0x1
)

// ParseShutdownMode accepts 0 and 1 only.
func ParseShutdownMode(b byte) (ShutdownMode, error) {
	m := ShutdownMode(b)
	switch m {
	case PowerDown, NormalOperation:
		return m, nil
	}
	return 0, fmt.Errorf("%w: 0x%02X", ErrShutdownMode, b)
}

// Byte is the raw register value.
func (m ShutdownMode) Byte() byte {
	return byte(m)
}

// Intensity is the 4-bit PWM duty cycle register, (2*i+1)/32.
type Intensity byte

const (
	MinIntensity     Intensity = 0x0
	DefaultIntensity Intensity = 0x8
	MaxIntensity     Intensity = 0xF
)

// ParseIntensity accepts 0x0 through 0xF.
func ParseIntensity(b byte) (Intensity, error) {
	if Intensity(b) > MaxIntensity {
		return 0, fmt.Errorf("%w: 0x%02X", ErrIntensity, b)
	}
	return Intensity(b), nil
}

// Byte is the raw register value.
func (i Intensity) Byte() byte {
	return byte(i)
}

// String shows the duty cycle, e.g. "17/32".
func (i Intensity) String() string {
	return strconv.Itoa(2*int(i)+1) + "/32"
}

// ScanLimit is the index of the last scanned digit.
type ScanLimit byte

// ScanAll scans all eight digits.
const ScanAll ScanLimit = 0x7

// ParseScanLimit accepts 0 through 7.
func ParseScanLimit(b byte) (ScanLimit, error) {
	if ScanLimit(b) > ScanAll {
		return 0, fmt.Errorf("%w: 0x%02X", ErrScanLimit, b)
	}
	return ScanLimit(b), nil
}

// Byte is the raw register value.
func (s ScanLimit) Byte() byte {
	return byte(s)
}

// Command is one two-byte register write addressed to a single panel.
type Command struct {
	Register Register
	Value    byte
}

// String formats the command as "Register=0xVV".
func (c Command) String() string {
	return fmt.Sprintf("%s=0x%02X", c.Register, c.Value)
}
