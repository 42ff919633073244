// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package i2cip

import "fmt"

// Span is the size in bytes of the register window.
const Span = 16

// Index selects one of the four 32-bit registers of the I2C IP core.
type Index uint

const (
	Address Index = iota
	Data
	Status
	Control
	NRegs
)

var indexNames = [NRegs]string{
	Address: "address",
	Data:    "data",
	Status:  "status",
	Control: "control",
}

func (i Index) String() string {
	if i < NRegs {
		return indexNames[i]
	}
	return fmt.Sprintf("reg%d", uint(i))
}

// Offset returns the byte offset of the register within the window.
func (i Index) Offset() uintptr { return uintptr(i) * 4 }

// Field is a fixed position, fixed width subrange of the CONTROL register.
type Field struct {
	Name  string
	Shift uint
	Width uint
}

// CONTROL register layout
//
//	17	start strobe
//	16	use repeated start
//	15:8	target register
//	7	register used
//	6:1	byte count
//	0	mode, 0 write, 1 read
var (
	ModeField             = Field{"mode", 0, 1}
	BytecountField        = Field{"bytecount", 1, 6}
	RegisterUsedField     = Field{"register_used", 7, 1}
	RegisterValueField    = Field{"registervalue", 8, 8}
	UseRepeatedStartField = Field{"use_repeated_start", 16, 1}
	StartField            = Field{"start", 17, 1}
)

// Fields lists the CONTROL fields from least to most significant.
var Fields = []Field{
	ModeField,
	BytecountField,
	RegisterUsedField,
	RegisterValueField,
	UseRepeatedStartField,
	StartField,
}

// Max is the largest value the field holds.
func (f Field) Max() uint32 { return 1<<f.Width - 1 }

// Mask of the field bits at their storage position.
func (f Field) Mask() uint32 { return f.Max() << f.Shift }

// Extract the right justified field value from a register value.
func (f Field) Extract(reg uint32) uint32 { return (reg & f.Mask()) >> f.Shift }

// Insert replaces the field bits of reg with v; bits of v beyond the field
// width are dropped.
func (f Field) Insert(reg, v uint32) uint32 {
	return reg&^f.Mask() | (v<<f.Shift)&f.Mask()
}

func (f Field) String() string {
	if f.Width == 1 {
		return fmt.Sprintf("%s[%d]", f.Name, f.Shift)
	}
	return fmt.Sprintf("%s[%d:%d]", f.Name, f.Shift+f.Width-1, f.Shift)
}
