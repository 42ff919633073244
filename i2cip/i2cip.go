// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package i2cip provides named bitfield access to the register file of the
// DE1-SoC I2C IP core.
//
// The core has four 32-bit registers, ADDRESS, DATA, STATUS and CONTROL.
// CONTROL packs the transaction fields; each field setter is a single
// read-modify-write of CONTROL that leaves every other bit unchanged. The
// other registers are passed through without masking.
//
// A Device doesn't sequence transfers. Writing ADDRESS and DATA before
// setting the start strobe is the caller's job.
package i2cip

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidArgument is returned by field setters given a value wider than
// the field. The register isn't accessed in that case.
var ErrInvalidArgument = errors.New("invalid argument")

// RegIO is the raw register capability supplied by a mapping backend.
type RegIO interface {
	ReadRegister(Index) uint32
	WriteRegister(Index, uint32)
}

// Device is a handle on one mapped register file.
//
// The Device mutex serializes its own CONTROL read-modify-write cycles.
// Other processes or other Devices on the same window may still race.
type Device struct {
	mutex sync.Mutex
	io    RegIO
}

func New(io RegIO) *Device {
	return &Device{io: io}
}

func invalid(f Field, v uint32) error {
	return fmt.Errorf("%s: %d exceeds %d: %w", f.Name, v, f.Max(),
		ErrInvalidArgument)
}

// Field returns the right justified value of the CONTROL field.
func (d *Device) Field(f Field) uint32 {
	return f.Extract(d.io.ReadRegister(Control))
}

// SetField stores v in the CONTROL field.
func (d *Device) SetField(f Field, v uint32) error {
	if v > f.Max() {
		return invalid(f, v)
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.io.WriteRegister(Control, f.Insert(d.io.ReadRegister(Control), v))
	return nil
}

// FieldBits returns the CONTROL field bits at their storage position, e.g.
// 0 or 1<<16 for the repeated start flag.
func (d *Device) FieldBits(f Field) uint32 {
	return d.io.ReadRegister(Control) & f.Mask()
}

// SetFieldBits stores field bits that the caller has already shifted into
// position. Any bit outside the field is an ErrInvalidArgument.
func (d *Device) SetFieldBits(f Field, bits uint32) error {
	if bits&^f.Mask() != 0 {
		return fmt.Errorf("%s: %#x outside mask %#x: %w", f.Name, bits,
			f.Mask(), ErrInvalidArgument)
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.io.WriteRegister(Control, d.io.ReadRegister(Control)&^f.Mask()|bits)
	return nil
}

// Mode is 0 for a write transaction, 1 for a read.
func (d *Device) Mode() uint32           { return d.Field(ModeField) }
func (d *Device) SetMode(v uint32) error { return d.SetField(ModeField, v) }

func (d *Device) Bytecount() uint32 { return d.Field(BytecountField) }
func (d *Device) SetBytecount(v uint32) error {
	return d.SetField(BytecountField, v)
}

// RegisterUsed flags that RegisterValue addresses a register inside the
// slave.
func (d *Device) RegisterUsed() uint32 { return d.Field(RegisterUsedField) }
func (d *Device) SetRegisterUsed(v uint32) error {
	return d.SetField(RegisterUsedField, v)
}

func (d *Device) RegisterValue() uint32 { return d.Field(RegisterValueField) }
func (d *Device) SetRegisterValue(v uint32) error {
	return d.SetField(RegisterValueField, v)
}

// UseRepeatedStart and Start are normalized to 0 or 1. Use FieldBits and
// SetFieldBits for the bit positioned form.
func (d *Device) UseRepeatedStart() uint32 {
	return d.Field(UseRepeatedStartField)
}

func (d *Device) SetUseRepeatedStart(v uint32) error {
	return d.SetField(UseRepeatedStartField, v)
}

func (d *Device) Start() uint32           { return d.Field(StartField) }
func (d *Device) SetStart(v uint32) error { return d.SetField(StartField, v) }

func (d *Device) Address() uint32     { return d.io.ReadRegister(Address) }
func (d *Device) SetAddress(v uint32) { d.io.WriteRegister(Address, v) }
func (d *Device) Data() uint32        { return d.io.ReadRegister(Data) }
func (d *Device) SetData(v uint32)    { d.io.WriteRegister(Data, v) }

// Status is read-only to the hardware; SetStatus doesn't stop a write.
func (d *Device) Status() uint32     { return d.io.ReadRegister(Status) }
func (d *Device) SetStatus(v uint32) { d.io.WriteRegister(Status, v) }

// Control and SetControl bypass the field layout, e.g. to set mode,
// register and start in one write.
func (d *Device) Control() uint32 { return d.io.ReadRegister(Control) }
func (d *Device) SetControl(v uint32) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.io.WriteRegister(Control, v)
}
