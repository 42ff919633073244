// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package attr binds each named I2C IP field to its getter and setter so
// that commands and daemons may show and store them generically.
package attr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platinasystems/de1soc/i2cip"
)

// Group prefixes the attribute keys.
const Group = "i2c0"

type Attr struct {
	Name  string
	Help  string
	Show  func() uint32
	Store func(uint32) error
}

type Attrs []Attr

func Key(name string) string { return Group + "." + name }

// New returns the attribute table of the given device.
func New(d *i2cip.Device) Attrs {
	field := func(f i2cip.Field, help string) Attr {
		return Attr{
			Name:  f.Name,
			Help:  help,
			Show:  func() uint32 { return d.Field(f) },
			Store: func(v uint32) error { return d.SetField(f, v) },
		}
	}
	reg := func(name, help string, get func() uint32,
		set func(uint32)) Attr {
		return Attr{
			Name: name,
			Help: help,
			Show: get,
			Store: func(v uint32) error {
				set(v)
				return nil
			},
		}
	}
	return Attrs{
		field(i2cip.ModeField, "0 write, 1 read"),
		field(i2cip.BytecountField, "bytes to transfer, 0-63"),
		field(i2cip.RegisterValueField, "slave register, 0-255"),
		field(i2cip.UseRepeatedStartField, "repeated start, 0 or 1"),
		field(i2cip.StartField, "start strobe, 0 or 1"),
		reg("address", "slave address", d.Address, d.SetAddress),
		reg("data", "data byte", d.Data, d.SetData),
		reg("status", "transaction status", d.Status, d.SetStatus),
		reg("control", "whole control register", d.Control,
			d.SetControl),
		field(i2cip.RegisterUsedField, "register addressing, 0 or 1"),
	}
}

// Format is the decimal value followed by newline.
func (a Attr) Format() string {
	return fmt.Sprintf("%d\n", a.Show())
}

// Parse an unsigned value, with optional 0x or 0 base prefix, then store it.
func (a Attr) Parse(s string) error {
	u, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return fmt.Errorf("%s: %v", a.Name, err)
	}
	return a.Store(uint32(u))
}

func (attrs Attrs) ByName(name string) (Attr, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

func (attrs Attrs) Names() []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return names
}
