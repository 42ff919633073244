// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package attr

import (
	"reflect"
	"testing"

	"github.com/platinasystems/de1soc/i2cip"
	"github.com/platinasystems/de1soc/internal/test"
)

func TestNames(t *testing.T) {
	attrs := New(i2cip.New(new(i2cip.Sim)))
	if !reflect.DeepEqual(attrs.Names(), []string{
		"mode",
		"bytecount",
		"registervalue",
		"use_repeated_start",
		"start",
		"address",
		"data",
		"status",
		"control",
		"register_used",
	}) {
		t.Error("wrong:", attrs.Names())
	}
	if s := Key("mode"); s != "i2c0.mode" {
		t.Error("wrong:", s)
	}
}

func TestStoreShow(t *testing.T) {
	assert := test.Assert{TB: t}
	sim := new(i2cip.Sim)
	attrs := New(i2cip.New(sim))
	for _, x := range []struct {
		name, in, out string
	}{
		{"data", "170\n", "170\n"},
		{"address", "0x20", "32\n"},
		{"registervalue", "9", "9\n"},
		{"bytecount", "010", "8\n"},
		{"start", "1", "1\n"},
		{"use_repeated_start", "1", "1\n"},
		{"register_used", "1", "1\n"},
		{"mode", " 1 ", "1\n"},
		{"status", "4294967295", "4294967295\n"},
	} {
		a, found := attrs.ByName(x.name)
		assert.True(found)
		assert.Nil(a.Parse(x.in))
		assert.Equal(a.Format(), x.out)
	}
	a, _ := attrs.ByName("control")
	assert.Equal(a.Format(), "199057\n")
	assert.Uint32(sim.Regs[i2cip.Control], 1|8<<1|1<<7|9<<8|1<<16|1<<17)
}

func TestParseErrors(t *testing.T) {
	assert := test.Assert{TB: t}
	sim := new(i2cip.Sim)
	attrs := New(i2cip.New(sim))
	mode, _ := attrs.ByName("mode")
	assert.Error(mode.Parse("2"), i2cip.ErrInvalidArgument)
	assert.NonNil(mode.Parse("-1"))
	assert.NonNil(mode.Parse("one"))
	data, _ := attrs.ByName("data")
	assert.NonNil(data.Parse("4294967296"))
	assert.True(sim.Writes(i2cip.Control) == 0 &&
		sim.Writes(i2cip.Data) == 0)
	if _, found := attrs.ByName("bogus"); found {
		t.Error("found bogus")
	}
}
