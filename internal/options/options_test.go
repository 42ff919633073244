// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package options

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/platinasystems/de1soc/devmem"
	"github.com/platinasystems/de1soc/internal/test"
)

func TestDefaults(t *testing.T) {
	assert := test.Assert{TB: t}
	opt, args, err := New([]string{"mode", "1"})
	assert.Nil(err)
	if !reflect.DeepEqual(args, []string{"mode", "1"}) {
		t.Error("wrong:", args)
	}
	assert.False(opt.Sim)
	if opt.Config != devmem.DefaultConfig() {
		t.Error("wrong:", opt.Config)
	}
}

func TestParse(t *testing.T) {
	assert := test.Assert{TB: t}
	opt, args, err := New([]string{"-sim", "-base", "0xc0000000",
		"-offset=0x40", "-dev", "/tmp/mem", "control"})
	assert.Nil(err)
	if !reflect.DeepEqual(args, []string{"control"}) {
		t.Error("wrong:", args)
	}
	assert.True(opt.Sim)
	if opt.Base != 0xc0000000 || opt.Offset != 0x40 ||
		opt.Dev != "/tmp/mem" {
		t.Error("wrong:", opt)
	}
	_, _, err = New([]string{"-base", "bridge"})
	assert.NonNil(err)
}

func TestOpenSim(t *testing.T) {
	assert := test.Assert{TB: t}
	opt, _, err := New([]string{"-sim"})
	assert.Nil(err)
	d, c, err := opt.Open()
	assert.Nil(err)
	defer c.Close()
	d.SetData(170)
	assert.Uint32(d.Data(), 170)
}

func TestOpenRegion(t *testing.T) {
	assert := test.Assert{TB: t}
	dir, err := ioutil.TempDir("", "options")
	assert.Nil(err)
	defer os.RemoveAll(dir)

	pagesize := os.Getpagesize()
	mem := filepath.Join(dir, "mem")
	assert.Nil(ioutil.WriteFile(mem, make([]byte, 2*pagesize), 0600))
	iomem := filepath.Join(dir, "iomem")
	assert.Nil(ioutil.WriteFile(iomem, []byte(fmt.Sprintf(
		"%08x-%08x : ff200000.bridge\n", pagesize, 2*pagesize-1)),
		0600))
	defer func(s string) { Iomem = s }(Iomem)
	Iomem = iomem

	opt, _, err := New([]string{"-dev", mem, "-region", "bridge",
		"-offset", "0x10"})
	assert.Nil(err)
	d, c, err := opt.Open()
	assert.Nil(err)
	d.SetAddress(32)
	assert.Uint32(d.Address(), 32)
	assert.Nil(c.Close())

	opt.Region = "fpga"
	_, _, err = opt.Open()
	assert.NonNil(err)
}
