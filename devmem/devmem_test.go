// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package devmem

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/platinasystems/de1soc/i2cip"
	"github.com/platinasystems/de1soc/internal/test"
)

// fakeMem stands in for /dev/mem with a two page regular file.
func fakeMem(t *testing.T) string {
	dir, err := ioutil.TempDir("", "devmem")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	fn := filepath.Join(dir, "mem")
	if err = ioutil.WriteFile(fn, make([]byte, 2*os.Getpagesize()),
		0600); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestMapRegisters(t *testing.T) {
	assert := test.Assert{TB: t}
	fn := fakeMem(t)
	off := uint64(0x30)
	m, err := Open(Config{
		Dev:    fn,
		Base:   uint64(os.Getpagesize()),
		Offset: off,
	})
	assert.Nil(err)

	d := i2cip.New(m)
	d.SetAddress(32)
	d.SetData(170)
	d.SetControl(133504)
	assert.Nil(d.SetBytecount(3))
	assert.Uint32(d.Address(), 32)
	assert.Uint32(d.Data(), 170)
	assert.Uint32(d.Control(), 133504|3<<1)
	assert.Nil(m.Close())

	b, err := ioutil.ReadFile(fn)
	assert.Nil(err)
	regs := b[os.Getpagesize()+int(off):]
	for i, want := range []uint32{32, 170, 0, 133504 | 3<<1} {
		if got := binary.LittleEndian.Uint32(regs[4*i:]); got != want {
			t.Error("wrong:", i2cip.Index(i), got, "want:", want)
		}
	}
}

func TestUnaligned(t *testing.T) {
	_, err := Open(Config{Dev: fakeMem(t), Base: 2})
	test.Assert{TB: t}.NonNil(err)
}

func TestShortSpan(t *testing.T) {
	assert := test.Assert{TB: t}
	_, err := Open(Config{Dev: fakeMem(t), Span: 12})
	assert.Error(err, "span 12: less than 16 register bytes")
	_, err = Open(Config{Dev: fakeMem(t), Span: -4})
	assert.NonNil(err)
}

func TestMissingDev(t *testing.T) {
	_, err := Open(Config{Dev: "/nonexistent/mem"})
	test.Assert{TB: t}.Error(err, os.ErrNotExist)
}

func TestAccessAfterClose(t *testing.T) {
	assert := test.Assert{TB: t}
	m, err := Open(Config{Dev: fakeMem(t)})
	assert.Nil(err)
	assert.Nil(m.Close())
	assert.Nil(m.Close())
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	m.ReadRegister(i2cip.Status)
}
