// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package devmem maps the I2C IP register window from physical memory.
package devmem

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/platinasystems/de1soc/i2cip"
)

const (
	DevMem = "/dev/mem"

	// Light weight HPS-to-FPGA bridge of the Cyclone V SoC.
	LwBridgeBase = 0xff200000
)

type Config struct {
	Dev    string
	Base   uint64
	Offset uint64
	Span   int
}

func DefaultConfig() Config {
	return Config{
		Dev:  DevMem,
		Base: LwBridgeBase,
		Span: i2cip.Span,
	}
}

// Map is an i2cip.RegIO over an mmap'd register window.
type Map struct {
	cfg  Config
	mem  []byte
	regs unsafe.Pointer
}

// Open maps the page containing cfg.Base + cfg.Offset. The file descriptor
// isn't needed after mmap so it's closed before return.
func Open(cfg Config) (*Map, error) {
	if len(cfg.Dev) == 0 {
		cfg.Dev = DevMem
	}
	if cfg.Span == 0 {
		cfg.Span = i2cip.Span
	}
	if cfg.Span < i2cip.Span {
		return nil, fmt.Errorf("span %d: less than %d register bytes",
			cfg.Span, i2cip.Span)
	}
	phys := cfg.Base + cfg.Offset
	if phys&3 != 0 {
		return nil, fmt.Errorf("%#x: unaligned register window", phys)
	}
	f, err := os.OpenFile(cfg.Dev, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	pagesize := uint64(os.Getpagesize())
	page := phys &^ (pagesize - 1)
	delta := phys - page
	length := int(delta) + cfg.Span

	mem, err := unix.Mmap(int(f.Fd()), int64(page), length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s at %#x", cfg.Dev, page)
	}
	return &Map{
		cfg:  cfg,
		mem:  mem,
		regs: unsafe.Pointer(&mem[delta]),
	}, nil
}

func (m *Map) String() string {
	return fmt.Sprintf("%s@%#x", m.cfg.Dev, m.cfg.Base+m.cfg.Offset)
}

func (m *Map) reg(i i2cip.Index) *uint32 {
	if m.mem == nil {
		panic(fmt.Errorf("%v: %v access after close", m, i))
	}
	if int(i.Offset())+4 > m.cfg.Span {
		panic(fmt.Errorf("%v: %v beyond span %d", m, i, m.cfg.Span))
	}
	return (*uint32)(unsafe.Pointer(uintptr(m.regs) + i.Offset()))
}

func (m *Map) ReadRegister(i i2cip.Index) uint32 {
	return atomic.LoadUint32(m.reg(i))
}

func (m *Map) WriteRegister(i i2cip.Index, v uint32) {
	atomic.StoreUint32(m.reg(i), v)
}

func (m *Map) Close() error {
	if m.mem == nil {
		return nil
	}
	mem := m.mem
	m.mem, m.regs = nil, nil
	return errors.Wrap(unix.Munmap(mem), "munmap")
}
