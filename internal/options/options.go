// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package options parses the register window options common to the i2c
// commands and opens the respective device.
package options

import (
	"fmt"
	"io"
	"strconv"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"

	"github.com/platinasystems/de1soc/devmem"
	"github.com/platinasystems/de1soc/i2cip"
	"github.com/platinasystems/de1soc/internal/memmap"
)

const Usage = "[-sim] [-dev DEV] [-base ADDR] [-offset OFFSET] [-region NAME]"

const Man = `
WINDOW OPTIONS
	-sim	use an in-memory register file instead of DEV

	-dev DEV
		physical memory device, default: /dev/mem

	-base ADDR
		bridge address, default: 0xff200000

	-offset OFFSET
		I2C IP offset within the bridge, default: 0

	-region NAME
		take the bridge address from the named /proc/iomem region`

// Iomem is the file searched for -region.
var Iomem = memmap.ProcIomem

type Options struct {
	Sim    bool
	Region string
	devmem.Config
}

// New strips the window options from args.
func New(args []string) (*Options, []string, error) {
	flag, args := flags.New(args, "-sim")
	parm, args := parms.New(args, "-dev", "-base", "-offset", "-region")
	opt := &Options{
		Sim:    flag.ByName["-sim"],
		Region: parm.ByName["-region"],
		Config: devmem.DefaultConfig(),
	}
	if s := parm.ByName["-dev"]; len(s) > 0 {
		opt.Dev = s
	}
	for _, x := range []struct {
		name string
		p    *uint64
	}{
		{"-base", &opt.Base},
		{"-offset", &opt.Offset},
	} {
		s := parm.ByName[x.name]
		if len(s) == 0 {
			continue
		}
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, args, fmt.Errorf("%s: %v", x.name, err)
		}
		*x.p = u
	}
	return opt, args, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open the register file described by the options. The returned Closer
// releases the mapping.
func (opt *Options) Open() (*i2cip.Device, io.Closer, error) {
	if opt.Sim {
		return i2cip.New(new(i2cip.Sim)), nopCloser{}, nil
	}
	cfg := opt.Config
	if len(opt.Region) > 0 {
		m, err := memmap.FileToMap(Iomem)
		if err != nil {
			return nil, nil, err
		}
		r, err := m.Lookup(opt.Region)
		if err != nil {
			return nil, nil, err
		}
		cfg.Base = r.Start
		if cfg.Offset+uint64(cfg.Span) > r.Len() {
			return nil, nil, fmt.Errorf("%s: offset %#x beyond %v",
				opt.Region, cfg.Offset, r)
		}
	}
	m, err := devmem.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return i2cip.New(m), m, nil
}
