// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package i2cdemo prompts for DATA and CONTROL values, writes them with a
// fixed slave ADDRESS, then reads back CONTROL and DATA.
package i2cdemo

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/platinasystems/parms"

	"github.com/platinasystems/de1soc/i2cip"
	"github.com/platinasystems/de1soc/internal/options"
	"github.com/platinasystems/de1soc/internal/prompt"
	"github.com/platinasystems/de1soc/lang"
)

// DefaultAddress is the slave address of the demo, 0b0100000.
const DefaultAddress = 0x20

type Command struct {
	Device   *i2cip.Device
	Prompter prompt.Prompter
	Stdout   io.Writer
}

func (*Command) String() string { return "i2cdemo" }

func (*Command) Usage() string {
	return "i2cdemo " + options.Usage + " [-address ADDR]"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "write and read back I2C IP data and control",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Prompt for a DATA value and a CONTROL value, write them with the
	slave ADDRESS (default 32), then print CONTROL and DATA.

	For example, data 170 with control 133504 (write, register used,
	register 0x09, start) has the IP core write 0xaa to register 9 of
	slave 0x20.

OPTIONS
	-address ADDR
		slave address, default: 32
` + options.Man,
	}
}

func (c *Command) Main(args ...string) error {
	opt, args, err := options.New(args)
	if err != nil {
		return err
	}
	parm, args := parms.New(args, "-address")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	addr := uint64(DefaultAddress)
	if s := parm.ByName["-address"]; len(s) > 0 {
		if addr, err = strconv.ParseUint(s, 0, 32); err != nil {
			return fmt.Errorf("-address: %v", err)
		}
	}
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	p := c.Prompter
	if p == nil {
		p = prompt.New()
		defer p.Close()
	}
	d := c.Device
	if d == nil {
		var closer io.Closer
		if d, closer, err = opt.Open(); err != nil {
			return err
		}
		defer closer.Close()
	}

	data, err := promptUint32(p, "\nset data value: ")
	if err != nil {
		return err
	}
	d.SetData(data)
	d.SetAddress(uint32(addr))

	control, err := promptUint32(p, "\nset control value: ")
	if err != nil {
		return err
	}
	d.SetControl(control)

	fmt.Fprintf(w, "\nvalue read from control reg: %d\n", d.Control())
	fmt.Fprintf(w, "\nvalue read from data reg: %d\n", d.Data())
	return nil
}

func promptUint32(p prompt.Prompter, s string) (uint32, error) {
	line, err := p.Prompt(s)
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	u, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %v", line, err)
	}
	return uint32(u), nil
}
