// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package i2creg shows and stores the I2C IP fields by name.
package i2creg

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/platinasystems/de1soc/attr"
	"github.com/platinasystems/de1soc/i2cip"
	"github.com/platinasystems/de1soc/internal/options"
	"github.com/platinasystems/de1soc/lang"
)

type Command struct {
	// Device, if set, is used instead of opening the register window.
	Device *i2cip.Device
	// Stdout, if set, replaces os.Stdout.
	Stdout io.Writer
}

func (*Command) String() string { return "i2creg" }

func (*Command) Usage() string {
	return "i2creg " + options.Usage + " [FIELD [VALUE]]"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "show or store I2C IP register fields",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Without FIELD, print every field as "` + attr.Group + `.FIELD: VALUE".
	With FIELD, print its decimal value. With FIELD and VALUE, store the
	unsigned VALUE which may have a 0x (hex) or 0 (octal) prefix.

FIELDS
	mode, bytecount, registervalue, use_repeated_start, start,
	address, data, status, control, register_used
` + options.Man,
	}
}

func (c *Command) Main(args ...string) error {
	opt, args, err := options.New(args)
	if err != nil {
		return err
	}
	if len(args) > 2 {
		return fmt.Errorf("%v: unexpected", args[2:])
	}
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	d := c.Device
	if d == nil {
		var closer io.Closer
		if d, closer, err = opt.Open(); err != nil {
			return err
		}
		defer closer.Close()
	}
	attrs := attr.New(d)
	if len(args) == 0 {
		for _, a := range attrs {
			fmt.Fprintf(w, "%s: %s", attr.Key(a.Name), a.Format())
		}
		return nil
	}
	a, found := attrs.ByName(strings.TrimPrefix(args[0], attr.Group+"."))
	if !found {
		return fmt.Errorf("%s: unknown field", args[0])
	}
	if len(args) == 2 {
		return a.Parse(args[1])
	}
	_, err = io.WriteString(w, a.Format())
	return err
}
