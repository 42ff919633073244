// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package i2cdemo

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/platinasystems/de1soc/i2cip"
	"github.com/platinasystems/de1soc/internal/prompt"
	"github.com/platinasystems/de1soc/internal/test"
)

func run(input string, args ...string) (*i2cip.Sim, string, string, error) {
	sim := new(i2cip.Sim)
	prompts := new(bytes.Buffer)
	out := new(bytes.Buffer)
	c := &Command{
		Device:   i2cip.New(sim),
		Prompter: prompt.NewScanner(strings.NewReader(input), prompts),
		Stdout:   out,
	}
	err := c.Main(args...)
	return sim, prompts.String(), out.String(), err
}

func TestDemo(t *testing.T) {
	assert := test.Assert{TB: t}
	sim, prompts, out, err := run("170\n133504\n")
	assert.Nil(err)
	assert.Equal(prompts, "\nset data value: \nset control value: ")
	assert.Equal(out, "\nvalue read from control reg: 133504\n"+
		"\nvalue read from data reg: 170\n")
	assert.Uint32(sim.Regs[i2cip.Address], 32)
	assert.Uint32(sim.Regs[i2cip.Data], 170)
	assert.Uint32(sim.Regs[i2cip.Control], 133504)
}

func TestAddress(t *testing.T) {
	assert := test.Assert{TB: t}
	sim, _, _, err := run("0\n131200\n", "-address", "0x50")
	assert.Nil(err)
	assert.Uint32(sim.Regs[i2cip.Address], 0x50)
	assert.Uint32(sim.Regs[i2cip.Control], 131200)
}

func TestBadInput(t *testing.T) {
	assert := test.Assert{TB: t}
	sim, _, _, err := run("ten\n")
	assert.Match(err.Error(), `^"ten": .*invalid syntax`)
	assert.True(sim.Writes(i2cip.Data) == 0)

	_, _, _, err = run("170\n")
	assert.Error(err, io.EOF)

	_, _, _, err = run("", "extra")
	assert.Error(err, "[extra]: unexpected")
}
