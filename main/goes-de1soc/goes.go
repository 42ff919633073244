// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"github.com/platinasystems/de1soc/cmd/i2cdemo"
	"github.com/platinasystems/de1soc/cmd/i2cipd"
	"github.com/platinasystems/de1soc/cmd/i2creg"
	"github.com/platinasystems/de1soc/internal/goes"
)

func Goes() goes.ByName {
	g := make(goes.ByName)
	g.Plot(
		new(i2cdemo.Command),
		new(i2cipd.Command),
		new(i2creg.Command),
	)
	return g
}
