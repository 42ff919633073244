// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the DE1-SoC I2C IP machine run w/in the HPS distro.
package main

import "github.com/platinasystems/redis"

const Machine = "platina"

func main() {
	redis.DefaultHash = Machine
	Goes().Main()
}
