// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"path/filepath"
	"testing"
)

func TestProgBase(t *testing.T) {
	if s := ProgBase(); s != filepath.Base(Prog()) || len(s) == 0 {
		t.Error("wrong:", s, Prog())
	}
}
