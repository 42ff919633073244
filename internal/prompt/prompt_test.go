// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestScanner(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewScanner(strings.NewReader("170\n133504\n"), out)
	defer p.Close()
	for _, want := range []string{"170", "133504"} {
		s, err := p.Prompt("? ")
		if err != nil || s != want {
			t.Error("wrong:", s, err)
		}
	}
	if _, err := p.Prompt("? "); err != io.EOF {
		t.Error("wrong:", err)
	}
	if s := out.String(); s != "? ? ? " {
		t.Error("wrong:", s)
	}
}
