// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package i2cip

import "sync"

// Sim is an in-memory register file that counts every access.
type Sim struct {
	sync.Mutex
	Regs   [NRegs]uint32
	reads  [NRegs]int
	writes [NRegs]int
}

func (s *Sim) ReadRegister(i Index) uint32 {
	s.Lock()
	defer s.Unlock()
	s.reads[i]++
	return s.Regs[i]
}

func (s *Sim) WriteRegister(i Index, v uint32) {
	s.Lock()
	defer s.Unlock()
	s.writes[i]++
	s.Regs[i] = v
}

func (s *Sim) Reads(i Index) int {
	s.Lock()
	defer s.Unlock()
	return s.reads[i]
}

func (s *Sim) Writes(i Index) int {
	s.Lock()
	defer s.Unlock()
	return s.writes[i]
}

// Reset the access counters, leaving register contents.
func (s *Sim) Reset() {
	s.Lock()
	defer s.Unlock()
	s.reads = [NRegs]int{}
	s.writes = [NRegs]int{}
}
