// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package memmap parses /proc/iomem to find physical regions by name,
// e.g. the light weight HPS-to-FPGA bridge.
package memmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const ProcIomem = "/proc/iomem"

type Region struct {
	What   string
	Ranges []*Range
}

type Range struct {
	Start uint64
	End   uint64
}

type RegionMap map[string]Region

func (r Region) String() string {
	return fmt.Sprintf("%s: %v", r.What, r.Ranges)
}

func (r Range) String() string {
	return fmt.Sprintf("%x-%x", r.Start, r.End)
}

func (r Range) Len() uint64 { return r.End - r.Start + 1 }

// ReaderToMap collects "START-END : NAME" lines, at any indent, by NAME.
// Malformed lines are skipped.
func ReaderToMap(r io.Reader) (RegionMap, error) {
	regionMap := make(RegionMap)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), ":", 2)
		if len(fields) != 2 {
			continue
		}
		rng := new(Range)
		_, err := fmt.Sscanf(strings.TrimSpace(fields[0]), "%x-%x",
			&rng.Start, &rng.End)
		if err != nil {
			continue
		}
		key := strings.TrimSpace(fields[1])
		reg := regionMap[key]
		reg.What = key
		reg.Ranges = append(reg.Ranges, rng)
		regionMap[key] = reg
	}
	return regionMap, scanner.Err()
}

func FileToMap(s string) (RegionMap, error) {
	f, err := os.OpenFile(s, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReaderToMap(f)
}

// Lookup returns the first range of the named region. The name matches
// exactly or as the suffix following a device address, so "bridge" finds
// "ff200000.bridge". A suffix matching more than one region is an error.
func (m RegionMap) Lookup(name string) (*Range, error) {
	if reg, found := m[name]; found && len(reg.Ranges) > 0 {
		return reg.Ranges[0], nil
	}
	var keys []string
	for k, reg := range m {
		if strings.HasSuffix(k, "."+name) && len(reg.Ranges) > 0 {
			keys = append(keys, k)
		}
	}
	switch len(keys) {
	case 0:
		return nil, fmt.Errorf("%s: region not found", name)
	case 1:
		return m[keys[0]].Ranges[0], nil
	}
	sort.Strings(keys)
	return nil, fmt.Errorf("%s: ambiguous region (%s)", name,
		strings.Join(keys, ", "))
}
