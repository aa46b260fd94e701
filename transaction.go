// This file is part of i2cslave.
//
// i2cslave is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i2cslave is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i2cslave.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/i2cslave/hardware/master"
)

// transaction is a single bus transaction requested on the command line.
//
//	w:OFFSET:BYTE,BYTE,...   write bytes starting at offset
//	w:OFFSET                 set the offset without writing any data
//	r:OFFSET:COUNT           read count bytes starting at offset
//	r::COUNT                 read count bytes from the current offset
//
// Numbers can be decimal, hex (0x) or octal (0o).
type transaction struct {
	read bool

	// -1 if the read should use the current offset of the slave
	offset int

	data  []uint8
	count int
}

func (tr transaction) String() string {
	if tr.read {
		if tr.offset < 0 {
			return fmt.Sprintf("read %d bytes", tr.count)
		}
		return fmt.Sprintf("read %d bytes from %#02x", tr.count, tr.offset)
	}
	return fmt.Sprintf("write %d bytes to %#02x", len(tr.data), tr.offset)
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func parseTransaction(s string) (transaction, error) {
	var tr transaction

	f := strings.Split(s, ":")
	if len(f) < 2 || len(f) > 3 {
		return tr, fmt.Errorf("transaction: malformed (%s)", s)
	}

	switch strings.ToLower(f[0]) {
	case "w":
		o, err := parseByte(f[1])
		if err != nil {
			return tr, fmt.Errorf("transaction: offset: %w", err)
		}
		tr.offset = int(o)

		if len(f) == 3 {
			for _, d := range strings.Split(f[2], ",") {
				v, err := parseByte(d)
				if err != nil {
					return tr, fmt.Errorf("transaction: data: %w", err)
				}
				tr.data = append(tr.data, v)
			}
		}

	case "r":
		tr.read = true
		if len(f) != 3 {
			return tr, fmt.Errorf("transaction: read requires a count (%s)", s)
		}

		if f[1] == "" {
			tr.offset = -1
		} else {
			o, err := parseByte(f[1])
			if err != nil {
				return tr, fmt.Errorf("transaction: offset: %w", err)
			}
			tr.offset = int(o)
		}

		c, err := strconv.Atoi(f[2])
		if err != nil {
			return tr, fmt.Errorf("transaction: count: %w", err)
		}
		if c < 1 {
			return tr, fmt.Errorf("transaction: count must be at least one (%d)", c)
		}
		tr.count = c

	default:
		return tr, fmt.Errorf("transaction: unknown type (%s)", f[0])
	}

	return tr, nil
}

// run the transaction with the master. the returned data is nil for writes.
func (tr transaction) run(m *master.Master, addr uint8) ([]uint8, error) {
	if tr.read {
		if tr.offset < 0 {
			return m.ReadCurrent(addr, tr.count)
		}
		return m.Read(addr, uint8(tr.offset), tr.count)
	}
	return nil, m.Write(addr, uint8(tr.offset), tr.data)
}
