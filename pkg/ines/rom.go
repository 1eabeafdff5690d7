// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package ines loads iNES v1.0 cartridge images and exposes their PRG and
// CHR banks together with the interrupt vectors found at the top of the
// PRG address space.
package ines

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidFormat reports an image whose magic bytes or declared bank
// sizes do not describe the buffer it came from.
var ErrInvalidFormat = errors.New("invalid iNES format")

// Interrupt vector locations in CPU address space.
const (
	NMIVectorAddress   = 0xFFFA
	ResetVectorAddress = 0xFFFC
	IRQVectorAddress   = 0xFFFE

	// PRGBaseAddress is where the PRG bank is mapped in CPU space.
	PRGBaseAddress = 0x8000
)

// ROM is a parsed cartridge image. The PRG and CHR accessors return views
// into the original buffer; callers must not mutate them.
type ROM struct {
	Header Header
	Name   string // image identification, file stem when loaded from disk

	PRGOffset int
	CHROffset int

	ResetVector uint16
	NMIVector   uint16
	IRQVector   uint16

	// EntryPoints seeds the control-flow trace. Initialized with the
	// reset vector.
	EntryPoints []uint16

	data []byte
}

// Load parses an iNES image from a byte buffer.
func Load(data []byte) (*ROM, error) {
	if len(data) < HeaderSize {
		return nil, errors.Wrap(ErrInvalidFormat, "image shorter than header")
	}
	if !bytes.Equal(data[:4], standardIdentifier) {
		return nil, errors.Wrap(ErrInvalidFormat, "bad magic")
	}

	rom := &ROM{data: data}
	h := &rom.Header
	copy(h.Identifier[:], data[:4])
	h.PRG = data[4]
	h.CHR = data[5]
	h.Flag6 = data[6]
	h.Flag7 = data[7]
	h.PRGRAM = data[8]
	h.Flag9 = data[9]
	h.Flag10 = data[10]

	rom.PRGOffset = HeaderSize
	if h.Trainer() {
		rom.PRGOffset += TrainerSize
	}
	rom.CHROffset = rom.PRGOffset + h.PRGROMSize()

	if h.PRGROMSize() == 0 {
		return nil, errors.Wrap(ErrInvalidFormat, "no PRG banks")
	}
	if rom.CHROffset+h.CHRROMSize() > len(data) {
		return nil, errors.Wrapf(ErrInvalidFormat,
			"declared %d PRG + %d CHR banks exceed %d byte image", h.PRG, h.CHR, len(data))
	}

	prg := rom.PRG()
	rom.NMIVector = readWord(prg, len(prg)-6)
	rom.ResetVector = readWord(prg, len(prg)-4)
	rom.IRQVector = readWord(prg, len(prg)-2)
	rom.EntryPoints = []uint16{rom.ResetVector}

	return rom, nil
}

// LoadFile reads and parses an iNES image from disk. The file stem is kept
// as the ROM name for report identification.
func LoadFile(path string) (*ROM, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rom, err := Load(data)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	rom.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return rom, nil
}

// PRG returns the PRG ROM bank as a read-only view.
func (r *ROM) PRG() []byte {
	return r.data[r.PRGOffset : r.PRGOffset+r.Header.PRGROMSize()]
}

// CHR returns the CHR ROM bank as a read-only view. Empty when the
// cartridge carries CHR RAM only.
func (r *ROM) CHR() []byte {
	return r.data[r.CHROffset : r.CHROffset+r.Header.CHRROMSize()]
}

// MapperID returns the cartridge mapper number.
func (r *ROM) MapperID() uint8 {
	return r.Header.Mapper()
}

func readWord(buf []byte, offset int) uint16 {
	return uint16(buf[offset]) | uint16(buf[offset+1])<<8
}
