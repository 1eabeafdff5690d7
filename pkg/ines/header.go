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

package ines

import (
	"fmt"
)

const (
	// HeaderSize standard NES rom header is 16 bytes
	HeaderSize = 16

	// TrainerSize optional trainer blob between header and PRG data
	TrainerSize = 512

	// PRGBankSize PRG ROM comes in 16 KB units
	PRGBankSize = 16 * 1024

	// CHRBankSize CHR ROM comes in 8 KB units
	CHRBankSize = 8 * 1024
)

// MirroringDirection nametable mirroring arrangement
type MirroringDirection int

const (
	MirroringHorizontal MirroringDirection = iota
	MirroringVertical
	MirroringFourScreen
)

func (d MirroringDirection) String() string {
	switch d {
	case MirroringHorizontal:
		return "Horizontal"
	case MirroringVertical:
		return "Vertical"
	case MirroringFourScreen:
		return "FourScreen"
	default:
		return "N/A"
	}
}

// Header represents a standard iNES format header
type Header struct {
	Identifier [4]byte // Identifier must be ascii 'NES' and a MS-DOS character break
	PRG        uint8   // PRG size of PRG ROM in 16 KB units
	CHR        uint8   // CHR size of CHR ROM in 8KB units, 0 means CHR RAM only
	Flag6      uint8   // NNNN FTBM
	Flag7      uint8   // NNNN xxPV
	PRGRAM     uint8   // PRG RAM in 8KB units, 0 infers 8KB for compatibility
	Flag9      uint8   // xxxx xxxT
	Flag10     uint8   // xxBP xxTT
}

var standardIdentifier = []byte{0x4E, 0x45, 0x53, 0x1A}

// PRGROMSize returns PRG ROM size in bytes
func (h *Header) PRGROMSize() int {
	return int(h.PRG) * PRGBankSize
}

// CHRROMSize returns CHR ROM size in bytes
func (h *Header) CHRROMSize() int {
	return int(h.CHR) * CHRBankSize
}

// Mapper returns mapper number
func (h *Header) Mapper() uint8 {
	low4 := (h.Flag6 & 0xF0) >> 4
	high4 := h.Flag7 & 0xF0
	return low4 | high4
}

// Flag6
// --------
// 76543210
// NNNNFTBM
// ||||||||
// |||||||+- Mirroring. 0 = horizontal, 1 = vertical
// ||||||+-- SRAM at 6000-7FFFh battery backed. 0 = no, 1 = yes
// |||||+--- Trainer. 0 = no trainer present, 1 = 512 byte trainer at 7000-71FFh
// ||||+---- Four screen mode. 0 = no, 1 = yes. (When set, the M bit has no effect)
// ++++----- Lower 4 bits of the mapper number

// Trainer returns true when T flag is set
func (h *Header) Trainer() bool {
	return h.Flag6&0x04 != 0
}

// HasBattery returns true when B flag is set
func (h *Header) HasBattery() bool {
	return h.Flag6&0x02 != 0
}

// Mirroring returns mirroring direction, the F flag overrides the M bit
func (h *Header) Mirroring() MirroringDirection {
	if h.Flag6&0x08 != 0 {
		return MirroringFourScreen
	}
	return MirroringDirection(h.Flag6 & 0x01)
}

// Flag7
// --------
// 76543210
// NNNNSSPV
// ||||||||
// |||||||+- Vs. Unisystem. When set, this is a Vs. game
// ||||||+-- PlayChoice-10. When set this is a PC-10 Game
// ||||++--- If equal to 2, flags 8-15 are in NES 2.0 format
// ++++----- Upper 4 bits of the mapper number

// NES20 returns true when header is in iNES2.0 format. The extension
// fields are detected but not consulted by the analysis.
func (h *Header) NES20() bool {
	return h.Flag7&0x0C == 0x08
}

// Flag9
// --------
// 76543210
// xxxxxxxT
// ||||||||
// |||||||+- TV system. 0 = NTSC, 1 = PAL
// +++++++-- Reserved, must be 0

// PAL returns true when the T flag of flag9 is set
func (h *Header) PAL() bool {
	return h.Flag9&0x01 != 0
}

func (h *Header) String() string {
	var ver string
	if h.NES20() {
		ver = "iNES2.0"
	} else {
		ver = "iNES1.0"
	}
	return fmt.Sprintf(`HDR: %v
VER: %v
PRG: %v %vKB
CHR: %v %vKB
MAP: %v %v
4Screen: %v
Trainer: %v
Battery: %v
Mirroring: %v`,
		string(h.Identifier[:]),
		ver,
		h.PRG, int(h.PRG)*16,
		h.CHR, int(h.CHR)*8,
		h.Mapper(), MapperName(h.Mapper()),
		h.Mirroring() == MirroringFourScreen,
		h.Trainer(),
		h.HasBattery(),
		h.Mirroring(),
	)
}
