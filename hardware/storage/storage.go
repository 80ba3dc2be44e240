// This file is part of GopherDIGIC.
//
// GopherDIGIC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDIGIC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDIGIC.  If not, see <https://www.gnu.org/licenses/>.

// Package storage provides the backing media for the card controllers. An
// Image is a flat byte array, either blank or loaded from a file, exposed
// through the word stream interface the polled DMA engine expects.
package storage

import (
	"encoding/binary"
	"io/ioutil"

	"github.com/jtallis/gopherdigic/curated"
	"github.com/jtallis/gopherdigic/logger"
)

// BlockSize of the emulated media in bytes.
const BlockSize = 512

// Image is an in-memory media image. Words are read and written through a
// window armed with Prepare, which is how a card controller scopes an
// individual read or write command.
type Image struct {
	Label string
	Data  []byte

	pos     uint32
	pending uint32
}

// NewImage is the preferred method of initialisation for a blank Image of
// the specified size.
func NewImage(label string, size int) *Image {
	return &Image{
		Label: label,
		Data:  make([]byte, size),
	}
}

// Load is the preferred method of initialisation for an Image backed by the
// contents of a file.
func Load(label string, filename string) (*Image, error) {
	d, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("storage: %v", err)
	}

	logger.Logf("STORAGE", "%s: loaded %s (%d bytes)", label, filename, len(d))

	return &Image{
		Label: label,
		Data:  d,
	}, nil
}

// Prepare arms a read or write window. offset and count are in bytes.
// Words are served from the window until it is exhausted.
func (img *Image) Prepare(offset uint32, count uint32) {
	img.pos = offset
	img.pending = count
}

// DataReady implements the dma.Device interface.
func (img *Image) DataReady() bool {
	return img.pending > 0
}

// ReadWord implements the dma.Device interface.
func (img *Image) ReadWord() uint32 {
	if img.pending == 0 {
		return 0
	}
	if img.pending < 4 {
		// a ragged window is drained by its final, partial word
		img.pending = 0
	} else {
		img.pending -= 4
	}

	if int(img.pos)+4 > len(img.Data) {
		logger.Logf("STORAGE", "%s: read past end of media (offset %#08x)", img.Label, img.pos)
		img.pos += 4
		return 0
	}

	v := binary.LittleEndian.Uint32(img.Data[img.pos:])
	img.pos += 4
	return v
}

// WriteWord implements the dma.Device interface.
func (img *Image) WriteWord(value uint32) {
	if img.pending == 0 {
		return
	}
	if img.pending < 4 {
		img.pending = 0
	} else {
		img.pending -= 4
	}

	if int(img.pos)+4 > len(img.Data) {
		logger.Logf("STORAGE", "%s: write past end of media (offset %#08x)", img.Label, img.pos)
		img.pos += 4
		return
	}

	binary.LittleEndian.PutUint32(img.Data[img.pos:], value)
	img.pos += 4
}
