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

// Package mmio implements the dispatch registry for the MMIO aperture.
//
// The registry is an ordered table of address ranges, each with a handler.
// Ranges may overlap; a lookup returns the first declared entry whose range
// contains the address, never the most specific one. This mirrors how the
// real register map is described: a handful of precise apertures followed by
// broad catch-alls.
//
// The table is built once during machine setup and sealed. Registering a
// handler on a sealed table is a programming error.
package mmio

// Mode distinguishes read accesses from write accesses.
type Mode int

// The two access modes.
const (
	Read Mode = iota
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "<-"
	}
	return "->"
}

// Handler is implemented by every peripheral that owns a range of registers
// in the MMIO aperture.
//
// The parm argument is the parameter the range was registered with. It
// distinguishes instances when one handler serves several ranges (for
// example, numbered DMA channels).
//
// For Read accesses the returned value is the register value. For Write
// accesses the returned value is ignored.
type Handler interface {
	Access(parm int, address uint32, mode Mode, value uint32) uint32
}

// HandlerFunc allows an ordinary function (or method) to be used as a
// Handler.
type HandlerFunc func(parm int, address uint32, mode Mode, value uint32) uint32

// Access implements the Handler interface.
func (f HandlerFunc) Access(parm int, address uint32, mode Mode, value uint32) uint32 {
	return f(parm, address, mode, value)
}

// Entry is one address range in the registry. Start and End are inclusive.
type Entry struct {
	Label   string
	Start   uint32
	End     uint32
	Handler Handler
	Parm    int
}

// Registry is the ordered dispatch table for the MMIO aperture.
type Registry struct {
	entries []Entry
	sealed  bool

	// fallback handles accesses that match no entry. may be nil, in which
	// case unmatched reads return zero
	fallback Handler
}

// NewRegistry is the preferred method of initialisation for the Registry
// type. The fallback handler receives every access that matches no entry in
// the table; it may be nil.
func NewRegistry(fallback Handler) *Registry {
	return &Registry{
		entries:  make([]Entry, 0, 64),
		fallback: fallback,
	}
}

// Register adds an address range to the table. Declaration order is
// significant and is preserved.
func (r *Registry) Register(label string, start uint32, end uint32, handler Handler, parm int) {
	if r.sealed {
		panic("mmio: register on sealed registry")
	}
	if end < start {
		panic("mmio: register with end before start")
	}
	if handler == nil {
		panic("mmio: register with nil handler")
	}

	r.entries = append(r.entries, Entry{
		Label:   label,
		Start:   start,
		End:     end,
		Handler: handler,
		Parm:    parm,
	})
}

// Seal the table. After sealing, the table is immutable and safe for
// lock-free lookup.
func (r *Registry) Seal() {
	r.sealed = true
}

// Lookup returns the first declared entry whose range contains the address.
func (r *Registry) Lookup(address uint32) (*Entry, bool) {
	for i := range r.entries {
		if r.entries[i].Start <= address && r.entries[i].End >= address {
			return &r.entries[i], true
		}
	}
	return nil, false
}

// Access dispatches one register access through the table. Unmatched
// accesses go to the fallback handler.
func (r *Registry) Access(address uint32, mode Mode, value uint32) uint32 {
	if e, ok := r.Lookup(address); ok {
		return e.Handler.Access(e.Parm, address, mode, value)
	}

	if r.fallback != nil {
		return r.fallback.Access(0, address, mode, value)
	}

	return 0
}
