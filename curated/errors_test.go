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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jtallis/gopherdigic/curated"
	"github.com/jtallis/gopherdigic/test"
)

func TestIdentity(t *testing.T) {
	e := curated.Errorf("machine: %v", "trouble")

	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, "machine: %v"))
	test.ExpectedFailure(t, curated.Is(e, "romloader: %v"))

	// plain errors are not curated
	p := errors.New("plain")
	test.ExpectedFailure(t, curated.IsAny(p))
	test.ExpectedFailure(t, curated.Is(p, "plain"))
}

func TestChain(t *testing.T) {
	e := curated.Errorf("inner: %v", 10)
	f := curated.Errorf("outer: %v", e)

	test.ExpectedSuccess(t, curated.Has(f, "inner: %v"))
	test.ExpectedFailure(t, curated.Is(f, "inner: %v"))
	test.ExpectedSuccess(t, curated.Is(f, "outer: %v"))
}

func TestNormalisation(t *testing.T) {
	// adjacent duplicate parts are removed from the message
	e := curated.Errorf("romloader: %v", curated.Errorf("romloader: %v", "no such file"))
	test.Equate(t, e.Error(), "romloader: no such file")
}
