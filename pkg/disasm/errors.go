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

package disasm

import "github.com/pkg/errors"

var (
	// ErrRegionMissing reports a trace address no code region covers.
	// Fatal for the traced function, recoverable for the caller.
	ErrRegionMissing = errors.New("no code region covers address")

	// ErrOutOfBounds reports operand bytes missing at the end of a region
	// during a function trace.
	ErrOutOfBounds = errors.New("operand bytes out of region bounds")

	// ErrLoopbackToZero reports a loop repair that would have to wrap
	// around CPU address 0x0000.
	ErrLoopbackToZero = errors.New("loopback at address 0x0000")
)
