/*
 * Copyright (c) 2021 Manabu Sonoda
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command libnativelog builds the line writer as a C shared library:
//
//	go build -buildmode=c-shared -o libnativelog.so ./cmd/libnativelog
//
// The library exports
//
//	long long write_line(const char *message, size_t length);
//
// which writes length bytes of message and a newline to fd 1 and returns
// length. It returns -1 for invalid arguments, including a NULL message
// with a non-zero length or a length above INT32_MAX, and -2 when the write fails.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"math"
	"unsafe"

	"github.com/mimuret/nativelog/internal/output"
	"github.com/pkg/errors"
)

const (
	resultInvalidArgument = -1
	resultIOError         = -2

	// the byte count fits a signed 32-bit int on every platform
	maxLength = math.MaxInt32
)

//export write_line
func write_line(message *C.char, length C.size_t) C.longlong {
	return C.longlong(writeLine(output.Default(), (*byte)(unsafe.Pointer(message)), uint64(length)))
}

// writeLine validates the raw C arguments before any byte is read.
func writeLine(lw *output.LineWriter, message *byte, length uint64) int64 {
	if length > maxLength {
		return resultInvalidArgument
	}
	if message == nil {
		if length > 0 {
			return resultInvalidArgument
		}
		return result(lw.WriteLine(""))
	}
	return result(lw.WriteLine(string(unsafe.Slice(message, int(length)))))
}

func result(n int, err error) int64 {
	switch {
	case err == nil:
		return int64(n)
	case errors.Is(err, output.ErrInvalidArgument):
		return resultInvalidArgument
	default:
		return resultIOError
	}
}

func main() {}
