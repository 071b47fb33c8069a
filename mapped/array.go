package mapped

import (
	"encoding/binary"
	"fmt"
)

// The mapped arrays are raw views into the file bytes; nothing is copied at
// open time. Every element access is bounds-checked so a corrupt file
// surfaces as an OutOfBounds error rather than a wild read.

type int32Array struct {
	data []byte
	n    int
}

func (a int32Array) at(i int32) (int32, error) {
	if i < 0 || int(i) >= a.n {
		return 0, boundsError(int(i), a.n)
	}
	return int32(binary.NativeEndian.Uint32(a.data[int(i)*4:])), nil
}

type int16Array struct {
	data []byte
	n    int
}

func (a int16Array) at(i int32) (int16, error) {
	if i < 0 || int(i) >= a.n {
		return 0, boundsError(int(i), a.n)
	}
	return int16(binary.NativeEndian.Uint16(a.data[int(i)*2:])), nil
}

type uint16Array struct {
	data []byte
	n    int
}

func (a uint16Array) at(i int32) (uint16, error) {
	if i < 0 || int(i) >= a.n {
		return 0, boundsError(int(i), a.n)
	}
	return binary.NativeEndian.Uint16(a.data[int(i)*2:]), nil
}

type byteArray struct {
	data []byte
	n    int
}

func (a byteArray) at(i int32) (byte, error) {
	if i < 0 || int(i) >= a.n {
		return 0, boundsError(int(i), a.n)
	}
	return a.data[i], nil
}

func boundsError(i, n int) error {
	return &Error{
		Kind:    OutOfBounds,
		Message: fmt.Sprintf("index %d out of mapped array bounds [0, %d)", i, n),
	}
}
