// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// stack is a stack of byte strings. The top of the stack is the last item.
// Indexes passed to the methods count down from the top, so 0 is the top
// item.
type stack struct {
	stk [][]byte
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int {
	return len(s.stk)
}

// PushByteArray adds so to the top of the stack.
func (s *stack) PushByteArray(so []byte) {
	s.stk = append(s.stk, so)
}

// PushInt pushes the encoding of val.
func (s *stack) PushInt(val scriptNum) {
	s.PushByteArray(val.Bytes())
}

// PushBool pushes 1 for true and the empty byte string for false.
func (s *stack) PushBool(val bool) {
	s.PushByteArray(fromBool(val))
}

// PopByteArray removes and returns the top item.
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PopInt removes the top item and decodes it as a script number.
func (s *stack) PopInt() (scriptNum, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so)
}

// PopBool removes the top item and interprets it as a boolean.
func (s *stack) PopBool() (bool, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// PeekByteArray returns the item idx positions below the top without
// removing it.
func (s *stack) PeekByteArray(idx int) ([]byte, error) {
	sz := len(s.stk)
	if idx < 0 || idx >= sz {
		return nil, errors.Wrapf(errInvalidStackOp, "index %d is invalid for stack "+
			"size %d", idx, sz)
	}
	return s.stk[sz-idx-1], nil
}

// PeekInt decodes the item idx positions below the top as a script number
// without removing it.
func (s *stack) PeekInt(idx int) (scriptNum, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so)
}

// nipN removes and returns the item idx positions below the top.
func (s *stack) nipN(idx int) ([]byte, error) {
	sz := len(s.stk)
	if idx < 0 || idx > sz-1 {
		return nil, errors.Wrapf(errStackUnderflow, "index %d is invalid for stack "+
			"size %d", idx, sz)
	}

	so := s.stk[sz-idx-1]
	if idx == 0 {
		s.stk = s.stk[:sz-1]
	} else {
		copy(s.stk[sz-idx-1:], s.stk[sz-idx:])
		s.stk = s.stk[:sz-1]
	}
	return so, nil
}

// NipN removes the item idx positions below the top.
func (s *stack) NipN(idx int) error {
	_, err := s.nipN(idx)
	return err
}

// Tuck copies the top item and inserts it below the second item.
//
// Stack transformation: [... x1 x2] -> [... x2 x1 x2]
func (s *stack) Tuck() error {
	so2, err := s.PopByteArray()
	if err != nil {
		return err
	}
	so1, err := s.PopByteArray()
	if err != nil {
		return err
	}
	s.PushByteArray(so2)
	s.PushByteArray(so1)
	s.PushByteArray(so2)
	return nil
}

// DropN removes the top n items.
//
// Stack transformation (n=2): [... x1 x2] -> [...]
func (s *stack) DropN(n int) error {
	if n > s.Depth() {
		return errors.Wrapf(errStackUnderflow, "attempt to drop %d items from stack "+
			"with %d items", n, s.Depth())
	}
	s.stk = s.stk[:len(s.stk)-n]
	return nil
}

// DupN duplicates the top n items.
//
// Stack transformation (n=2): [... x1 x2] -> [... x1 x2 x1 x2]
func (s *stack) DupN(n int) error {
	if n > s.Depth() {
		return errors.Wrapf(errStackUnderflow, "attempt to dup %d stack items with "+
			"%d items", n, s.Depth())
	}
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// RotN rotates the top 3n items to the left by n.
//
// Stack transformation (n=1): [... x1 x2 x3] -> [... x2 x3 x1]
func (s *stack) RotN(n int) error {
	entry := 3*n - 1
	if entry >= s.Depth() {
		return errors.Wrapf(errStackUnderflow, "attempt to rotate %d stack items "+
			"with %d items", 3*n, s.Depth())
	}
	for i := n; i > 0; i-- {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// SwapN swaps the top n items with the n items below them.
//
// Stack transformation (n=1): [... x1 x2] -> [... x2 x1]
func (s *stack) SwapN(n int) error {
	entry := 2*n - 1
	if entry >= s.Depth() {
		return errors.Wrapf(errStackUnderflow, "attempt to swap %d stack items "+
			"with %d items", 2*n, s.Depth())
	}
	for i := n; i > 0; i-- {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// OverN copies the n items below the top n items to the top.
//
// Stack transformation (n=1): [... x1 x2] -> [... x1 x2 x1]
func (s *stack) OverN(n int) error {
	entry := 2*n - 1
	if entry >= s.Depth() {
		return errors.Wrapf(errStackUnderflow, "attempt to copy %d stack items "+
			"with %d items", n, s.Depth())
	}
	for ; n > 0; n-- {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// PickN copies the item n positions below the top to the top.
//
// Stack transformation (n=1): [... x1 x2] -> [... x1 x2 x1]
func (s *stack) PickN(n int) error {
	so, err := s.PeekByteArray(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// RollN moves the item n positions below the top to the top.
//
// Stack transformation (n=1): [... x1 x2] -> [... x2 x1]
func (s *stack) RollN(n int) error {
	so, err := s.nipN(n)
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// String returns the stack in a readable, bottom first form.
func (s *stack) String() string {
	var result string
	for _, stack := range s.stk {
		if len(stack) == 0 {
			result += "00000000  <empty>\n"
		}
		result += hex.Dump(stack)
	}
	return result
}
