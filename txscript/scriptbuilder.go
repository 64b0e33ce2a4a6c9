// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/pkg/errors"
)

// ScriptBuilder provides a facility for building custom scripts. It allows
// you to push opcodes, ints, and data while respecting canonical encoding. In
// general it does not ensure the script will execute correctly, however any
// data pushes which would exceed the maximum allowed script engine limits and
// are therefore guaranteed not to execute will not be pushed and will result in
// the Script function returning an error.
//
// For example, the following would build a 2-of-3 multisig script for usage in
// a pay-to-script-hash (although in this situation MultiSigScript() would be a
// better choice to generate the script):
//
//	builder := txscript.NewScriptBuilder()
//	builder.AddOp(txscript.Op2).AddData(pubKey1).AddData(pubKey2)
//	builder.AddData(pubKey3).AddOp(txscript.Op3)
//	builder.AddOp(txscript.OpCheckMultiSig)
//	script, err := builder.Script()
//	if err != nil {
//		// Handle the error.
//		return
//	}
//	fmt.Printf("Final multi-sig script: %s\n", script)
type ScriptBuilder struct {
	cmds []Command
	err  error
}

// NewScriptBuilder returns a new instance of a script builder. See
// ScriptBuilder for details.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		cmds: make([]Command, 0, 16),
	}
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.cmds = append(b.cmds, OpcodeCommand(opcode))
	return b
}

// AddOps pushes the passed opcodes to the end of the script.
func (b *ScriptBuilder) AddOps(opcodes []byte) *ScriptBuilder {
	for _, opcode := range opcodes {
		b.AddOp(opcode)
	}
	return b
}

// AddData pushes the passed data to the end of the script. Data larger than
// MaxScriptElementSize is not pushed and makes Script return an error.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if len(data) > MaxScriptElementSize {
		b.err = errors.Wrapf(ErrMalformedScript, "adding a data element of %d bytes would "+
			"exceed the maximum allowed script element size of %d", len(data),
			MaxScriptElementSize)
		return b
	}
	b.cmds = append(b.cmds, DataCommand(append([]byte(nil), data...)))
	return b
}

// AddInt64 pushes the passed integer to the end of the script, using the
// small integer opcodes when possible.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	// Fast path for small integers and Op1Negate.
	if val == 0 {
		return b.AddOp(Op0)
	}
	if val == -1 || (val >= 1 && val <= 16) {
		return b.AddOp(byte((Op1 - 1) + val))
	}

	return b.AddData(scriptNum(val).Bytes())
}

// Reset resets the script so it has no content.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.cmds = b.cmds[0:0]
	b.err = nil
	return b
}

// Script returns the currently built script. When any errors occurred while
// building the script, the script will be returned up the point of the first
// error along with the error.
func (b *ScriptBuilder) Script() (*Script, error) {
	return NewScript(b.cmds...), b.err
}
