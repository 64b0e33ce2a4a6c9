// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"math/big"

	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

// TxContext carries the fields of the spending transaction that the lock
// time opcodes compare against.
type TxContext struct {
	Version  uint32
	LockTime uint32
	Sequence uint32
}

// Engine is the virtual machine that executes scripts.
type Engine struct {
	cmds   []Command
	dstack stack
	astack stack
	z      *big.Int
	txCtx  *TxContext
}

// NewEngine returns a new script engine for script. z is the signature hash
// that OP_CHECKSIG and OP_CHECKMULTISIG verify signatures against. It may be
// nil for scripts that check no signatures.
func NewEngine(script *Script, z *big.Int) *Engine {
	return &Engine{
		cmds: script.Commands(),
		z:    z,
	}
}

// WithTxContext attaches the spending transaction's fields used by
// OP_CHECKLOCKTIMEVERIFY and OP_CHECKSEQUENCEVERIFY and returns vm.
func (vm *Engine) WithTxContext(txCtx TxContext) *Engine {
	vm.txCtx = &txCtx
	return vm
}

// GetStack returns the contents of the primary stack as an array, where the
// last item in the array is the top of the stack.
func (vm *Engine) GetStack() [][]byte {
	return append([][]byte(nil), vm.dstack.stk...)
}

// GetAltStack returns the contents of the alternate stack as an array where
// the last item in the array is the top of the stack.
func (vm *Engine) GetAltStack() [][]byte {
	return append([][]byte(nil), vm.astack.stk...)
}

// Done returns whether every command has been executed.
func (vm *Engine) Done() bool {
	return len(vm.cmds) == 0
}

// Step executes the next command. It returns ErrScriptFailed, naming the
// command, when the command fails.
func (vm *Engine) Step() error {
	if vm.Done() {
		return errors.Wrap(ErrScriptFailed, "attempt to step past the end of the script")
	}

	cmd := vm.cmds[0]
	vm.cmds = vm.cmds[1:]

	if cmd.isData {
		vm.dstack.PushByteArray(cmd.data)
		if vm.isPayToScriptHashRedeem() {
			return vm.expandRedeemScript()
		}
		return nil
	}

	op := &opcodeArray[cmd.opcode]
	log.Tracef("executing %s with stack depth %d", op.name, vm.dstack.Depth())
	if op.opfunc == nil {
		return errors.Wrapf(ErrScriptFailed, "%s: %s", op.name, errDisabledOpcode)
	}
	if err := op.opfunc(op, vm); err != nil {
		return errors.Wrapf(ErrScriptFailed, "%s: %s", op.name, err)
	}
	return nil
}

// Execute runs every command of the script. It returns nil when the script
// completes with a non-empty top stack item, and ErrScriptFailed otherwise.
func (vm *Engine) Execute() error {
	for !vm.Done() {
		if err := vm.Step(); err != nil {
			log.Debugf("script failed: %s", err)
			return err
		}
	}

	if vm.dstack.Depth() == 0 {
		log.Debugf("script failed: empty stack at end of script execution")
		return errors.Wrap(ErrScriptFailed, "stack empty at end of script execution")
	}
	top, _ := vm.dstack.PeekByteArray(0)
	if len(top) == 0 {
		log.Debugf("script failed: false stack entry at end of script execution")
		return errors.Wrap(ErrScriptFailed, "false stack entry at end of script execution")
	}
	return nil
}

// isPayToScriptHashRedeem returns whether the remaining commands are exactly
// OP_HASH160 <20-byte hash> OP_EQUAL, which makes the item just pushed a
// redeem script.
func (vm *Engine) isPayToScriptHashRedeem() bool {
	return len(vm.cmds) == 3 &&
		vm.cmds[0].isOpcode(OpHash160) &&
		vm.cmds[1].isData && len(vm.cmds[1].data) == 20 &&
		vm.cmds[2].isOpcode(OpEqual)
}

// expandRedeemScript consumes the trailing OP_HASH160 <hash> OP_EQUAL,
// checks the pushed redeem script against the hash and replaces the
// remaining commands with the redeem script's commands.
func (vm *Engine) expandRedeemScript() error {
	scriptHash := vm.cmds[1].data
	vm.cmds = nil

	redeemScript, err := vm.dstack.PopByteArray()
	if err != nil {
		return errors.Wrapf(ErrScriptFailed, "OP_HASH160: %s", err)
	}
	if !bytes.Equal(hashes.Hash160(redeemScript), scriptHash) {
		return errors.Wrapf(ErrScriptFailed, "OP_EQUAL: %s", errRedeemScript)
	}

	redeem, err := ParseRaw(redeemScript)
	if err != nil {
		return errors.Wrapf(ErrScriptFailed, "redeem script: %s", err)
	}
	log.Tracef("expanding redeem script %s", redeem)
	vm.cmds = redeem.cmds
	return nil
}

// branch implements OP_IF (onTrue = true) and OP_NOTIF (onTrue = false). It
// splits the commands up to the matching OP_ENDIF into the branch before
// and after OP_ELSE, pops the condition and puts the chosen branch back in
// front of the rest of the script.
func (vm *Engine) branch(onTrue bool) error {
	var trueCmds, falseCmds []Command
	current := &trueCmds
	depth := 1
	found := false

	i := 0
	for ; i < len(vm.cmds); i++ {
		cmd := vm.cmds[i]
		switch {
		case cmd.isOpcode(OpIf) || cmd.isOpcode(OpNotIf):
			depth++
			*current = append(*current, cmd)
		case depth == 1 && cmd.isOpcode(OpElse):
			current = &falseCmds
		case cmd.isOpcode(OpEndIf):
			if depth == 1 {
				found = true
			} else {
				depth--
				*current = append(*current, cmd)
			}
		default:
			*current = append(*current, cmd)
		}
		if found {
			break
		}
	}
	if !found {
		return errUnbalancedIf
	}

	condition, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}

	chosen := falseCmds
	if condition == onTrue {
		chosen = trueCmds
	}

	rest := vm.cmds[i+1:]
	cmds := make([]Command, 0, len(chosen)+len(rest))
	cmds = append(cmds, chosen...)
	cmds = append(cmds, rest...)
	vm.cmds = cmds
	return nil
}

// Evaluate executes the script against the signature hash z and reports
// whether it succeeds. Scripts using the lock time opcodes need
// EvaluateWithTxContext.
func (s *Script) Evaluate(z *big.Int) bool {
	return NewEngine(s, z).Execute() == nil
}

// EvaluateWithTxContext is like Evaluate for scripts that read the spending
// transaction's lock time, version and input sequence.
func (s *Script) EvaluateWithTxContext(z *big.Int, txCtx TxContext) bool {
	return NewEngine(s, z).WithTxContext(txCtx).Execute() == nil
}
