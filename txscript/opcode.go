// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha1"
	"fmt"

	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

// An opcode defines the information related to a txscript opcode. opfunc, if
// present, is the function to call to perform the opcode on the engine's
// current state.
type opcode struct {
	value  byte
	name   string
	opfunc func(*opcode, *Engine) error
}

// These constants are the values of the official opcodes used on the btc wiki,
// in bitcoin core and in most if not all other references and software related
// to handling BTC scripts.
const (
	Op0                   = 0x00 // 0
	OpFalse               = 0x00 // 0 - AKA Op0
	OpData1               = 0x01 // 1
	OpData20              = 0x14 // 20
	OpData33              = 0x21 // 33
	OpData65              = 0x41 // 65
	OpData75              = 0x4b // 75
	OpPushData1           = 0x4c // 76
	OpPushData2           = 0x4d // 77
	OpPushData4           = 0x4e // 78
	Op1Negate             = 0x4f // 79
	OpReserved            = 0x50 // 80
	Op1                   = 0x51 // 81 - AKA OpTrue
	OpTrue                = 0x51 // 81
	Op2                   = 0x52 // 82
	Op3                   = 0x53 // 83
	Op4                   = 0x54 // 84
	Op5                   = 0x55 // 85
	Op6                   = 0x56 // 86
	Op7                   = 0x57 // 87
	Op8                   = 0x58 // 88
	Op9                   = 0x59 // 89
	Op10                  = 0x5a // 90
	Op11                  = 0x5b // 91
	Op12                  = 0x5c // 92
	Op13                  = 0x5d // 93
	Op14                  = 0x5e // 94
	Op15                  = 0x5f // 95
	Op16                  = 0x60 // 96
	OpNop                 = 0x61 // 97
	OpVer                 = 0x62 // 98
	OpIf                  = 0x63 // 99
	OpNotIf               = 0x64 // 100
	OpVerIf               = 0x65 // 101
	OpVerNotIf            = 0x66 // 102
	OpElse                = 0x67 // 103
	OpEndIf               = 0x68 // 104
	OpVerify              = 0x69 // 105
	OpReturn              = 0x6a // 106
	OpToAltStack          = 0x6b // 107
	OpFromAltStack        = 0x6c // 108
	Op2Drop               = 0x6d // 109
	Op2Dup                = 0x6e // 110
	Op3Dup                = 0x6f // 111
	Op2Over               = 0x70 // 112
	Op2Rot                = 0x71 // 113
	Op2Swap               = 0x72 // 114
	OpIfDup               = 0x73 // 115
	OpDepth               = 0x74 // 116
	OpDrop                = 0x75 // 117
	OpDup                 = 0x76 // 118
	OpNip                 = 0x77 // 119
	OpOver                = 0x78 // 120
	OpPick                = 0x79 // 121
	OpRoll                = 0x7a // 122
	OpRot                 = 0x7b // 123
	OpSwap                = 0x7c // 124
	OpTuck                = 0x7d // 125
	OpCat                 = 0x7e // 126
	OpSubStr              = 0x7f // 127
	OpLeft                = 0x80 // 128
	OpRight               = 0x81 // 129
	OpSize                = 0x82 // 130
	OpInvert              = 0x83 // 131
	OpAnd                 = 0x84 // 132
	OpOr                  = 0x85 // 133
	OpXor                 = 0x86 // 134
	OpEqual               = 0x87 // 135
	OpEqualVerify         = 0x88 // 136
	OpReserved1           = 0x89 // 137
	OpReserved2           = 0x8a // 138
	Op1Add                = 0x8b // 139
	Op1Sub                = 0x8c // 140
	Op2Mul                = 0x8d // 141
	Op2Div                = 0x8e // 142
	OpNegate              = 0x8f // 143
	OpAbs                 = 0x90 // 144
	OpNot                 = 0x91 // 145
	Op0NotEqual           = 0x92 // 146
	OpAdd                 = 0x93 // 147
	OpSub                 = 0x94 // 148
	OpMul                 = 0x95 // 149
	OpDiv                 = 0x96 // 150
	OpMod                 = 0x97 // 151
	OpLShift              = 0x98 // 152
	OpRShift              = 0x99 // 153
	OpBoolAnd             = 0x9a // 154
	OpBoolOr              = 0x9b // 155
	OpNumEqual            = 0x9c // 156
	OpNumEqualVerify      = 0x9d // 157
	OpNumNotEqual         = 0x9e // 158
	OpLessThan            = 0x9f // 159
	OpGreaterThan         = 0xa0 // 160
	OpLessThanOrEqual     = 0xa1 // 161
	OpGreaterThanOrEqual  = 0xa2 // 162
	OpMin                 = 0xa3 // 163
	OpMax                 = 0xa4 // 164
	OpWithin              = 0xa5 // 165
	OpRipeMD160           = 0xa6 // 166
	OpSHA1                = 0xa7 // 167
	OpSHA256              = 0xa8 // 168
	OpHash160             = 0xa9 // 169
	OpHash256             = 0xaa // 170
	OpCodeSeparator       = 0xab // 171
	OpCheckSig            = 0xac // 172
	OpCheckSigVerify      = 0xad // 173
	OpCheckMultiSig       = 0xae // 174
	OpCheckMultiSigVerify = 0xaf // 175
	OpNop1                = 0xb0 // 176
	OpCheckLockTimeVerify = 0xb1 // 177 - AKA OpNop2
	OpCheckSequenceVerify = 0xb2 // 178 - AKA OpNop3
	OpNop4                = 0xb3 // 179
	OpNop5                = 0xb4 // 180
	OpNop6                = 0xb5 // 181
	OpNop7                = 0xb6 // 182
	OpNop8                = 0xb7 // 183
	OpNop9                = 0xb8 // 184
	OpNop10               = 0xb9 // 185
)

const (
	// LockTimeThreshold is the number below which a lock time is
	// interpreted to be a block height. Above it, it is a UNIX timestamp.
	LockTimeThreshold = 500000000

	// SequenceLockTimeDisabled is the flag that, when set on an input's
	// sequence number, disables its relative lock time.
	SequenceLockTimeDisabled = 1 << 31

	// SequenceLockTimeIsSeconds is the flag that, when set on an input's
	// sequence number, makes its relative lock time a time span rather
	// than a block count.
	SequenceLockTimeIsSeconds = 1 << 22

	// SequenceLockTimeMask extracts the relative lock time from a
	// sequence number.
	SequenceLockTimeMask = 0x0000ffff

	// MaxTxInSequenceNum is the sequence number of a finalized input.
	MaxTxInSequenceNum = 0xffffffff

	// MaxPubKeysPerMultiSig is the largest number of public keys allowed
	// in a multisig script.
	MaxPubKeysPerMultiSig = 20
)

// opcodeArray holds details about all possible opcodes such as how many bytes
// the opcode and any associated data should take, its human-readable name, and
// the handler function. Opcodes without a handler fail when executed. The
// data push and unnamed entries are filled in by init.
var opcodeArray = [256]opcode{
	Op0:         {Op0, "OP_0", opcodeFalse},
	OpPushData1: {OpPushData1, "OP_PUSHDATA1", nil},
	OpPushData2: {OpPushData2, "OP_PUSHDATA2", nil},
	OpPushData4: {OpPushData4, "OP_PUSHDATA4", nil},
	Op1Negate:   {Op1Negate, "OP_1NEGATE", opcode1Negate},
	OpReserved:  {OpReserved, "OP_RESERVED", nil},
	Op1:         {Op1, "OP_1", opcodeN},
	Op2:         {Op2, "OP_2", opcodeN},
	Op3:         {Op3, "OP_3", opcodeN},
	Op4:         {Op4, "OP_4", opcodeN},
	Op5:         {Op5, "OP_5", opcodeN},
	Op6:         {Op6, "OP_6", opcodeN},
	Op7:         {Op7, "OP_7", opcodeN},
	Op8:         {Op8, "OP_8", opcodeN},
	Op9:         {Op9, "OP_9", opcodeN},
	Op10:        {Op10, "OP_10", opcodeN},
	Op11:        {Op11, "OP_11", opcodeN},
	Op12:        {Op12, "OP_12", opcodeN},
	Op13:        {Op13, "OP_13", opcodeN},
	Op14:        {Op14, "OP_14", opcodeN},
	Op15:        {Op15, "OP_15", opcodeN},
	Op16:        {Op16, "OP_16", opcodeN},

	// Control opcodes.
	OpNop:                 {OpNop, "OP_NOP", opcodeNop},
	OpVer:                 {OpVer, "OP_VER", nil},
	OpIf:                  {OpIf, "OP_IF", opcodeIf},
	OpNotIf:               {OpNotIf, "OP_NOTIF", opcodeNotIf},
	OpVerIf:               {OpVerIf, "OP_VERIF", nil},
	OpVerNotIf:            {OpVerNotIf, "OP_VERNOTIF", nil},
	OpElse:                {OpElse, "OP_ELSE", opcodeUnbalancedConditional},
	OpEndIf:               {OpEndIf, "OP_ENDIF", opcodeUnbalancedConditional},
	OpVerify:              {OpVerify, "OP_VERIFY", opcodeVerify},
	OpReturn:              {OpReturn, "OP_RETURN", opcodeReturn},
	OpCheckLockTimeVerify: {OpCheckLockTimeVerify, "OP_CHECKLOCKTIMEVERIFY", opcodeCheckLockTimeVerify},
	OpCheckSequenceVerify: {OpCheckSequenceVerify, "OP_CHECKSEQUENCEVERIFY", opcodeCheckSequenceVerify},

	// Stack opcodes.
	OpToAltStack:   {OpToAltStack, "OP_TOALTSTACK", opcodeToAltStack},
	OpFromAltStack: {OpFromAltStack, "OP_FROMALTSTACK", opcodeFromAltStack},
	Op2Drop:        {Op2Drop, "OP_2DROP", opcode2Drop},
	Op2Dup:         {Op2Dup, "OP_2DUP", opcode2Dup},
	Op3Dup:         {Op3Dup, "OP_3DUP", opcode3Dup},
	Op2Over:        {Op2Over, "OP_2OVER", opcode2Over},
	Op2Rot:         {Op2Rot, "OP_2ROT", opcode2Rot},
	Op2Swap:        {Op2Swap, "OP_2SWAP", opcode2Swap},
	OpIfDup:        {OpIfDup, "OP_IFDUP", opcodeIfDup},
	OpDepth:        {OpDepth, "OP_DEPTH", opcodeDepth},
	OpDrop:         {OpDrop, "OP_DROP", opcodeDrop},
	OpDup:          {OpDup, "OP_DUP", opcodeDup},
	OpNip:          {OpNip, "OP_NIP", opcodeNip},
	OpOver:         {OpOver, "OP_OVER", opcodeOver},
	OpPick:         {OpPick, "OP_PICK", opcodePick},
	OpRoll:         {OpRoll, "OP_ROLL", opcodeRoll},
	OpRot:          {OpRot, "OP_ROT", opcodeRot},
	OpSwap:         {OpSwap, "OP_SWAP", opcodeSwap},
	OpTuck:         {OpTuck, "OP_TUCK", opcodeTuck},

	// Splice opcodes.
	OpCat:    {OpCat, "OP_CAT", nil},
	OpSubStr: {OpSubStr, "OP_SUBSTR", nil},
	OpLeft:   {OpLeft, "OP_LEFT", nil},
	OpRight:  {OpRight, "OP_RIGHT", nil},
	OpSize:   {OpSize, "OP_SIZE", opcodeSize},

	// Bitwise logic opcodes.
	OpInvert:      {OpInvert, "OP_INVERT", nil},
	OpAnd:         {OpAnd, "OP_AND", nil},
	OpOr:          {OpOr, "OP_OR", nil},
	OpXor:         {OpXor, "OP_XOR", nil},
	OpEqual:       {OpEqual, "OP_EQUAL", opcodeEqual},
	OpEqualVerify: {OpEqualVerify, "OP_EQUALVERIFY", opcodeEqualVerify},
	OpReserved1:   {OpReserved1, "OP_RESERVED1", nil},
	OpReserved2:   {OpReserved2, "OP_RESERVED2", nil},

	// Numeric related opcodes.
	Op1Add:               {Op1Add, "OP_1ADD", opcode1Add},
	Op1Sub:               {Op1Sub, "OP_1SUB", opcode1Sub},
	Op2Mul:               {Op2Mul, "OP_2MUL", nil},
	Op2Div:               {Op2Div, "OP_2DIV", nil},
	OpNegate:             {OpNegate, "OP_NEGATE", opcodeNegate},
	OpAbs:                {OpAbs, "OP_ABS", opcodeAbs},
	OpNot:                {OpNot, "OP_NOT", opcodeNot},
	Op0NotEqual:          {Op0NotEqual, "OP_0NOTEQUAL", opcode0NotEqual},
	OpAdd:                {OpAdd, "OP_ADD", opcodeAdd},
	OpSub:                {OpSub, "OP_SUB", opcodeSub},
	OpMul:                {OpMul, "OP_MUL", opcodeMul},
	OpDiv:                {OpDiv, "OP_DIV", nil},
	OpMod:                {OpMod, "OP_MOD", nil},
	OpLShift:             {OpLShift, "OP_LSHIFT", nil},
	OpRShift:             {OpRShift, "OP_RSHIFT", nil},
	OpBoolAnd:            {OpBoolAnd, "OP_BOOLAND", opcodeBoolAnd},
	OpBoolOr:             {OpBoolOr, "OP_BOOLOR", opcodeBoolOr},
	OpNumEqual:           {OpNumEqual, "OP_NUMEQUAL", opcodeNumEqual},
	OpNumEqualVerify:     {OpNumEqualVerify, "OP_NUMEQUALVERIFY", opcodeNumEqualVerify},
	OpNumNotEqual:        {OpNumNotEqual, "OP_NUMNOTEQUAL", opcodeNumNotEqual},
	OpLessThan:           {OpLessThan, "OP_LESSTHAN", opcodeLessThan},
	OpGreaterThan:        {OpGreaterThan, "OP_GREATERTHAN", opcodeGreaterThan},
	OpLessThanOrEqual:    {OpLessThanOrEqual, "OP_LESSTHANOREQUAL", opcodeLessThanOrEqual},
	OpGreaterThanOrEqual: {OpGreaterThanOrEqual, "OP_GREATERTHANOREQUAL", opcodeGreaterThanOrEqual},
	OpMin:                {OpMin, "OP_MIN", opcodeMin},
	OpMax:                {OpMax, "OP_MAX", opcodeMax},
	OpWithin:             {OpWithin, "OP_WITHIN", opcodeWithin},

	// Crypto opcodes.
	OpRipeMD160:           {OpRipeMD160, "OP_RIPEMD160", opcodeRipeMD160},
	OpSHA1:                {OpSHA1, "OP_SHA1", opcodeSHA1},
	OpSHA256:              {OpSHA256, "OP_SHA256", opcodeSHA256},
	OpHash160:             {OpHash160, "OP_HASH160", opcodeHash160},
	OpHash256:             {OpHash256, "OP_HASH256", opcodeHash256},
	OpCodeSeparator:       {OpCodeSeparator, "OP_CODESEPARATOR", opcodeNop},
	OpCheckSig:            {OpCheckSig, "OP_CHECKSIG", opcodeCheckSig},
	OpCheckSigVerify:      {OpCheckSigVerify, "OP_CHECKSIGVERIFY", opcodeCheckSigVerify},
	OpCheckMultiSig:       {OpCheckMultiSig, "OP_CHECKMULTISIG", opcodeCheckMultiSig},
	OpCheckMultiSigVerify: {OpCheckMultiSigVerify, "OP_CHECKMULTISIGVERIFY", opcodeCheckMultiSigVerify},

	// Reserved opcodes.
	OpNop1:  {OpNop1, "OP_NOP1", opcodeNop},
	OpNop4:  {OpNop4, "OP_NOP4", opcodeNop},
	OpNop5:  {OpNop5, "OP_NOP5", opcodeNop},
	OpNop6:  {OpNop6, "OP_NOP6", opcodeNop},
	OpNop7:  {OpNop7, "OP_NOP7", opcodeNop},
	OpNop8:  {OpNop8, "OP_NOP8", opcodeNop},
	OpNop9:  {OpNop9, "OP_NOP9", opcodeNop},
	OpNop10: {OpNop10, "OP_NOP10", opcodeNop},
}

// OpcodeByName is a map that can be used to lookup an opcode by its
// human-readable name (OP_CHECKMULTISIG, OP_CHECKSIG, etc).
var OpcodeByName = make(map[string]byte)

func init() {
	for i := OpData1; i <= OpData75; i++ {
		opcodeArray[i] = opcode{value: byte(i), name: fmt.Sprintf("OP_DATA_%d", i)}
	}
	for i := OpNop10 + 1; i <= 0xff; i++ {
		opcodeArray[i] = opcode{value: byte(i), name: fmt.Sprintf("OP_UNKNOWN%d", i)}
	}

	for _, op := range opcodeArray {
		OpcodeByName[op.name] = op.value
	}
	OpcodeByName["OP_FALSE"] = OpFalse
	OpcodeByName["OP_TRUE"] = OpTrue
	OpcodeByName["OP_NOP2"] = OpCheckLockTimeVerify
	OpcodeByName["OP_NOP3"] = OpCheckSequenceVerify
}

// OpcodeName returns the human-readable name of op.
func OpcodeName(op byte) string {
	return opcodeArray[op].name
}

// *******************************************
// Opcode implementation functions start here.
// *******************************************

// opcodeFalse pushes an empty array to the data stack to represent false.
func opcodeFalse(op *opcode, vm *Engine) error {
	vm.dstack.PushByteArray(nil)
	return nil
}

// opcode1Negate pushes -1, encoded as a number, to the data stack.
func opcode1Negate(op *opcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(-1))
	return nil
}

// opcodeN is a common handler for the small integer opcodes. It pushes the
// numeric value the opcode represents (which will be from 1 to 16) onto the
// data stack.
func opcodeN(op *opcode, vm *Engine) error {
	// The opcodes are all defined consecutively, so the numeric value is
	// the difference.
	vm.dstack.PushInt(scriptNum(op.value - (Op1 - 1)))
	return nil
}

// opcodeNop is a common handler for the NOP family of opcodes. As the name
// implies it generally does nothing.
func opcodeNop(op *opcode, vm *Engine) error {
	return nil
}

// opcodeIf treats the top item on the data stack as a boolean and removes
// it. The commands up to the matching OP_ELSE or OP_ENDIF are kept when it
// is true and the commands between OP_ELSE and OP_ENDIF otherwise. Nested
// conditionals are skipped or kept as a whole.
//
// Stack transformation: [... bool] -> [...]
func opcodeIf(op *opcode, vm *Engine) error {
	return vm.branch(true)
}

// opcodeNotIf is the inverse of opcodeIf.
//
// Stack transformation: [... bool] -> [...]
func opcodeNotIf(op *opcode, vm *Engine) error {
	return vm.branch(false)
}

// opcodeUnbalancedConditional handles OP_ELSE and OP_ENDIF outside of a
// conditional. Inside one they are consumed by opcodeIf.
func opcodeUnbalancedConditional(op *opcode, vm *Engine) error {
	return errors.Wrapf(errUnbalancedIf, "encountered %s with no matching OP_IF", op.name)
}

// abstractVerify examines the top item on the data stack as a boolean value
// and verifies it evaluates to true. An error is returned either when there
// is no item on the stack or when that item evaluates to false.
func abstractVerify(op *opcode, vm *Engine) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !verified {
		return errors.Wrapf(errVerifyFailed, "%s failed", op.name)
	}
	return nil
}

// opcodeVerify examines the top item on the data stack as a boolean value and
// verifies it evaluates to true.
func opcodeVerify(op *opcode, vm *Engine) error {
	return abstractVerify(op, vm)
}

// opcodeReturn returns an appropriate error since it is always an error to
// return early from a script.
func opcodeReturn(op *opcode, vm *Engine) error {
	return errEarlyReturn
}

// opcodeCheckLockTimeVerify compares the top item on the data stack to the
// lock time of the spending transaction. It fails when the input is
// finalized, when the item is negative, when the item and the lock time are
// of different kinds (block height or timestamp), or when the lock time has
// not reached the item. The item is left on the stack.
func opcodeCheckLockTimeVerify(op *opcode, vm *Engine) error {
	if vm.txCtx == nil {
		return errNoTxContext
	}
	if vm.txCtx.Sequence == MaxTxInSequenceNum {
		return errors.Wrap(errUnsatisfiedLock, "transaction input is finalized")
	}

	lockTime, err := vm.dstack.PeekInt(0)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return errors.Wrapf(errNegativeLockTime, "negative lock time: %d", lockTime)
	}

	txLockTime := int64(vm.txCtx.LockTime)
	if (int64(lockTime) < LockTimeThreshold) != (txLockTime < LockTimeThreshold) {
		return errors.Wrapf(errUnsatisfiedLock, "mismatched locktime types -- tx locktime "+
			"%d, stack locktime %d", txLockTime, lockTime)
	}
	if int64(lockTime) > txLockTime {
		return errors.Wrapf(errUnsatisfiedLock, "locktime requirement not satisfied -- "+
			"locktime is greater than the transaction locktime: %d > %d", lockTime, txLockTime)
	}
	return nil
}

// opcodeCheckSequenceVerify compares the top item on the data stack to the
// sequence number of the input being spent. Items with the disable flag set
// behave as OP_NOP. The item is left on the stack.
func opcodeCheckSequenceVerify(op *opcode, vm *Engine) error {
	if vm.txCtx == nil {
		return errNoTxContext
	}

	stackSequence, err := vm.dstack.PeekInt(0)
	if err != nil {
		return err
	}
	if stackSequence < 0 {
		return errors.Wrapf(errNegativeLockTime, "negative sequence: %d", stackSequence)
	}

	sequence := int64(stackSequence)
	if sequence&SequenceLockTimeDisabled != 0 {
		return nil
	}

	if vm.txCtx.Version < 2 {
		return errors.Wrapf(errUnsatisfiedLock, "invalid transaction version: %d",
			vm.txCtx.Version)
	}

	txSequence := int64(vm.txCtx.Sequence)
	if txSequence&SequenceLockTimeDisabled != 0 {
		return errors.Wrapf(errUnsatisfiedLock, "transaction sequence has sequence "+
			"locktime disabled bit set: 0x%x", txSequence)
	}

	if sequence&SequenceLockTimeIsSeconds != txSequence&SequenceLockTimeIsSeconds {
		return errors.Wrapf(errUnsatisfiedLock, "mismatched sequence types -- tx sequence "+
			"0x%x, stack sequence 0x%x", txSequence, sequence)
	}
	if sequence&SequenceLockTimeMask > txSequence&SequenceLockTimeMask {
		return errors.Wrapf(errUnsatisfiedLock, "relative locktime requirement not "+
			"satisfied: %d > %d", sequence&SequenceLockTimeMask,
			txSequence&SequenceLockTimeMask)
	}
	return nil
}

// opcodeToAltStack removes the top item from the main data stack and pushes it
// onto the alternate data stack.
//
// Main data stack transformation: [... x1 x2 x3] -> [... x1 x2]
// Alt data stack transformation:  [... y1 y2 y3] -> [... y1 y2 y3 x3]
func opcodeToAltStack(op *opcode, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.astack.PushByteArray(so)
	return nil
}

// opcodeFromAltStack removes the top item from the alternate data stack and
// pushes it onto the main data stack.
//
// Main data stack transformation: [... x1 x2 x3] -> [... x1 x2 x3 y3]
// Alt data stack transformation:  [... y1 y2 y3] -> [... y1 y2]
func opcodeFromAltStack(op *opcode, vm *Engine) error {
	so, err := vm.astack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(so)
	return nil
}

// opcode2Drop removes the top 2 items from the data stack.
func opcode2Drop(op *opcode, vm *Engine) error {
	return vm.dstack.DropN(2)
}

// opcode2Dup duplicates the top 2 items on the data stack.
func opcode2Dup(op *opcode, vm *Engine) error {
	return vm.dstack.DupN(2)
}

// opcode3Dup duplicates the top 3 items on the data stack.
func opcode3Dup(op *opcode, vm *Engine) error {
	return vm.dstack.DupN(3)
}

// opcode2Over duplicates the 2 items before the top 2 items on the data stack.
func opcode2Over(op *opcode, vm *Engine) error {
	return vm.dstack.OverN(2)
}

// opcode2Rot rotates the top 6 items on the data stack to the left twice.
func opcode2Rot(op *opcode, vm *Engine) error {
	return vm.dstack.RotN(2)
}

// opcode2Swap swaps the top 2 items on the data stack with the 2 that come
// before them.
func opcode2Swap(op *opcode, vm *Engine) error {
	return vm.dstack.SwapN(2)
}

// opcodeIfDup duplicates the top item of the stack if it is not zero.
func opcodeIfDup(op *opcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(so) {
		vm.dstack.PushByteArray(so)
	}
	return nil
}

// opcodeDepth pushes the depth of the data stack prior to executing this
// opcode, encoded as a number, onto the data stack.
func opcodeDepth(op *opcode, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	return nil
}

// opcodeDrop removes the top item from the data stack.
func opcodeDrop(op *opcode, vm *Engine) error {
	return vm.dstack.DropN(1)
}

// opcodeDup duplicates the top item on the data stack.
func opcodeDup(op *opcode, vm *Engine) error {
	return vm.dstack.DupN(1)
}

// opcodeNip removes the item before the top item on the data stack.
func opcodeNip(op *opcode, vm *Engine) error {
	return vm.dstack.NipN(1)
}

// opcodeOver duplicates the item before the top item on the data stack.
func opcodeOver(op *opcode, vm *Engine) error {
	return vm.dstack.OverN(1)
}

// opcodePick treats the top item on the data stack as an integer and
// duplicates the item on the stack that number of items back to the top.
func opcodePick(op *opcode, vm *Engine) error {
	val, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PickN(int(val.Int32()))
}

// opcodeRoll treats the top item on the data stack as an integer and moves
// the item on the stack that number of items back to the top.
func opcodeRoll(op *opcode, vm *Engine) error {
	val, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.RollN(int(val.Int32()))
}

// opcodeRot rotates the top 3 items on the data stack to the left.
func opcodeRot(op *opcode, vm *Engine) error {
	return vm.dstack.RotN(1)
}

// opcodeSwap swaps the top two items on the stack.
func opcodeSwap(op *opcode, vm *Engine) error {
	return vm.dstack.SwapN(1)
}

// opcodeTuck inserts a duplicate of the top item of the data stack before the
// second-to-top item.
func opcodeTuck(op *opcode, vm *Engine) error {
	return vm.dstack.Tuck()
}

// opcodeSize pushes the size of the top item of the data stack onto the data
// stack.
func opcodeSize(op *opcode, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(len(so)))
	return nil
}

// opcodeEqual removes the top 2 items of the data stack, compares them as raw
// bytes, and pushes the result, encoded as a boolean, back to the stack.
func opcodeEqual(op *opcode, vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(bytes.Equal(a, b))
	return nil
}

// opcodeEqualVerify is a combination of opcodeEqual and opcodeVerify.
func opcodeEqualVerify(op *opcode, vm *Engine) error {
	if err := opcodeEqual(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm)
}

// unaryNumeric replaces the top item of the data stack, read as a number,
// with f applied to it.
func unaryNumeric(vm *Engine, f func(scriptNum) scriptNum) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(f(m))
	return nil
}

// binaryNumeric replaces the top two items of the data stack with f applied
// to them. v0 is the top item and v1 the one below it.
func binaryNumeric(vm *Engine, f func(v0, v1 scriptNum) scriptNum) error {
	v0, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	v1, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(f(v0, v1))
	return nil
}

func boolNum(v bool) scriptNum {
	if v {
		return 1
	}
	return 0
}

// opcode1Add treats the top item on the data stack as an integer and replaces
// it with its incremented value (plus 1).
func opcode1Add(op *opcode, vm *Engine) error {
	return unaryNumeric(vm, func(m scriptNum) scriptNum { return m + 1 })
}

// opcode1Sub treats the top item on the data stack as an integer and replaces
// it with its decremented value (minus 1).
func opcode1Sub(op *opcode, vm *Engine) error {
	return unaryNumeric(vm, func(m scriptNum) scriptNum { return m - 1 })
}

// opcodeNegate treats the top item on the data stack as an integer and replaces
// it with its negation.
func opcodeNegate(op *opcode, vm *Engine) error {
	return unaryNumeric(vm, func(m scriptNum) scriptNum { return -m })
}

// opcodeAbs treats the top item on the data stack as an integer and replaces it
// it with its absolute value.
func opcodeAbs(op *opcode, vm *Engine) error {
	return unaryNumeric(vm, func(m scriptNum) scriptNum {
		if m < 0 {
			return -m
		}
		return m
	})
}

// opcodeNot treats the top item on the data stack as an integer and replaces
// it with 1 when it is zero and 0 otherwise.
func opcodeNot(op *opcode, vm *Engine) error {
	return unaryNumeric(vm, func(m scriptNum) scriptNum { return boolNum(m == 0) })
}

// opcode0NotEqual treats the top item on the data stack as an integer and
// replaces it with 0 when it is zero and 1 otherwise.
func opcode0NotEqual(op *opcode, vm *Engine) error {
	return unaryNumeric(vm, func(m scriptNum) scriptNum { return boolNum(m != 0) })
}

// opcodeAdd treats the top two items on the data stack as integers and replaces
// them with their sum.
func opcodeAdd(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return v1 + v0 })
}

// opcodeSub treats the top two items on the data stack as integers and replaces
// them with the result of subtracting the top entry from the second-to-top
// entry.
func opcodeSub(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return v1 - v0 })
}

// opcodeMul treats the top two items on the data stack as integers and
// replaces them with their product.
func opcodeMul(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return v1 * v0 })
}

// opcodeBoolAnd replaces the top two items with 1 when both are non-zero
// and 0 otherwise.
func opcodeBoolAnd(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v0 != 0 && v1 != 0) })
}

// opcodeBoolOr replaces the top two items with 1 when either is non-zero
// and 0 otherwise.
func opcodeBoolOr(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v0 != 0 || v1 != 0) })
}

// opcodeNumEqual replaces the top two items with 1 when they are numerically
// equal and 0 otherwise.
func opcodeNumEqual(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v0 == v1) })
}

// opcodeNumEqualVerify is a combination of opcodeNumEqual and opcodeVerify.
func opcodeNumEqualVerify(op *opcode, vm *Engine) error {
	if err := opcodeNumEqual(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm)
}

// opcodeNumNotEqual replaces the top two items with 1 when they are not
// numerically equal and 0 otherwise.
func opcodeNumNotEqual(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v0 != v1) })
}

// opcodeLessThan replaces the top two items with 1 when the second-to-top
// item is less than the top item and 0 otherwise.
func opcodeLessThan(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v1 < v0) })
}

// opcodeGreaterThan replaces the top two items with 1 when the second-to-top
// item is greater than the top item and 0 otherwise.
func opcodeGreaterThan(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v1 > v0) })
}

// opcodeLessThanOrEqual replaces the top two items with 1 when the
// second-to-top item is less than or equal to the top item and 0 otherwise.
func opcodeLessThanOrEqual(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v1 <= v0) })
}

// opcodeGreaterThanOrEqual replaces the top two items with 1 when the
// second-to-top item is greater than or equal to the top item and 0
// otherwise.
func opcodeGreaterThanOrEqual(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum { return boolNum(v1 >= v0) })
}

// opcodeMin replaces the top two items with the smaller of the two.
func opcodeMin(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum {
		if v1 < v0 {
			return v1
		}
		return v0
	})
}

// opcodeMax replaces the top two items with the larger of the two.
func opcodeMax(op *opcode, vm *Engine) error {
	return binaryNumeric(vm, func(v0, v1 scriptNum) scriptNum {
		if v1 > v0 {
			return v1
		}
		return v0
	})
}

// opcodeWithin treats the top 3 items on the data stack as integers. When the
// value to test is within the specified range (left inclusive), they are
// replaced with a 1, otherwise a 0.
//
// The top item is the max value, the second-top-item is the minimum value, and
// the third-to-top item is the value to test.
//
// Stack transformation: [... x1 min max] -> [... bool]
func opcodeWithin(op *opcode, vm *Engine) error {
	maxVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	minVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	x, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}

// hashTop replaces the top item of the data stack with its hash.
func hashTop(vm *Engine, hash func([]byte) []byte) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(hash(buf))
	return nil
}

// opcodeRipeMD160 treats the top item of the data stack as raw bytes and
// replaces it with ripemd160(data).
func opcodeRipeMD160(op *opcode, vm *Engine) error {
	return hashTop(vm, hashes.Ripemd160)
}

// opcodeSHA1 treats the top item of the data stack as raw bytes and replaces
// it with sha1(data).
func opcodeSHA1(op *opcode, vm *Engine) error {
	return hashTop(vm, func(b []byte) []byte {
		hash := sha1.Sum(b)
		return hash[:]
	})
}

// opcodeSHA256 treats the top item of the data stack as raw bytes and replaces
// it with sha256(data).
func opcodeSHA256(op *opcode, vm *Engine) error {
	return hashTop(vm, hashes.Sha256)
}

// opcodeHash160 treats the top item of the data stack as raw bytes and replaces
// it with ripemd160(sha256(data)).
func opcodeHash160(op *opcode, vm *Engine) error {
	return hashTop(vm, hashes.Hash160)
}

// opcodeHash256 treats the top item of the data stack as raw bytes and replaces
// it with sha256(sha256(data)).
func opcodeHash256(op *opcode, vm *Engine) error {
	return hashTop(vm, hashes.Hash256)
}

// opcodeCheckSig treats the top 2 items on the stack as a public key and a
// signature and replaces them with a bool which indicates if the signature
// was successfully verified against the signature hash of the engine.
//
// The signature is a DER encoding followed by a single hash type byte. The
// public key is in SEC format. A signature or public key that fails to parse
// is an error, while a well-formed signature that does not verify pushes
// false.
//
// Stack transformation: [... signature pubkey] -> [... bool]
func opcodeCheckSig(op *opcode, vm *Engine) error {
	pkBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	fullSigBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	// An empty signature is a valid way to push false.
	if len(fullSigBytes) < 1 {
		vm.dstack.PushBool(false)
		return nil
	}

	pubKey, sig, err := parseSigAndPubKey(fullSigBytes, pkBytes)
	if err != nil {
		return err
	}
	if vm.z == nil {
		return errMissingSigHash
	}

	valid := pubKey.Verify(vm.z, sig)
	vm.dstack.PushBool(valid)
	return nil
}

// parseSigAndPubKey strips the hash type from fullSigBytes and parses the
// remaining DER signature along with the SEC public key.
func parseSigAndPubKey(fullSigBytes, pkBytes []byte) (*btcec.PublicKey, *btcec.Signature, error) {
	pubKey, err := btcec.ParsePubKey(pkBytes)
	if err != nil {
		return nil, nil, err
	}
	sig, err := btcec.ParseDERSignature(fullSigBytes[:len(fullSigBytes)-1])
	if err != nil {
		return nil, nil, err
	}
	return pubKey, sig, nil
}

// opcodeCheckSigVerify is a combination of opcodeCheckSig and opcodeVerify.
func opcodeCheckSigVerify(op *opcode, vm *Engine) error {
	if err := opcodeCheckSig(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm)
}

// opcodeCheckMultiSig treats the top item on the stack as an integer number of
// public keys, followed by that many entries as raw data representing the public
// keys, followed by the integer number of signatures, followed by that many
// entries as raw data representing the signatures.
//
// Due to a bug in the original Satoshi client implementation, an additional
// dummy argument is also required by the consensus rules, although it is not
// used. The dummy value is popped but its content is ignored.
//
// Each signature must match one of the public keys, in the same order the
// public keys were given. All public keys and signatures must parse.
//
// Stack transformation:
// [... dummy [sig ...] numsigs [pubkey ...] numpubkeys] -> [... bool]
func opcodeCheckMultiSig(op *opcode, vm *Engine) error {
	numKeys, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numPubKeys := int(numKeys.Int32())
	if numPubKeys < 0 || numPubKeys > MaxPubKeysPerMultiSig {
		return errors.Wrapf(errInvalidPubKeys, "number of pubkeys %d is out of range "+
			"0 to %d", numPubKeys, MaxPubKeysPerMultiSig)
	}

	// The keys are popped top first, so reverse them into script order.
	pubKeys := make([][]byte, numPubKeys)
	for i := numPubKeys - 1; i >= 0; i-- {
		pubKeys[i], err = vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	numSigs, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numSignatures := int(numSigs.Int32())
	if numSignatures < 0 || numSignatures > numPubKeys {
		return errors.Wrapf(errInvalidSigs, "number of signatures %d is out of range "+
			"0 to %d", numSignatures, numPubKeys)
	}

	signatures := make([][]byte, numSignatures)
	for i := numSignatures - 1; i >= 0; i-- {
		signatures[i], err = vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	// The dummy element.
	if _, err := vm.dstack.PopByteArray(); err != nil {
		return err
	}

	if numSignatures > 0 && vm.z == nil {
		return errMissingSigHash
	}

	parsedKeys := make([]*btcec.PublicKey, numPubKeys)
	for i, pkBytes := range pubKeys {
		parsedKeys[i], err = btcec.ParsePubKey(pkBytes)
		if err != nil {
			return err
		}
	}

	success := true
	keyIdx := 0
	for _, fullSigBytes := range signatures {
		if len(fullSigBytes) < 1 {
			success = false
			break
		}
		sig, err := btcec.ParseDERSignature(fullSigBytes[:len(fullSigBytes)-1])
		if err != nil {
			return err
		}

		matched := false
		for keyIdx < len(parsedKeys) {
			pubKey := parsedKeys[keyIdx]
			keyIdx++
			if pubKey.Verify(vm.z, sig) {
				matched = true
				break
			}
		}
		if !matched {
			success = false
			break
		}
	}

	vm.dstack.PushBool(success)
	return nil
}

// opcodeCheckMultiSigVerify is a combination of opcodeCheckMultiSig and
// opcodeVerify.
func opcodeCheckMultiSigVerify(op *opcode, vm *Engine) error {
	if err := opcodeCheckMultiSig(op, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm)
}
