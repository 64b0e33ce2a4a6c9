// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/pkg/errors"

var (
	// ErrMalformedScript is returned when a serialized script cannot be
	// parsed, or when a script holds a push that cannot be serialized.
	ErrMalformedScript = errors.New("malformed script")

	// ErrScriptFailed is returned by Engine.Execute when evaluation does
	// not succeed. The wrapping message names the failing opcode.
	ErrScriptFailed = errors.New("script failed")
)

// Reasons an individual opcode fails. They are wrapped into ErrScriptFailed
// by the engine.
var (
	errStackUnderflow   = errors.New("not enough stack items")
	errVerifyFailed     = errors.New("verify failed")
	errEarlyReturn      = errors.New("OP_RETURN executed")
	errUnbalancedIf     = errors.New("conditional without a matching OP_ENDIF")
	errInvalidStackOp   = errors.New("stack index out of range")
	errDisabledOpcode   = errors.New("opcode is disabled or unknown")
	errNumberTooBig     = errors.New("script number overflow")
	errNegativeLockTime = errors.New("negative lock time")
	errUnsatisfiedLock  = errors.New("lock time requirement not satisfied")
	errInvalidPubKeys   = errors.New("invalid public key count")
	errInvalidSigs      = errors.New("invalid signature count")
	errNoTxContext      = errors.New("opcode requires a transaction context")
	errMissingSigHash   = errors.New("no signature hash to verify against")
	errRedeemScript     = errors.New("redeem script does not match its hash")
)
