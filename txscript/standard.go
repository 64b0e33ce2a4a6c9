// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/pkg/errors"
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain.
const (
	NonStandardTy ScriptClass = iota // None of the recognized forms.
	PubKeyHashTy                     // Pay pubkey hash.
	ScriptHashTy                     // Pay to script hash.
	MultiSigTy                       // Bare m-of-n multisig.
	NullDataTy                       // Provably unspendable data carrier.
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy: "nonstandard",
	PubKeyHashTy:  "pubkeyhash",
	ScriptHashTy:  "scripthash",
	MultiSigTy:    "multisig",
	NullDataTy:    "nulldata",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) || int(t) < 0 {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// IsPayToPubKeyHash returns true if the script is in the standard
// pay-to-pubkey-hash (P2PKH) format, false otherwise.
func IsPayToPubKeyHash(script *Script) bool {
	cmds := script.cmds
	return len(cmds) == 5 &&
		cmds[0].isOpcode(OpDup) &&
		cmds[1].isOpcode(OpHash160) &&
		cmds[2].isData && len(cmds[2].data) == 20 &&
		cmds[3].isOpcode(OpEqualVerify) &&
		cmds[4].isOpcode(OpCheckSig)
}

// IsPayToScriptHash returns true if the script is in the standard
// pay-to-script-hash (P2SH) format, false otherwise.
func IsPayToScriptHash(script *Script) bool {
	cmds := script.cmds
	return len(cmds) == 3 &&
		cmds[0].isOpcode(OpHash160) &&
		cmds[1].isData && len(cmds[1].data) == 20 &&
		cmds[2].isOpcode(OpEqual)
}

// isSmallInt returns whether or not the command is considered a small integer,
// which is an Op0, or Op1 through Op16.
func isSmallInt(cmd Command) bool {
	return !cmd.isData && (cmd.opcode == Op0 || (cmd.opcode >= Op1 && cmd.opcode <= Op16))
}

// asSmallInt returns the passed opcode, which must be true according to
// isSmallInt(), as an integer.
func asSmallInt(op byte) int {
	if op == Op0 {
		return 0
	}
	return int(op - (Op1 - 1))
}

// isMultiSig returns true if the passed script is a bare multisig script,
// false otherwise.
func isMultiSig(script *Script) bool {
	cmds := script.cmds
	l := len(cmds)
	// The absolute minimum is 1 pubkey:
	// OP_0/OP_1-16 <pubkey> OP_1 OP_CHECKMULTISIG
	if l < 4 {
		return false
	}
	if !isSmallInt(cmds[0]) || !isSmallInt(cmds[l-2]) || !cmds[l-1].isOpcode(OpCheckMultiSig) {
		return false
	}

	numPubKeys := asSmallInt(cmds[l-2].opcode)
	if numPubKeys != l-3 || asSmallInt(cmds[0].opcode) > numPubKeys {
		return false
	}
	for _, cmd := range cmds[1 : l-2] {
		if !cmd.isData || (len(cmd.data) != 33 && len(cmd.data) != 65) {
			return false
		}
	}
	return true
}

// isNullData returns true if the passed script is a null data script, false
// otherwise.
func isNullData(script *Script) bool {
	cmds := script.cmds
	if len(cmds) == 1 && cmds[0].isOpcode(OpReturn) {
		return true
	}
	return len(cmds) == 2 && cmds[0].isOpcode(OpReturn) && cmds[1].isData &&
		len(cmds[1].data) <= MaxScriptElementSize
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy is returned for any script matching no template.
func GetScriptClass(script *Script) ScriptClass {
	switch {
	case IsPayToPubKeyHash(script):
		return PubKeyHashTy
	case IsPayToScriptHash(script):
		return ScriptHashTy
	case isMultiSig(script):
		return MultiSigTy
	case isNullData(script):
		return NullDataTy
	default:
		return NonStandardTy
	}
}

// ExtractScriptHash returns the class of script together with the 20-byte
// hash it commits to for pay-to-pubkey-hash and pay-to-script-hash scripts.
// The hash is nil for any other class.
func ExtractScriptHash(script *Script) (ScriptClass, []byte) {
	class := GetScriptClass(script)
	switch class {
	case PubKeyHashTy:
		return class, script.cmds[2].data
	case ScriptHashTy:
		return class, script.cmds[1].data
	default:
		return class, nil
	}
}

// PayToPubKeyHashScript creates a new script to pay a transaction
// output to a 20-byte pubkey hash. It is expected that the input is a valid
// hash.
func PayToPubKeyHashScript(pubKeyHash []byte) (*Script, error) {
	if len(pubKeyHash) != 20 {
		return nil, errors.Wrapf(ErrMalformedScript, "pubkey hash is %d bytes, want 20",
			len(pubKeyHash))
	}
	return NewScriptBuilder().AddOp(OpDup).AddOp(OpHash160).
		AddData(pubKeyHash).AddOp(OpEqualVerify).AddOp(OpCheckSig).
		Script()
}

// PayToScriptHashScript creates a new script to pay a transaction output to a
// script hash. It is expected that the input is a valid hash.
func PayToScriptHashScript(scriptHash []byte) (*Script, error) {
	if len(scriptHash) != 20 {
		return nil, errors.Wrapf(ErrMalformedScript, "script hash is %d bytes, want 20",
			len(scriptHash))
	}
	return NewScriptBuilder().AddOp(OpHash160).AddData(scriptHash).
		AddOp(OpEqual).Script()
}

// MultiSigScript returns a valid script for a multisignature redemption where
// nrequired of the keys in pubkeys are required to have signed the transaction
// for success. The keys are SEC serialized public keys. An error is returned
// if nrequired is larger than the number of keys provided.
func MultiSigScript(pubKeys [][]byte, nrequired int) (*Script, error) {
	if len(pubKeys) > MaxPubKeysPerMultiSig {
		return nil, errors.Wrapf(ErrMalformedScript, "%d public keys exceed the max "+
			"allowed of %d", len(pubKeys), MaxPubKeysPerMultiSig)
	}
	if nrequired < 1 || len(pubKeys) < nrequired {
		return nil, errors.Wrapf(ErrMalformedScript, "unable to generate multisig script "+
			"with %d required signatures when there are %d public keys available",
			nrequired, len(pubKeys))
	}

	builder := NewScriptBuilder().AddInt64(int64(nrequired))
	for _, key := range pubKeys {
		builder.AddData(key)
	}
	builder.AddInt64(int64(len(pubKeys)))
	builder.AddOp(OpCheckMultiSig)

	return builder.Script()
}
