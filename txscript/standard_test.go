// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

// TestScriptClass ensures all the scripts in the test table are classified
// and have their hash extracted as intended.
func TestScriptClass(t *testing.T) {
	t.Parallel()

	pubKey := hexToBytes("035d5c93d9ac96881f19ba1f686f15f009ded7c62efe85a872e6a19b43c15a2937")
	hash := hexToBytes("bc3b654dca7e56b04dca18f2566cdaf02e8d9ada")

	tests := []struct {
		name  string
		raw   []byte
		class ScriptClass
		hash  []byte
	}{
		{
			name:  "pubkey hash",
			raw:   hexToBytes("76a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac"),
			class: PubKeyHashTy,
			hash:  hash,
		},
		{
			name:  "script hash",
			raw:   hexToBytes("a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada87"),
			class: ScriptHashTy,
			hash:  hash,
		},
		{
			name:  "1-of-1 multisig",
			raw:   append(append([]byte{Op1, OpData33}, pubKey...), Op1, OpCheckMultiSig),
			class: MultiSigTy,
		},
		{
			name:  "multisig requiring more signatures than keys",
			raw:   append(append([]byte{Op2, OpData33}, pubKey...), Op1, OpCheckMultiSig),
			class: NonStandardTy,
		},
		{
			name:  "null data",
			raw:   hexToBytes("6a0401020304"),
			class: NullDataTy,
		},
		{
			name:  "bare return",
			raw:   []byte{OpReturn},
			class: NullDataTy,
		},
		{
			name:  "pubkey hash with short hash",
			raw:   hexToBytes("76a913bc3b654dca7e56b04dca18f2566cdaf02e8d9a88ac"),
			class: NonStandardTy,
		},
		{
			name:  "empty",
			raw:   nil,
			class: NonStandardTy,
		},
	}

	for _, test := range tests {
		script, err := ParseRaw(test.raw)
		if err != nil {
			t.Errorf("%s: unexpected parse error %v", test.name, err)
			continue
		}
		class, hash := ExtractScriptHash(script)
		if class != test.class {
			t.Errorf("%s: got class %s, want %s", test.name, class, test.class)
		}
		if !bytes.Equal(hash, test.hash) {
			t.Errorf("%s: got hash %x, want %x", test.name, hash, test.hash)
		}
	}
}

func TestScriptClassString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class ScriptClass
		want  string
	}{
		{NonStandardTy, "nonstandard"},
		{PubKeyHashTy, "pubkeyhash"},
		{ScriptHashTy, "scripthash"},
		{MultiSigTy, "multisig"},
		{NullDataTy, "nulldata"},
		{ScriptClass(0xff), "Invalid"},
	}
	for _, test := range tests {
		if got := test.class.String(); got != test.want {
			t.Errorf("String(%d): got %q, want %q", test.class, got, test.want)
		}
	}
}

func TestPayToScriptTemplates(t *testing.T) {
	t.Parallel()

	hash := hexToBytes("bc3b654dca7e56b04dca18f2566cdaf02e8d9ada")

	p2pkh, err := PayToPubKeyHashScript(hash)
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: unexpected error %v", err)
	}
	raw, _ := p2pkh.RawSerialize()
	if !bytes.Equal(raw, hexToBytes("76a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac")) {
		t.Errorf("PayToPubKeyHashScript: got %x", raw)
	}

	p2sh, err := PayToScriptHashScript(hash)
	if err != nil {
		t.Fatalf("PayToScriptHashScript: unexpected error %v", err)
	}
	raw, _ = p2sh.RawSerialize()
	if !bytes.Equal(raw, hexToBytes("a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada87")) {
		t.Errorf("PayToScriptHashScript: got %x", raw)
	}

	if _, err := PayToPubKeyHashScript(hash[:19]); !errors.Is(err, ErrMalformedScript) {
		t.Errorf("PayToPubKeyHashScript(short hash): got error %v, want %v", err, ErrMalformedScript)
	}
	if _, err := PayToScriptHashScript(nil); !errors.Is(err, ErrMalformedScript) {
		t.Errorf("PayToScriptHashScript(nil): got error %v, want %v", err, ErrMalformedScript)
	}
}

func TestMultiSigScript(t *testing.T) {
	t.Parallel()

	pubKey := hexToBytes("035d5c93d9ac96881f19ba1f686f15f009ded7c62efe85a872e6a19b43c15a2937")

	script, err := MultiSigScript([][]byte{pubKey, pubKey}, 1)
	if err != nil {
		t.Fatalf("MultiSigScript: unexpected error %v", err)
	}
	want := "OP_1 " + hexToString(pubKey) + " " + hexToString(pubKey) + " OP_2 OP_CHECKMULTISIG"
	if got := script.String(); got != want {
		t.Errorf("MultiSigScript: got %q, want %q", got, want)
	}
	if GetScriptClass(script) != MultiSigTy {
		t.Errorf("GetScriptClass: got %s, want %s", GetScriptClass(script), MultiSigTy)
	}

	tests := []struct {
		name      string
		numKeys   int
		nrequired int
	}{
		{"no keys", 0, 1},
		{"zero required", 2, 0},
		{"more required than keys", 2, 3},
		{"too many keys", MaxPubKeysPerMultiSig + 1, 1},
	}
	for _, test := range tests {
		keys := make([][]byte, test.numKeys)
		for i := range keys {
			keys[i] = pubKey
		}
		if _, err := MultiSigScript(keys, test.nrequired); !errors.Is(err, ErrMalformedScript) {
			t.Errorf("%s: got error %v, want %v", test.name, err, ErrMalformedScript)
		}
	}
}

func TestScriptBuilderAddInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		val      int64
		expected string
	}{
		{-1, "OP_1NEGATE"},
		{0, "OP_0"},
		{1, "OP_1"},
		{16, "OP_16"},
		{17, "11"},
		{-2, "82"},
		{1000, "e803"},
	}

	for _, test := range tests {
		script, err := NewScriptBuilder().AddInt64(test.val).Script()
		if err != nil {
			t.Errorf("AddInt64(%d): unexpected error %v", test.val, err)
			continue
		}
		if got := script.String(); got != test.expected {
			t.Errorf("AddInt64(%d): got %q, want %q", test.val, got, test.expected)
		}
	}

	_, err := NewScriptBuilder().AddData(make([]byte, MaxScriptElementSize+1)).AddOp(OpDup).Script()
	if !errors.Is(err, ErrMalformedScript) {
		t.Errorf("AddData(oversized): got error %v, want %v", err, ErrMalformedScript)
	}
}

func hexToString(b []byte) string {
	return NewScript(DataCommand(b)).String()
}
