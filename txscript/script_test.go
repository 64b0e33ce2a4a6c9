// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// unlockScriptHex is a length-prefixed pay-to-pubkey-hash unlock script: a
// DER signature with its hash type byte followed by a compressed public key.
const unlockScriptHex = "6a47304402207899531a52d59a6de200179928ca900254a36b8dff8bb75f5f5d71b" +
	"1cdc26125022008b422690b8461cb52c3cc30330b23d574351872b7c361e9aae3649071c1a71601" +
	"21035d5c93d9ac96881f19ba1f686f15f009ded7c62efe85a872e6a19b43c15a2937"

func TestParse(t *testing.T) {
	t.Parallel()

	script, err := Parse(bytes.NewReader(hexToBytes(unlockScriptHex)))
	if err != nil {
		t.Fatalf("Parse: unexpected error %v", err)
	}

	wantSig := hexToBytes("304402207899531a52d59a6de200179928ca900254a36b8dff8bb75f5f5d71b1cd" +
		"c26125022008b422690b8461cb52c3cc30330b23d574351872b7c361e9aae3649071c1a71601")
	wantSec := hexToBytes("035d5c93d9ac96881f19ba1f686f15f009ded7c62efe85a872e6a19b43c15a2937")

	cmds := script.Commands()
	if len(cmds) != 2 {
		t.Fatalf("Parse: got %d commands, want 2: %s", len(cmds), spew.Sdump(cmds))
	}
	if !cmds[0].IsData() || !bytes.Equal(cmds[0].Data(), wantSig) {
		t.Errorf("Parse: first command got %s, want %x", cmds[0], wantSig)
	}
	if !cmds[1].IsData() || !bytes.Equal(cmds[1].Data(), wantSec) {
		t.Errorf("Parse: second command got %s, want %x", cmds[1], wantSec)
	}

	serialized, err := script.Bytes()
	if err != nil {
		t.Fatalf("Bytes: unexpected error %v", err)
	}
	if !bytes.Equal(serialized, hexToBytes(unlockScriptHex)) {
		t.Errorf("Bytes: got %x, want %s", serialized, unlockScriptHex)
	}
}

func TestParseRawOpcodes(t *testing.T) {
	t.Parallel()

	// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
	raw := hexToBytes("76a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac")
	script, err := ParseRaw(raw)
	if err != nil {
		t.Fatalf("ParseRaw: unexpected error %v", err)
	}

	want := "OP_DUP OP_HASH160 bc3b654dca7e56b04dca18f2566cdaf02e8d9ada OP_EQUALVERIFY OP_CHECKSIG"
	if got := script.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
	if !IsPayToPubKeyHash(script) {
		t.Errorf("IsPayToPubKeyHash: got false for %s", script)
	}
}

func TestParsePushData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     []byte
		dataLen int
	}{
		{"OP_PUSHDATA1", append([]byte{OpPushData1, 0x50}, make([]byte, 0x50)...), 0x50},
		{"OP_PUSHDATA2", append([]byte{OpPushData2, 0x00, 0x01}, make([]byte, 0x100)...), 0x100},
		{"OP_PUSHDATA4", append([]byte{OpPushData4, 0x02, 0x00, 0x00, 0x00}, 0xaa, 0xbb), 2},
	}

	for _, test := range tests {
		script, err := ParseRaw(test.raw)
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
			continue
		}
		cmds := script.Commands()
		if len(cmds) != 1 || !cmds[0].IsData() || len(cmds[0].Data()) != test.dataLen {
			t.Errorf("%s: got %s, want a single push of %d bytes", test.name,
				spew.Sdump(cmds), test.dataLen)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
	}{
		{"push past end", hexToBytes("0301")},
		{"OP_PUSHDATA1 without length", []byte{OpPushData1}},
		{"OP_PUSHDATA2 short length", []byte{OpPushData2, 0x01}},
		{"OP_PUSHDATA2 past end", []byte{OpPushData2, 0x05, 0x00, 0x01}},
		{"OP_PUSHDATA4 past end", []byte{OpPushData4, 0xff, 0xff, 0xff, 0xff}},
		{"OP_PUSHDATA2 over element size", append([]byte{OpPushData2, 0x09, 0x02},
			make([]byte, MaxScriptElementSize+1)...)},
		{"OP_PUSHDATA4 over element size", append([]byte{OpPushData4, 0x58, 0x02, 0x00, 0x00},
			make([]byte, 600)...)},
	}

	for _, test := range tests {
		_, err := ParseRaw(test.raw)
		if !errors.Is(err, ErrMalformedScript) {
			t.Errorf("%s: got error %v, want %v", test.name, err, ErrMalformedScript)
		}
	}

	// A declared length longer than the available bytes.
	if _, err := Parse(bytes.NewReader(hexToBytes("05767676"))); err == nil {
		t.Errorf("Parse: expected an error for a truncated script")
	}
}

func TestRawSerializePushEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dataLen int
		prefix  []byte
	}{
		{0, []byte{Op0}},
		{1, []byte{0x01}},
		{75, []byte{0x4b}},
		{76, []byte{OpPushData1, 0x4c}},
		{255, []byte{OpPushData1, 0xff}},
		{256, []byte{OpPushData2, 0x00, 0x01}},
		{520, []byte{OpPushData2, 0x08, 0x02}},
	}

	for _, test := range tests {
		data := bytes.Repeat([]byte{0x01}, test.dataLen)
		raw, err := NewScript(DataCommand(data)).RawSerialize()
		if err != nil {
			t.Errorf("RawSerialize(%d bytes): unexpected error %v", test.dataLen, err)
			continue
		}
		want := append(append([]byte(nil), test.prefix...), data...)
		if !bytes.Equal(raw, want) {
			t.Errorf("RawSerialize(%d bytes): got prefix %x, want %x", test.dataLen,
				raw[:len(test.prefix)], test.prefix)
			continue
		}

		// Empty pushes come back as OP_0, everything else as the same push.
		script, err := ParseRaw(raw)
		if err != nil {
			t.Errorf("ParseRaw(%d bytes): unexpected error %v", test.dataLen, err)
			continue
		}
		cmd := script.Commands()[0]
		if test.dataLen == 0 {
			if cmd.IsData() || cmd.Opcode() != Op0 {
				t.Errorf("ParseRaw(empty push): got %s, want OP_0", cmd)
			}
			continue
		}
		if !cmd.IsData() || !bytes.Equal(cmd.Data(), data) {
			t.Errorf("ParseRaw(%d bytes): push did not round trip", test.dataLen)
		}
	}

	_, err := NewScript(DataCommand(make([]byte, MaxScriptElementSize+1))).RawSerialize()
	if !errors.Is(err, ErrMalformedScript) {
		t.Errorf("RawSerialize(oversized push): got error %v, want %v", err, ErrMalformedScript)
	}
}

func TestScriptConcat(t *testing.T) {
	t.Parallel()

	unlock := NewScript(DataCommand([]byte{0x02}))
	lock := NewScript(OpcodeCommand(OpDup), OpcodeCommand(OpMul))
	combined := unlock.Concat(lock)

	if combined.Len() != 3 {
		t.Fatalf("Concat: got %d commands, want 3", combined.Len())
	}
	if got, want := combined.String(), "02 OP_DUP OP_MUL"; got != want {
		t.Errorf("Concat: got %q, want %q", got, want)
	}
	if unlock.Len() != 1 || lock.Len() != 2 {
		t.Errorf("Concat modified its operands")
	}
}
