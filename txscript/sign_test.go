// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"math/big"
	"testing"

	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

// sigHashAll is the hash type byte appended to the DER signatures below.
const sigHashAll = 0x01

// testKey returns the private key with the given secret. It panics on an
// invalid secret since it is only used with constants in the test source.
func testKey(secret int64) *btcec.PrivateKey {
	key, err := btcec.NewPrivateKey(big.NewInt(secret))
	if err != nil {
		panic("invalid secret in test source: " + err.Error())
	}
	return key
}

// signHash signs z with key and returns the DER signature followed by the
// SIGHASH_ALL byte.
func signHash(t *testing.T, key *btcec.PrivateKey, z *big.Int) []byte {
	sig, err := key.Sign(z)
	if err != nil {
		t.Fatalf("Sign: unexpected error %v", err)
	}
	return append(sig.Serialize(), sigHashAll)
}

func testSigHash(data string) *big.Int {
	hash := hashes.Hash256H([]byte(data))
	return new(big.Int).SetBytes(hash[:])
}

func TestPayToPubKey(t *testing.T) {
	t.Parallel()

	z, _ := new(big.Int).SetString("7c076ff316692a3d7eb3c3bb0f8b1488cf72e1afcd929e29307032997a838a3d", 16)
	sec := hexToBytes("04887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da568744d06c61de6d95231cd" +
		"89026e286df3b6ae4a894a3378e393e93a0f45b666329a0ae34")
	sig := hexToBytes("3045022000eff69ef2b1bd93a66ed5219add4fb51e11a840f404876325a1e8ffe0529a2c02210" +
		"0c7207fee197d27c618aea621406f6bf5ef6fca38681d82b2f06fddbdce6feab601")

	lock := NewScript(DataCommand(sec), OpcodeCommand(OpCheckSig))
	unlock := NewScript(DataCommand(sig))
	combined := unlock.Concat(lock)

	if !combined.Evaluate(z) {
		t.Errorf("Evaluate: valid pay-to-pubkey spend rejected")
	}
	if combined.Evaluate(new(big.Int).Add(z, big.NewInt(1))) {
		t.Errorf("Evaluate: spend accepted for a different signature hash")
	}

	err := NewEngine(combined, nil).Execute()
	if !errors.Is(err, ErrScriptFailed) {
		t.Errorf("Execute without a signature hash: got error %v, want %v", err, ErrScriptFailed)
	}

	malformed := NewScript(DataCommand(hexToBytes("30060201010201"+"01"))).Concat(lock)
	if malformed.Evaluate(z) {
		t.Errorf("Evaluate: malformed signature accepted")
	}
}

func TestPayToPubKeyHash(t *testing.T) {
	t.Parallel()

	key := testKey(8675309)
	other := testKey(2019)
	z := testSigHash("pay to pubkey hash")

	sec := key.PubKey().SerializeCompressed()
	lock, err := PayToPubKeyHashScript(hashes.Hash160(sec))
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: unexpected error %v", err)
	}

	tests := []struct {
		name   string
		unlock *Script
		valid  bool
	}{
		{
			name:   "valid",
			unlock: NewScript(DataCommand(signHash(t, key, z)), DataCommand(sec)),
			valid:  true,
		},
		{
			name: "signature over another hash",
			unlock: NewScript(DataCommand(signHash(t, key, testSigHash("other"))),
				DataCommand(sec)),
		},
		{
			name: "other key",
			unlock: NewScript(DataCommand(signHash(t, other, z)),
				DataCommand(other.PubKey().SerializeCompressed())),
		},
		{
			name: "uncompressed key",
			unlock: NewScript(DataCommand(signHash(t, key, z)),
				DataCommand(key.PubKey().SerializeUncompressed())),
		},
		{
			name:   "missing signature",
			unlock: NewScript(DataCommand(sec)),
		},
	}

	for _, test := range tests {
		got := test.unlock.Concat(lock).Evaluate(z)
		if got != test.valid {
			t.Errorf("%s: got %v, want %v", test.name, got, test.valid)
		}
	}
}

func TestCheckMultiSig(t *testing.T) {
	t.Parallel()

	keys := []*btcec.PrivateKey{testKey(101), testKey(202), testKey(303)}
	z := testSigHash("bare multisig")

	var pubKeys [][]byte
	var sigs [][]byte
	for _, key := range keys {
		pubKeys = append(pubKeys, key.PubKey().SerializeCompressed())
		sigs = append(sigs, signHash(t, key, z))
	}
	lock, err := MultiSigScript(pubKeys, 2)
	if err != nil {
		t.Fatalf("MultiSigScript: unexpected error %v", err)
	}

	tests := []struct {
		name   string
		unlock []Command
		valid  bool
	}{
		{"first and second", []Command{OpcodeCommand(Op0), DataCommand(sigs[0]), DataCommand(sigs[1])}, true},
		{"first and third", []Command{OpcodeCommand(Op0), DataCommand(sigs[0]), DataCommand(sigs[2])}, true},
		{"second and third", []Command{OpcodeCommand(Op0), DataCommand(sigs[1]), DataCommand(sigs[2])}, true},
		{"out of order", []Command{OpcodeCommand(Op0), DataCommand(sigs[1]), DataCommand(sigs[0])}, false},
		{"same signature twice", []Command{OpcodeCommand(Op0), DataCommand(sigs[0]), DataCommand(sigs[0])}, false},
		{"empty signature", []Command{OpcodeCommand(Op0), DataCommand(sigs[0]), DataCommand(nil)}, false},
		{"missing dummy", []Command{DataCommand(sigs[0]), DataCommand(sigs[1])}, false},
	}

	for _, test := range tests {
		got := NewScript(test.unlock...).Concat(lock).Evaluate(z)
		if got != test.valid {
			t.Errorf("%s: got %v, want %v", test.name, got, test.valid)
		}
	}

	verify := NewScript(OpcodeCommand(Op0), DataCommand(sigs[0]), DataCommand(sigs[1])).
		Concat(NewScript(append(lock.Commands()[:lock.Len()-1],
			OpcodeCommand(OpCheckMultiSigVerify), OpcodeCommand(Op1))...))
	if !verify.Evaluate(z) {
		t.Errorf("OP_CHECKMULTISIGVERIFY: valid signatures rejected")
	}
}

func TestPayToScriptHash(t *testing.T) {
	t.Parallel()

	keys := []*btcec.PrivateKey{testKey(1111), testKey(2222)}
	z := testSigHash("pay to script hash")

	var pubKeys [][]byte
	for _, key := range keys {
		pubKeys = append(pubKeys, key.PubKey().SerializeCompressed())
	}
	redeem, err := MultiSigScript(pubKeys, 2)
	if err != nil {
		t.Fatalf("MultiSigScript: unexpected error %v", err)
	}
	redeemRaw, err := redeem.RawSerialize()
	if err != nil {
		t.Fatalf("RawSerialize: unexpected error %v", err)
	}
	lock, err := PayToScriptHashScript(hashes.Hash160(redeemRaw))
	if err != nil {
		t.Fatalf("PayToScriptHashScript: unexpected error %v", err)
	}
	if !IsPayToScriptHash(lock) {
		t.Fatalf("IsPayToScriptHash: got false for %s", lock)
	}

	sig0 := signHash(t, keys[0], z)
	sig1 := signHash(t, keys[1], z)

	valid := NewScript(OpcodeCommand(Op0), DataCommand(sig0), DataCommand(sig1),
		DataCommand(redeemRaw))
	if !valid.Concat(lock).Evaluate(z) {
		t.Errorf("Evaluate: valid pay-to-script-hash spend rejected")
	}

	// The redeem script replaces the rest of the program, so the stack
	// left behind is the multisig result.
	vm := NewEngine(valid.Concat(lock), z)
	if err := vm.Execute(); err != nil {
		t.Fatalf("Execute: unexpected error %v", err)
	}
	if stack := vm.GetStack(); len(stack) != 1 {
		t.Errorf("Execute: got stack of %d items, want 1", len(stack))
	}

	missingSig := NewScript(OpcodeCommand(Op0), DataCommand(sig0), DataCommand(redeemRaw))
	if missingSig.Concat(lock).Evaluate(z) {
		t.Errorf("Evaluate: spend with one of two signatures accepted")
	}

	otherRedeem := append(append([]byte(nil), redeemRaw...), OpNop)
	wrongRedeem := NewScript(OpcodeCommand(Op0), DataCommand(sig0), DataCommand(sig1),
		DataCommand(otherRedeem))
	err = NewEngine(wrongRedeem.Concat(lock), z).Execute()
	if !errors.Is(err, ErrScriptFailed) {
		t.Errorf("Execute with a mismatched redeem script: got error %v, want %v",
			err, ErrScriptFailed)
	}

	unparsable := []byte{OpData20, 0x01}
	badLock, _ := PayToScriptHashScript(hashes.Hash160(unparsable))
	if NewScript(DataCommand(unparsable)).Concat(badLock).Evaluate(z) {
		t.Errorf("Evaluate: unparsable redeem script accepted")
	}
}
