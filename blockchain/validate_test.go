// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

// mustParseHeader decodes a hex encoded header and panics on bad input since
// it is only used with hard-coded test data.
func mustParseHeader(hexStr string) *wire.BlockHeader {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		panic("invalid hex in test source: " + err.Error())
	}
	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(b)); err != nil {
		panic("invalid header in test source: " + err.Error())
	}
	return &header
}

const (
	// block481824 is the header of mainnet block 481824.
	block481824 = "020000208ec39428b17323fa0ddec8e887b4a7c53b8c0a0a220cfd0000000000000000005b0750fce" +
		"0a889502d40508d39576821155e9c9e3f5c3157f961db38fd8b25be1e77a759e93c0118a4ffd71d"

	// testnetHeader1 and testnetHeader2 are consecutive testnet3 headers.
	testnetHeader1 = "00000020df3b053dc46f162a9b00c7f0d5124e2676d47bbe7c5d0793a500000000000000ef445fef" +
		"2ed495c275892206ca533e7411907971013ab83e3b47bd0d692d14d4dc7c835b67d8001ac157e670"
	testnetHeader2 = "0000002030eb2540c41025690160a1014c577061596e32e426b712c7ca00000000000000768b89f0" +
		"7044e6130ead292a3f51951adbd2202df447d98789339937fd006bd44880835b67d8001ade092046"
)

func TestCheckProofOfWork(t *testing.T) {
	powLimit := chaincfg.MainNetParams.PowLimit

	tests := []struct {
		name   string
		header func() *wire.BlockHeader
		err    error
	}{
		{
			name:   "mainnet block 481824",
			header: func() *wire.BlockHeader { return mustParseHeader(block481824) },
		},
		{
			name:   "mainnet genesis",
			header: func() *wire.BlockHeader { return chaincfg.MainNetParams.GenesisHeader },
		},
		{
			name:   "testnet3 genesis",
			header: func() *wire.BlockHeader { return chaincfg.TestNet3Params.GenesisHeader },
		},
		{
			name: "wrong nonce",
			header: func() *wire.BlockHeader {
				h := mustParseHeader(block481824)
				h.Nonce++
				return h
			},
			err: ErrInvalidPoW,
		},
		{
			name: "negative target",
			header: func() *wire.BlockHeader {
				h := mustParseHeader(block481824)
				h.Bits = 0x01810000
				return h
			},
			err: ErrNegativeTarget,
		},
		{
			name: "zero target",
			header: func() *wire.BlockHeader {
				h := mustParseHeader(block481824)
				h.Bits = 0
				return h
			},
			err: ErrNegativeTarget,
		},
		{
			name: "target above limit",
			header: func() *wire.BlockHeader {
				h := mustParseHeader(block481824)
				h.Bits = 0x1e00ffff
				return h
			},
			err: ErrTargetTooHigh,
		},
	}

	for _, test := range tests {
		err := CheckProofOfWork(test.header(), powLimit)
		if test.err == nil {
			if err != nil {
				t.Errorf("CheckProofOfWork %s: unexpected error %v", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.err) {
			t.Errorf("CheckProofOfWork %s: got error %v, want %v", test.name, err, test.err)
		}
	}
}

func TestCheckHeaderChain(t *testing.T) {
	powLimit := chaincfg.TestNet3Params.PowLimit
	first := mustParseHeader(testnetHeader1)
	second := mustParseHeader(testnetHeader2)

	if err := CheckHeaderChain(nil, []*wire.BlockHeader{first, second}, powLimit); err != nil {
		t.Errorf("CheckHeaderChain: unexpected error %v", err)
	}
	if err := CheckHeaderChain(first, []*wire.BlockHeader{second}, powLimit); err != nil {
		t.Errorf("CheckHeaderChain with prev: unexpected error %v", err)
	}
	if err := CheckHeaderChain(first, nil, powLimit); err != nil {
		t.Errorf("CheckHeaderChain without headers: unexpected error %v", err)
	}

	err := CheckHeaderChain(nil, []*wire.BlockHeader{second, first}, powLimit)
	if !errors.Is(err, ErrPrevBlockMismatch) {
		t.Errorf("CheckHeaderChain out of order: got error %v, want %v", err, ErrPrevBlockMismatch)
	}

	// The testnet header does not build on mainnet block 481824.
	err = CheckHeaderChain(mustParseHeader(block481824), []*wire.BlockHeader{first}, powLimit)
	if !errors.Is(err, ErrPrevBlockMismatch) {
		t.Errorf("CheckHeaderChain with a foreign prev: got error %v, want %v", err, ErrPrevBlockMismatch)
	}

	tampered := mustParseHeader(testnetHeader2)
	tampered.Nonce++
	err = CheckHeaderChain(first, []*wire.BlockHeader{tampered}, powLimit)
	if !errors.Is(err, ErrInvalidPoW) {
		t.Errorf("CheckHeaderChain with bad nonce: got error %v, want %v", err, ErrInvalidPoW)
	}
}
