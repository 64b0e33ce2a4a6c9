// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

// twoHeaders is a mainnet headers payload holding two consecutive blocks.
var twoHeaders = hexToBytes("0200000020df3b053dc46f162a9b00c7f0d5124e2676d47bbe7c5d0793a5000000" +
	"00000000ef445fef2ed495c275892206ca533e7411907971013ab83e3b47bd0d692d14d4dc7c835b67d8" +
	"001ac157e670000000002030eb2540c41025690160a1014c577061596e32e426b712c7ca000000000000" +
	"00768b89f07044e6130ead292a3f51951adbd2202df447d98789339937fd006bd44880835b67d8001ade" +
	"09204600")

func TestGetHeadersWire(t *testing.T) {
	start := mustHashFromStr("0000000000000000001237f46acddf58578a37e213d2a6edc4884a2fcad05ba3")
	msg := NewMsgGetHeaders(start)

	want := hexToBytes("7f11010001a35bd0ca2f4a88c4eda6d213e2378a5758dfcd6af4371200000000000000000000" +
		"00000000000000000000000000000000000000000000000000000000000000")

	var buf bytes.Buffer
	err := msg.BtcEncode(&buf, ProtocolVersion)
	if err != nil {
		t.Fatalf("BtcEncode: unexpected error %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("BtcEncode:\n got: %x\nwant: %x", buf.Bytes(), want)
	}

	var decoded MsgGetHeaders
	err = decoded.BtcDecode(bytes.NewReader(want), ProtocolVersion)
	if err != nil {
		t.Fatalf("BtcDecode: unexpected error %v", err)
	}
	if len(decoded.BlockLocatorHashes) != 1 || !decoded.BlockLocatorHashes[0].IsEqual(start) {
		t.Errorf("BtcDecode: got locators %v, want [%s]", decoded.BlockLocatorHashes, start)
	}
	if !decoded.HashStop.IsZero() {
		t.Errorf("BtcDecode: got stop hash %s, want zero", decoded.HashStop)
	}
}

func TestGetHeadersLocatorLimit(t *testing.T) {
	msg := &MsgGetHeaders{ProtocolVersion: ProtocolVersion}
	var hash hashes.Hash
	for i := 0; i < MaxBlockLocatorsPerMsg; i++ {
		if err := msg.AddBlockLocatorHash(&hash); err != nil {
			t.Fatalf("AddBlockLocatorHash #%d: unexpected error %v", i, err)
		}
	}
	var msgErr *MessageError
	if err := msg.AddBlockLocatorHash(&hash); !errors.As(err, &msgErr) {
		t.Errorf("AddBlockLocatorHash: got error %v, want a *MessageError", err)
	}

	// A message built past the limit must not encode.
	msg.BlockLocatorHashes = append(msg.BlockLocatorHashes, &hash)
	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, ProtocolVersion); !errors.As(err, &msgErr) {
		t.Errorf("BtcEncode: got error %v, want a *MessageError", err)
	}
}

func TestHeadersDecode(t *testing.T) {
	var msg MsgHeaders
	err := msg.BtcDecode(bytes.NewReader(twoHeaders), ProtocolVersion)
	if err != nil {
		t.Fatalf("BtcDecode: unexpected error %v", err)
	}
	if len(msg.Headers) != 2 {
		t.Fatalf("BtcDecode: got %d headers, want 2", len(msg.Headers))
	}

	wantHashes := []string{
		"00000000000000cac712b726e4326e596170574c01a16001692510c44025eb30",
		"00000000000000beb88910c46f6b442312361c6693a7fb52065b583979844910",
	}
	for i, want := range wantHashes {
		if hash := msg.Headers[i].BlockHash(); hash.String() != want {
			t.Errorf("Headers[%d].BlockHash: got %s, want %s", i, hash, want)
		}
	}

	// The second header builds on the first.
	firstHash := msg.Headers[0].BlockHash()
	if !msg.Headers[1].PrevBlock.IsEqual(&firstHash) {
		t.Errorf("Headers[1].PrevBlock: got %s, want %s", msg.Headers[1].PrevBlock, firstHash)
	}

	var buf bytes.Buffer
	err = msg.BtcEncode(&buf, ProtocolVersion)
	if err != nil {
		t.Fatalf("BtcEncode: unexpected error %v", err)
	}
	if !bytes.Equal(buf.Bytes(), twoHeaders) {
		t.Errorf("BtcEncode:\n got: %x\nwant: %x", buf.Bytes(), twoHeaders)
	}
}

func TestHeadersNonZeroTxCount(t *testing.T) {
	tampered := append([]byte(nil), twoHeaders...)
	// The transaction count following the first header.
	tampered[1+BlockHeaderPayload] = 0x01

	var msg MsgHeaders
	err := msg.BtcDecode(bytes.NewReader(tampered), ProtocolVersion)
	var msgErr *MessageError
	if !errors.As(err, &msgErr) {
		t.Errorf("BtcDecode: got error %v, want a *MessageError", err)
	}
}

func TestHeadersCountLimit(t *testing.T) {
	raw := []byte{0xfd, 0xd1, 0x07} // 2001
	var msg MsgHeaders
	var msgErr *MessageError
	if err := msg.BtcDecode(bytes.NewReader(raw), ProtocolVersion); !errors.As(err, &msgErr) {
		t.Errorf("BtcDecode: got error %v, want a *MessageError", err)
	}

	full := NewMsgHeaders()
	bh := &BlockHeader{}
	for i := 0; i < MaxBlockHeadersPerMsg; i++ {
		if err := full.AddBlockHeader(bh); err != nil {
			t.Fatalf("AddBlockHeader #%d: unexpected error %v", i, err)
		}
	}
	if err := full.AddBlockHeader(bh); !errors.As(err, &msgErr) {
		t.Errorf("AddBlockHeader: got error %v, want a *MessageError", err)
	}
}
