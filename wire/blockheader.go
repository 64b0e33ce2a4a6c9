// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/huynhtastic/programmingbitcoin/util/hashes"
)

// BlockHeaderPayload is the number of bytes a block header is.
// Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes +
// PrevBlock and MerkleRoot hashes.
const BlockHeaderPayload = 16 + (hashes.HashSize * 2)

// BlockHeader defines information about a block and is used in the bitcoin
// headers (MsgHeaders) message.
type BlockHeader struct {
	// Version of the block. This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock hashes.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot hashes.Hash

	// Time the block was created. This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp time.Time

	// Difficulty target for the block, in compact form.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() hashes.Hash {
	// Encode the header and double sha256 everything. Ignore the error
	// returns since there is no way the encode could fail except being
	// out of memory which would cause a run-time panic.
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderPayload))
	_ = writeBlockHeader(buf, 0, h)

	return hashes.Hash256H(buf.Bytes())
}

// Bip9 returns whether the version signals readiness through BIP0009, which
// requires the top three bits to be 001.
func (h *BlockHeader) Bip9() bool {
	return uint32(h.Version)>>29 == 0x1
}

// Bip91 returns whether bit 4 of the version is set, signalling BIP0091.
func (h *BlockHeader) Bip91() bool {
	return (uint32(h.Version)>>4)&1 == 1
}

// Bip141 returns whether bit 1 of the version is set, signalling BIP0141
// (segregated witness).
func (h *BlockHeader) Bip141() bool {
	return (uint32(h.Version)>>1)&1 == 1
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
// See Deserialize for decoding block headers stored to disk, such as in a
// database, as opposed to decoding block headers from the wire.
func (h *BlockHeader) BtcDecode(r io.Reader, pver uint32) error {
	return readBlockHeader(r, pver, h)
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
// See Serialize for encoding block headers to be stored to disk, such as in a
// database, as opposed to encoding block headers for the wire.
func (h *BlockHeader) BtcEncode(w io.Writer, pver uint32) error {
	return writeBlockHeader(w, pver, h)
}

// Deserialize decodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database while respecting
// the Version field.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	// At the current time, there is no difference between the wire encoding
	// at protocol version 0 and the stable long-term storage format. As
	// a result, make use of readBlockHeader.
	return readBlockHeader(r, 0, h)
}

// Serialize encodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database while respecting
// the Version field.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return writeBlockHeader(w, 0, h)
}

// String returns the block hash followed by the header fields.
func (h *BlockHeader) String() string {
	return fmt.Sprintf("block %s (version %#x, prev %s, merkle %s, time %s, bits %#08x, nonce %d)",
		h.BlockHash(), uint32(h.Version), h.PrevBlock, h.MerkleRoot,
		h.Timestamp.UTC().Format(time.RFC3339), h.Bits, h.Nonce)
}

// NewBlockHeader returns a new BlockHeader using the provided version, previous
// block hash, merkle root hash, difficulty bits, and nonce used to generate the
// block with defaults for the remaining fields.
func NewBlockHeader(version int32, prevHash, merkleRootHash *hashes.Hash,
	bits uint32, nonce uint32) *BlockHeader {

	// Limit the timestamp to one second precision since the protocol
	// doesn't support better.
	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  time.Unix(time.Now().Unix(), 0),
		Bits:       bits,
		Nonce:      nonce,
	}
}

// readBlockHeader reads a bitcoin block header from r. See Deserialize for
// decoding block headers stored to disk, such as in a database, as opposed to
// decoding from the wire.
func readBlockHeader(r io.Reader, pver uint32, bh *BlockHeader) error {
	return readElements(r, &bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		(*uint32Time)(&bh.Timestamp), &bh.Bits, &bh.Nonce)
}

// writeBlockHeader writes a bitcoin block header to w. See Serialize for
// encoding block headers to be stored to disk, such as in a database, as
// opposed to encoding for the wire.
func writeBlockHeader(w io.Writer, pver uint32, bh *BlockHeader) error {
	sec := uint32(bh.Timestamp.Unix())
	return writeElements(w, bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		sec, bh.Bits, bh.Nonce)
}
