// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/huynhtastic/programmingbitcoin/txscript"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/huynhtastic/programmingbitcoin/wire"
)

// genesisCoinbaseTx is the coinbase transaction for the genesis blocks for
// the main network and test network (version 3).
var genesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  hashes.Hash{},
				Index: wire.MaxPrevOutIndex,
			},
			SignatureScript: txscript.NewScript(
				txscript.DataCommand([]byte{0xff, 0xff, 0x00, 0x1d}),
				txscript.DataCommand([]byte{0x04}),
				txscript.DataCommand([]byte("The Times 03/Jan/2009 Chancellor on brink of second bailout for banks")),
			),
			Sequence: wire.MaxTxInSequenceNum,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value: 0x12a05f200,
			PkScript: txscript.NewScript(
				txscript.DataCommand([]byte{
					0x04, 0x67, 0x8a, 0xfd, 0xb0, 0xfe, 0x55, 0x48, /* |.g....UH| */
					0x27, 0x19, 0x67, 0xf1, 0xa6, 0x71, 0x30, 0xb7, /* |'.g..q0.| */
					0x10, 0x5c, 0xd6, 0xa8, 0x28, 0xe0, 0x39, 0x09, /* |.\..(.9.| */
					0xa6, 0x79, 0x62, 0xe0, 0xea, 0x1f, 0x61, 0xde, /* |.yb...a.| */
					0xb6, 0x49, 0xf6, 0xbc, 0x3f, 0x4c, 0xef, 0x38, /* |.I..?L.8| */
					0xc4, 0xf3, 0x55, 0x04, 0xe5, 0x1e, 0xc1, 0x12, /* |..U.....| */
					0xde, 0x5c, 0x38, 0x4d, 0xf7, 0xba, 0x0b, 0x8d, /* |.\8M....| */
					0x57, 0x8a, 0x4c, 0x70, 0x2b, 0x6b, 0xf1, 0x1d, /* |W.Lp+k..| */
					0x5f, /* |_| */
				}),
				txscript.OpcodeCommand(txscript.OpCheckSig),
			),
		},
	},
	LockTime: 0,
}

// genesisMerkleRoot is the hash of the first transaction in the genesis block
// for the main network.
var genesisMerkleRoot = hashes.Hash([hashes.HashSize]byte{ // Make go vet happy.
	0x3b, 0xa3, 0xed, 0xfd, 0x7a, 0x7b, 0x12, 0xb2,
	0x7a, 0xc7, 0x2c, 0x3e, 0x67, 0x76, 0x8f, 0x61,
	0x7f, 0xc8, 0x1b, 0xc3, 0x88, 0x8a, 0x51, 0x32,
	0x3a, 0x9f, 0xb8, 0xaa, 0x4b, 0x1e, 0x5e, 0x4a,
})

// genesisHeader defines the header of the genesis block of the block chain
// which serves as the public transaction ledger for the main network.
var genesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  hashes.Hash{},            // 0000000000000000000000000000000000000000000000000000000000000000
	MerkleRoot: genesisMerkleRoot,        // 4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b
	Timestamp:  time.Unix(0x495fab29, 0), // 2009-01-03 18:15:05 +0000 UTC
	Bits:       0x1d00ffff,               // 486604799 [00000000ffff0000000000000000000000000000000000000000000000000000]
	Nonce:      0x7c2bac1d,               // 2083236893
}

// genesisHash is the hash of the first block in the block chain for the main
// network (genesis block).
var genesisHash = hashes.Hash([hashes.HashSize]byte{ // Make go vet happy.
	0x6f, 0xe2, 0x8c, 0x0a, 0xb6, 0xf1, 0xb3, 0x72,
	0xc1, 0xa6, 0xa2, 0x46, 0xae, 0x63, 0xf7, 0x4f,
	0x93, 0x1e, 0x83, 0x65, 0xe1, 0x5a, 0x08, 0x9c,
	0x68, 0xd6, 0x19, 0x00, 0x00, 0x00, 0x00, 0x00,
})

// testNet3GenesisHeader defines the header of the genesis block of the block
// chain which serves as the public transaction ledger for the test network
// (version 3). It shares the coinbase of the main network.
var testNet3GenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  hashes.Hash{},            // 0000000000000000000000000000000000000000000000000000000000000000
	MerkleRoot: genesisMerkleRoot,        // 4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b
	Timestamp:  time.Unix(1296688602, 0), // 2011-02-02 23:16:42 +0000 UTC
	Bits:       0x1d00ffff,               // 486604799 [00000000ffff0000000000000000000000000000000000000000000000000000]
	Nonce:      0x18aea41a,               // 414098458
}

// testNet3GenesisHash is the hash of the first block in the block chain for the
// test network (version 3).
var testNet3GenesisHash = hashes.Hash([hashes.HashSize]byte{ // Make go vet happy.
	0x43, 0x49, 0x7f, 0xd7, 0xf8, 0x26, 0x95, 0x71,
	0x08, 0xf4, 0xa3, 0x0f, 0xd9, 0xce, 0xc3, 0xae,
	0xba, 0x79, 0x97, 0x20, 0x84, 0xe9, 0x0e, 0xad,
	0x01, 0xea, 0x33, 0x09, 0x00, 0x00, 0x00, 0x00,
})
