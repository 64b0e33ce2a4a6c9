package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/huynhtastic/programmingbitcoin/blockchain"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

// block1Hex is the header of mainnet block 1.
const block1Hex = "010000006fe28c0ab6f1b372c1a6a246ae63f74f931e8365e15a089c68d6190000000000" +
	"982051fd1e4ba744bbbe680e1fee14677ba1a3c3540bf7b1cdb606e857233e0e61bc6649ffff001d01e36299"

func block1(t *testing.T) *wire.BlockHeader {
	raw, err := hex.DecodeString(block1Hex)
	if err != nil {
		t.Fatalf("invalid test header: %v", err)
	}
	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(raw)); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	return &header
}

// fakeSource serves the given batches of headers in order and records the
// requested start hashes.
type fakeSource struct {
	batches  [][]*wire.BlockHeader
	requests []hashes.Hash
}

func (s *fakeSource) GetHeaders(start *hashes.Hash) ([]*wire.BlockHeader, error) {
	s.requests = append(s.requests, *start)
	if len(s.batches) == 0 {
		return nil, nil
	}
	headers := s.batches[0]
	s.batches = s.batches[1:]
	return headers, nil
}

func TestSyncHeaders(t *testing.T) {
	params := &chaincfg.MainNetParams
	header := block1(t)
	source := &fakeSource{batches: [][]*wire.BlockHeader{{header}}}

	var out bytes.Buffer
	count, err := syncHeaders(source, params, 3, &out)
	if err != nil {
		t.Fatalf("syncHeaders: unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("syncHeaders: got %d headers, want 1", count)
	}

	// The second request continues from block 1 and the empty answer ends
	// the sync.
	if len(source.requests) != 2 {
		t.Fatalf("syncHeaders: got %d requests, want 2", len(source.requests))
	}
	if !source.requests[0].IsEqual(params.GenesisHash) {
		t.Errorf("syncHeaders: first request from %s, want genesis", source.requests[0])
	}
	if want := header.BlockHash(); !source.requests[1].IsEqual(&want) {
		t.Errorf("syncHeaders: second request from %s, want %s", source.requests[1], want)
	}

	// Block 1 keeps the genesis difficulty.
	if out.Len() != 0 {
		t.Errorf("syncHeaders: unexpected output %q", out.String())
	}
}

func TestSyncHeadersRejectsInvalid(t *testing.T) {
	params := &chaincfg.MainNetParams

	tampered := block1(t)
	tampered.Nonce++
	source := &fakeSource{batches: [][]*wire.BlockHeader{{tampered}}}
	_, err := syncHeaders(source, params, 1, &bytes.Buffer{})
	if !errors.Is(err, blockchain.ErrInvalidPoW) {
		t.Errorf("syncHeaders: got error %v, want %v", err, blockchain.ErrInvalidPoW)
	}

	// Block 1 does not follow the testnet genesis block.
	source = &fakeSource{batches: [][]*wire.BlockHeader{{block1(t)}}}
	_, err = syncHeaders(source, &chaincfg.TestNet3Params, 1, &bytes.Buffer{})
	if !errors.Is(err, blockchain.ErrPrevBlockMismatch) {
		t.Errorf("syncHeaders: got error %v, want %v", err, blockchain.ErrPrevBlockMismatch)
	}
}
