// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

// CheckProofOfWork ensures the block header bits which indicate the target
// difficulty is in min/max range and that the block hash is less than the
// target difficulty as claimed.
func CheckProofOfWork(header *wire.BlockHeader, powLimit *big.Int) error {
	// The target difficulty must be larger than zero.
	target := CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		return errors.Wrapf(ErrNegativeTarget, "block target difficulty of %064x is too low", target)
	}

	// The target difficulty must be less than the maximum allowed.
	if target.Cmp(powLimit) > 0 {
		return errors.Wrapf(ErrTargetTooHigh, "block target difficulty of %064x is "+
			"higher than max of %064x", target, powLimit)
	}

	// The block hash must be less than the claimed target.
	hash := header.BlockHash()
	hashNum := hash.ToBig()
	if hashNum.Cmp(target) > 0 {
		return errors.Wrapf(ErrInvalidPoW, "block hash of %064x is higher than "+
			"expected max of %064x", hashNum, target)
	}

	return nil
}

// CheckHeaderChain checks the proof of work of every header and that each
// header builds on the one before it. The first header must build on prev,
// unless prev is nil.
func CheckHeaderChain(prev *wire.BlockHeader, headers []*wire.BlockHeader, powLimit *big.Int) error {
	for i, header := range headers {
		if prev != nil {
			prevHash := prev.BlockHash()
			if !header.PrevBlock.IsEqual(&prevHash) {
				return errors.Wrapf(ErrPrevBlockMismatch, "header %d (%s) builds on %s, want %s",
					i, header.BlockHash(), header.PrevBlock, prevHash)
			}
		}
		if err := CheckProofOfWork(header, powLimit); err != nil {
			return errors.Wrapf(err, "header %d", i)
		}
		prev = header
	}
	return nil
}
