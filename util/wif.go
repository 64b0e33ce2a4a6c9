// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/pkg/errors"
)

// compressMagic is the byte appended to a WIF payload when the key's public
// key is serialized compressed.
const compressMagic byte = 0x01

// WIF contains the individual components described by the Wallet Import
// Format (WIF). A WIF string is typically used to represent a private key and
// its associated address in a way that may be easily copied and imported
// into or exported from wallet software.
type WIF struct {
	// PrivKey is the private key being imported or exported.
	PrivKey *btcec.PrivateKey

	// CompressPubKey specifies whether the address controlled by the
	// imported or exported private key was created by hashing a
	// compressed (33-byte) serialized public key, rather than an
	// uncompressed (65-byte) one.
	CompressPubKey bool

	// netID is the network identifier byte used when
	// WIF encoding the private key.
	netID byte
}

// NewWIF creates a new WIF structure to export an address and its private key
// as a string encoded in the Wallet Import Format.
func NewWIF(privKey *btcec.PrivateKey, params *chaincfg.Params, compress bool) *WIF {
	return &WIF{PrivKey: privKey, CompressPubKey: compress, netID: params.PrivateKeyID}
}

// EncodeWIF is a shorthand for NewWIF(privKey, params, compress).String().
func EncodeWIF(privKey *btcec.PrivateKey, params *chaincfg.Params, compress bool) string {
	return NewWIF(privKey, params, compress).String()
}

// IsForNet returns whether or not the decoded WIF structure is associated
// with the passed network.
func (w *WIF) IsForNet(params *chaincfg.Params) bool {
	return w.netID == params.PrivateKeyID
}

// DecodeWIF creates a new WIF structure by decoding the string encoding of
// the import format.
//
// The WIF string must be a base58-encoded string of the following byte
// sequence:
//
//  * 1 byte to identify the network
//  * 32 bytes of a binary-encoded, big-endian, zero-padded private key
//  * Optional 1 byte (equal to 0x01) if the address being imported or exported
//    was created by taking the RIPEMD160 after SHA256 hash of a serialized
//    compressed (33-byte) public key
//  * 4 bytes of checksum, must equal the first four bytes of the double SHA256
//    of every byte before the checksum in this sequence
func DecodeWIF(wif string) (*WIF, error) {
	decoded, netID, err := CheckDecode(wif)
	if err != nil {
		return nil, err
	}

	var compress bool
	switch len(decoded) {
	case btcec.PrivKeyBytesLen + 1:
		if decoded[btcec.PrivKeyBytesLen] != compressMagic {
			return nil, errors.Wrapf(ErrInvalidFormat, "compression flag 0x%02x", decoded[btcec.PrivKeyBytesLen])
		}
		compress = true
	case btcec.PrivKeyBytesLen:
	default:
		return nil, errors.Wrapf(ErrInvalidFormat, "WIF payload of %d bytes", len(decoded))
	}

	privKey, err := btcec.PrivKeyFromBytes(decoded[:btcec.PrivKeyBytesLen])
	if err != nil {
		return nil, err
	}
	return &WIF{PrivKey: privKey, CompressPubKey: compress, netID: netID}, nil
}

// String creates the Wallet Import Format string encoding of a WIF structure.
// See DecodeWIF for a detailed breakdown of the format and requirements of
// a valid WIF string.
func (w *WIF) String() string {
	payload := w.PrivKey.Serialize()
	if w.CompressPubKey {
		payload = append(payload, compressMagic)
	}
	return CheckEncode(payload, w.netID)
}

// SerializePubKey serializes the associated public key of the imported or
// exported private key in either a compressed or uncompressed format. The
// serialization format chosen depends on the value of w.CompressPubKey.
func (w *WIF) SerializePubKey() []byte {
	return w.PrivKey.PubKey().Serialize(w.CompressPubKey)
}

// Address returns the P2PKH address controlled by the key on the network the
// WIF was encoded for.
func (w *WIF) Address(params *chaincfg.Params) (*AddressPubKeyHash, error) {
	if !w.IsForNet(params) {
		return nil, errors.Wrapf(ErrUnknownAddressType, "WIF key is not for %s", params.Name)
	}
	return NewAddressPubKeyHashFromPublicKey(w.SerializePubKey(), params)
}
