// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/txscript"
	"github.com/pkg/errors"
)

// hash160Size is the size of the hash carried by P2PKH and P2SH addresses.
const hash160Size = 20

// Address is an interface type for any type of destination a transaction
// output may spend to.
type Address interface {
	// String returns the string encoding of the transaction output
	// destination.
	String() string

	// EncodeAddress returns the string encoding of the payment address
	// associated by the Address value.
	EncodeAddress() string

	// ScriptAddress returns the raw bytes of the address to be used
	// when inserting the address into a txout's script.
	ScriptAddress() []byte

	// IsForNet returns whether or not the address is associated with the
	// passed network.
	IsForNet(*chaincfg.Params) bool
}

// DecodeAddress decodes the string encoding of an address and returns the
// Address if addr is a valid P2PKH or P2SH address for params.
func DecodeAddress(addr string, params *chaincfg.Params) (Address, error) {
	decoded, netID, err := CheckDecode(addr)
	if err != nil {
		return nil, err
	}
	if len(decoded) != hash160Size {
		return nil, errors.Wrapf(ErrInvalidFormat, "address %s carries %d bytes, want %d",
			addr, len(decoded), hash160Size)
	}

	switch netID {
	case params.PubKeyHashAddrID:
		return newAddressPubKeyHash(decoded, netID)
	case params.ScriptHashAddrID:
		return newAddressScriptHashFromHash(decoded, netID)
	default:
		return nil, errors.Wrapf(ErrUnknownAddressType, "version byte 0x%02x on %s", netID, params.Name)
	}
}

// AddressPubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH)
// transaction.
type AddressPubKeyHash struct {
	hash  [hash160Size]byte
	netID byte
}

// NewAddressPubKeyHash returns a new AddressPubKeyHash. pkHash must be 20
// bytes.
func NewAddressPubKeyHash(pkHash []byte, params *chaincfg.Params) (*AddressPubKeyHash, error) {
	return newAddressPubKeyHash(pkHash, params.PubKeyHashAddrID)
}

// NewAddressPubKeyHashFromPublicKey returns the P2PKH address of a SEC
// serialized public key. The compressed and uncompressed serializations of
// the same key give different addresses.
func NewAddressPubKeyHashFromPublicKey(serializedPubKey []byte, params *chaincfg.Params) (*AddressPubKeyHash, error) {
	return newAddressPubKeyHash(Hash160(serializedPubKey), params.PubKeyHashAddrID)
}

func newAddressPubKeyHash(pkHash []byte, netID byte) (*AddressPubKeyHash, error) {
	if len(pkHash) != hash160Size {
		return nil, errors.Wrapf(ErrInvalidFormat, "pkHash must be %d bytes, got %d", hash160Size, len(pkHash))
	}

	addr := &AddressPubKeyHash{netID: netID}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// EncodeAddress returns the Base58Check encoding of a P2PKH address.
// Part of the Address interface.
func (a *AddressPubKeyHash) EncodeAddress() string {
	return CheckEncode(a.hash[:], a.netID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a pubkey hash. Part of the Address interface.
func (a *AddressPubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether or not the pay-to-pubkey-hash address is associated
// with the passed network.
func (a *AddressPubKeyHash) IsForNet(params *chaincfg.Params) bool {
	return a.netID == params.PubKeyHashAddrID
}

// String returns a human-readable string for the pay-to-pubkey-hash address.
// This is equivalent to calling EncodeAddress, but is provided so the type can
// be used as a fmt.Stringer.
func (a *AddressPubKeyHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the pubkey hash.
func (a *AddressPubKeyHash) Hash160() *[hash160Size]byte {
	return &a.hash
}

// AddressScriptHash is an Address for a pay-to-script-hash (P2SH)
// transaction.
type AddressScriptHash struct {
	hash  [hash160Size]byte
	netID byte
}

// NewAddressScriptHash returns a new AddressScriptHash paying to the hash160
// of serializedScript, the raw serialization of a redeem script.
func NewAddressScriptHash(serializedScript []byte, params *chaincfg.Params) (*AddressScriptHash, error) {
	return newAddressScriptHashFromHash(Hash160(serializedScript), params.ScriptHashAddrID)
}

// NewAddressScriptHashFromHash returns a new AddressScriptHash. scriptHash
// must be 20 bytes.
func NewAddressScriptHashFromHash(scriptHash []byte, params *chaincfg.Params) (*AddressScriptHash, error) {
	return newAddressScriptHashFromHash(scriptHash, params.ScriptHashAddrID)
}

func newAddressScriptHashFromHash(scriptHash []byte, netID byte) (*AddressScriptHash, error) {
	if len(scriptHash) != hash160Size {
		return nil, errors.Wrapf(ErrInvalidFormat, "scriptHash must be %d bytes, got %d",
			hash160Size, len(scriptHash))
	}

	addr := &AddressScriptHash{netID: netID}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// EncodeAddress returns the Base58Check encoding of a P2SH address.
// Part of the Address interface.
func (a *AddressScriptHash) EncodeAddress() string {
	return CheckEncode(a.hash[:], a.netID)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a script hash. Part of the Address interface.
func (a *AddressScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether or not the pay-to-script-hash address is associated
// with the passed network.
func (a *AddressScriptHash) IsForNet(params *chaincfg.Params) bool {
	return a.netID == params.ScriptHashAddrID
}

// String returns a human-readable string for the pay-to-script-hash address.
func (a *AddressScriptHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the script hash.
func (a *AddressScriptHash) Hash160() *[hash160Size]byte {
	return &a.hash
}

// PayToAddrScript creates a new script to pay a transaction output to the
// specified address.
func PayToAddrScript(addr Address) (*txscript.Script, error) {
	switch addr := addr.(type) {
	case *AddressPubKeyHash:
		if addr == nil {
			return nil, errors.New("unable to generate payment script for nil address")
		}
		return txscript.PayToPubKeyHashScript(addr.ScriptAddress())
	case *AddressScriptHash:
		if addr == nil {
			return nil, errors.New("unable to generate payment script for nil address")
		}
		return txscript.PayToScriptHashScript(addr.ScriptAddress())
	}
	return nil, errors.Errorf("unable to generate payment script for unsupported address type %T", addr)
}

// ExtractAddress returns the address a standard P2PKH or P2SH script pays
// to. ok is false for any other script.
func ExtractAddress(script *txscript.Script, params *chaincfg.Params) (addr Address, ok bool) {
	switch class, hash := txscript.ExtractScriptHash(script); class {
	case txscript.PubKeyHashTy:
		a, err := NewAddressPubKeyHash(hash, params)
		return a, err == nil
	case txscript.ScriptHashTy:
		a, err := NewAddressScriptHashFromHash(hash, params)
		return a, err == nil
	}
	return nil, false
}
