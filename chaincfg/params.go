// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"strings"

	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

var (
	// bigOne is 1 represented as a big.Int. It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a Bitcoin block can
	// have for the main network. It is the value 2^224 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
)

// Params defines a Bitcoin network by its parameters. These parameters may be
// used by Bitcoin applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DefaultPeerHost is the node connected to when none is given.
	DefaultPeerHost string

	// TxAPIURL is the base URL of the service raw transactions are fetched
	// from, as <TxAPIURL>/tx/<id>.hex.
	TxAPIURL string

	// GenesisHeader defines the header of the first block of the chain.
	GenesisHeader *wire.BlockHeader

	// GenesisHash is the starting block hash.
	GenesisHash *hashes.Hash

	// GenesisCoinbaseTx is the only transaction of the genesis block.
	GenesisCoinbaseTx *wire.MsgTx

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// Address encoding magics
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address
	PrivateKeyID     byte // First byte of a WIF private key
}

// MainNetParams defines the network parameters for the main Bitcoin network.
var MainNetParams = Params{
	Name:            "mainnet",
	Net:             wire.MainNet,
	DefaultPort:     "8333",
	DefaultPeerHost: "mainnet.programmingbitcoin.com",
	TxAPIURL:        "http://mainnet.programmingbitcoin.com",

	// Chain parameters
	GenesisHeader:     &genesisHeader,
	GenesisHash:       &genesisHash,
	GenesisCoinbaseTx: &genesisCoinbaseTx,
	PowLimit:          mainPowLimit,
	PowLimitBits:      0x1d00ffff,

	// Address encoding magics
	PubKeyHashAddrID: 0x00, // starts with 1
	ScriptHashAddrID: 0x05, // starts with 3
	PrivateKeyID:     0x80, // starts with 5 (uncompressed) or K (compressed)
}

// TestNet3Params defines the network parameters for the test Bitcoin network
// (version 3). Not to be confused with the regression test network, this
// network is sometimes simply called "testnet".
var TestNet3Params = Params{
	Name:            "testnet3",
	Net:             wire.TestNet3,
	DefaultPort:     "18333",
	DefaultPeerHost: "testnet.programmingbitcoin.com",
	TxAPIURL:        "http://testnet.programmingbitcoin.com",

	// Chain parameters
	GenesisHeader:     &testNet3GenesisHeader,
	GenesisHash:       &testNet3GenesisHash,
	GenesisCoinbaseTx: &genesisCoinbaseTx,
	PowLimit:          mainPowLimit,
	PowLimitBits:      0x1d00ffff,

	// Address encoding magics
	PubKeyHashAddrID: 0x6f, // starts with m or n
	ScriptHashAddrID: 0xc4, // starts with 2
	PrivateKeyID:     0xef, // starts with 9 (uncompressed) or c (compressed)
}

var (
	// ErrDuplicateNet describes an error where the parameters for a Bitcoin
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate Bitcoin network")

	// ErrUnknownNet describes an error where the parameters for a network
	// were requested by a name or magic that was never registered.
	ErrUnknownNet = errors.New("unknown Bitcoin network")
)

var (
	registeredNets    = make(map[wire.BitcoinNet]*Params)
	pubKeyHashAddrIDs = make(map[byte]struct{})
	scriptHashAddrIDs = make(map[byte]struct{})
)

// Register registers the network parameters for a Bitcoin network. This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks).
//
// Network parameters should be registered into this package by a main package
// as early as possible. Then, library packages may lookup networks or network
// parameters based on inputs and work regardless of the network being standard
// or not.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return errors.Wrapf(ErrDuplicateNet, "%s", params.Net)
	}
	registeredNets[params.Net] = params
	pubKeyHashAddrIDs[params.PubKeyHashAddrID] = struct{}{}
	scriptHashAddrIDs[params.ScriptHashAddrID] = struct{}{}
	return nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// IsPubKeyHashAddrID returns whether the id is an identifier known to prefix a
// pay-to-pubkey-hash address on any default or registered network.
func IsPubKeyHashAddrID(id byte) bool {
	_, ok := pubKeyHashAddrIDs[id]
	return ok
}

// IsScriptHashAddrID returns whether the id is an identifier known to prefix a
// pay-to-script-hash address on any default or registered network.
func IsScriptHashAddrID(id byte) bool {
	_, ok := scriptHashAddrIDs[id]
	return ok
}

// ParamsForNet returns the registered parameters of the network identified
// by net.
func ParamsForNet(net wire.BitcoinNet) (*Params, error) {
	params, ok := registeredNets[net]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "%s", net)
	}
	return params, nil
}

// ParamsForName returns the registered parameters of the network with the
// given name, ignoring case.
func ParamsForName(name string) (*Params, error) {
	for _, params := range registeredNets {
		if strings.EqualFold(params.Name, name) {
			return params, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownNet, "%q", name)
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainNetParams)
	mustRegister(&TestNet3Params)
}
