package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/util"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// mnemonicEntropyBits gives a 24 word mnemonic.
const mnemonicEntropyBits = 256

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(err, "Failed to parse arguments")
	}

	mnemonic := cfg.Mnemonic
	if cfg.NewMnemonic {
		mnemonic, err = createMnemonic()
		if err != nil {
			printErrorAndExit(err, "Failed to create mnemonic")
		}
		fmt.Printf("Mnemonic: %s\n", mnemonic)
	}

	var privateKey *btcec.PrivateKey
	if mnemonic != "" {
		privateKey, err = keyFromMnemonic(mnemonic, cfg.Passphrase)
	} else {
		privateKey, err = btcec.GeneratePrivateKey()
	}
	if err != nil {
		printErrorAndExit(err, "Failed to generate private key")
	}

	err = printKey(privateKey, cfg.NetParams(), !cfg.Uncompressed)
	if err != nil {
		printErrorAndExit(err, "Failed to encode key")
	}
}

func createMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// keyFromMnemonic derives a private key from the double sha256 of the
// mnemonic's BIP39 seed.
func keyFromMnemonic(mnemonic, passphrase string) (*btcec.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	return btcec.PrivKeyFromBytes(hashes.Hash256(seed))
}

func printKey(privateKey *btcec.PrivateKey, params *chaincfg.Params, compressed bool) error {
	serializedPubKey := privateKey.PubKey().Serialize(compressed)
	address, err := util.NewAddressPubKeyHashFromPublicKey(serializedPubKey, params)
	if err != nil {
		return err
	}

	fmt.Printf("Network: %s\n", params.Name)
	fmt.Printf("Secret (hex): %s\n", privateKey.Hex())
	fmt.Printf("Private key (WIF): %s\n", util.EncodeWIF(privateKey, params, compressed))
	fmt.Printf("Public key (SEC): %s\n", hex.EncodeToString(serializedPubKey))
	fmt.Printf("Address: %s\n", address.EncodeAddress())
	return nil
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
