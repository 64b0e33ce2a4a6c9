package main

import (
	"github.com/huynhtastic/programmingbitcoin/config"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type configFlags struct {
	NewMnemonic  bool   `long:"new-mnemonic" description:"Generate a new BIP39 mnemonic and derive the key from it"`
	Mnemonic     string `short:"m" long:"mnemonic" description:"Derive the key from this BIP39 mnemonic"`
	Passphrase   string `long:"passphrase" default-mask:"-" description:"BIP39 passphrase used with the mnemonic"`
	Uncompressed bool   `long:"uncompressed" description:"Use the uncompressed SEC public key"`
	config.NetworkFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.HelpFlag)
	parser.Usage = "genaddr [OPTIONS]\n\nWithout --mnemonic or --new-mnemonic a random key is generated."
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if cfg.NewMnemonic && cfg.Mnemonic != "" {
		return nil, errors.New("--new-mnemonic and --mnemonic cannot be used together")
	}
	if cfg.Passphrase != "" && !cfg.NewMnemonic && cfg.Mnemonic == "" {
		return nil, errors.New("--passphrase requires a mnemonic")
	}
	return cfg, nil
}
