package main

import (
	"github.com/huynhtastic/programmingbitcoin/config"
	"github.com/jessevdk/go-flags"
)

type configFlags struct {
	Transaction string `long:"transaction" short:"t" description:"Unsigned transaction in HEX format" required:"true"`
	PrivateKey  string `long:"private-key" short:"p" description:"Private key in WIF format" required:"true"`
	Fresh       bool   `long:"fresh" description:"Ignore cached previous transactions"`
	config.CommonFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		CommonFlags: config.DefaultCommonFlags(),
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	err = cfg.ResolveCommonFlags(parser)
	return cfg, err
}
