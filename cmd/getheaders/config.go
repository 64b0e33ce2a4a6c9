package main

import (
	"github.com/huynhtastic/programmingbitcoin/config"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const defaultBatches = 1

type configFlags struct {
	Peer    string `long:"peer" description:"Host of the peer to connect to, defaults to the network's default peer"`
	Port    string `long:"port" description:"Port of the peer, defaults to the network's default port"`
	Batches int    `long:"batches" description:"Number of getheaders requests to make"`
	config.CommonFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		Batches:     defaultBatches,
		CommonFlags: config.DefaultCommonFlags(),
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	err = cfg.ResolveCommonFlags(parser)
	if err != nil {
		return nil, err
	}

	if cfg.Batches <= 0 {
		return nil, errors.Errorf("--batches must be positive, got %d", cfg.Batches)
	}
	return cfg, nil
}
