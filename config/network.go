package config

import (
	"fmt"
	"os"

	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	TestNet bool   `long:"testnet" description:"Use the test network"`
	Net     string `long:"net" description:"Name of the network to use {mainnet, testnet3}"`

	ActiveNetParams *chaincfg.Params
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// ActiveNetParams holds the selected network parameters. Default value is main-net.
	networkFlags.ActiveNetParams = &chaincfg.MainNetParams

	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.TestNet {
		numNets++
		networkFlags.ActiveNetParams = &chaincfg.TestNet3Params
	}
	if networkFlags.Net != "" {
		params, err := chaincfg.ParamsForName(networkFlags.Net)
		if err != nil {
			return err
		}
		// --testnet --net=testnet3 names a single network.
		if params != networkFlags.ActiveNetParams {
			numNets++
		}
		networkFlags.ActiveNetParams = params
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, net) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		fmt.Fprintln(os.Stderr, err)
		if parser != nil {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	log.Debugf("Using network %s", networkFlags.ActiveNetParams.Name)
	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}
