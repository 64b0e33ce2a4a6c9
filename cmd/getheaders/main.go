package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huynhtastic/programmingbitcoin/blockchain"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
	"github.com/huynhtastic/programmingbitcoin/infrastructure/os/signal"
	"github.com/huynhtastic/programmingbitcoin/peer"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/huynhtastic/programmingbitcoin/wire"
)

var log = logger.RegisterSubSystem("CNFG")

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(err, "Failed to parse arguments")
	}
	cfg.InitLogging("getheaders")
	defer logger.BackendLog.Close()

	params := cfg.NetParams()
	interruptCtx, stop := signal.InterruptContext(context.Background())
	defer stop()
	ctx, cancel := context.WithTimeout(interruptCtx, cfg.Timeout)
	defer cancel()

	node, err := peer.Dial(ctx, cfg.Peer, cfg.Port, params, cfg.SocksProxy())
	if err != nil {
		printErrorAndExit(err, "Failed to connect")
	}
	defer node.Close()

	// Unblock pending reads on interrupt.
	go func() {
		<-interruptCtx.Done()
		node.Close()
	}()

	err = node.SetDeadline(time.Now().Add(cfg.Timeout))
	if err != nil {
		printErrorAndExit(err, "Failed to set deadline")
	}
	err = node.Handshake()
	if err != nil {
		printErrorAndExit(err, "Handshake failed")
	}

	source := deadlineSource{node: node, timeout: cfg.Timeout}
	count, err := syncHeaders(source, params, cfg.Batches, os.Stdout)
	if err != nil {
		printErrorAndExit(err, "Failed to sync headers")
	}
	fmt.Printf("Validated %d headers\n", count)
}

// headerSource returns the block headers following a block.
type headerSource interface {
	GetHeaders(start *hashes.Hash) ([]*wire.BlockHeader, error)
}

// deadlineSource gives every request to node its own deadline.
type deadlineSource struct {
	node    *peer.Node
	timeout time.Duration
}

func (s deadlineSource) GetHeaders(start *hashes.Hash) ([]*wire.BlockHeader, error) {
	err := s.node.SetDeadline(time.Now().Add(s.timeout))
	if err != nil {
		return nil, err
	}
	return s.node.GetHeaders(start)
}

// syncHeaders requests up to batches runs of headers starting at the genesis
// block, checks that each run links to the previous one and has valid proof
// of work, and reports every difficulty change to out. It returns the number
// of headers validated.
func syncHeaders(source headerSource, params *chaincfg.Params, batches int, out io.Writer) (int, error) {
	prev := params.GenesisHeader
	count := 0
	for i := 0; i < batches; i++ {
		prevHash := prev.BlockHash()
		headers, err := source.GetHeaders(&prevHash)
		if err != nil {
			return count, err
		}
		if len(headers) == 0 {
			log.Infof("No headers after %s", prevHash)
			break
		}

		err = blockchain.CheckHeaderChain(prev, headers, params.PowLimit)
		if err != nil {
			return count, err
		}

		for _, header := range headers {
			count++
			if header.Bits != prev.Bits {
				fmt.Fprintf(out, "Height %d: %s difficulty %.2f\n",
					count, header.BlockHash(), blockchain.CalcDifficulty(header.Bits))
			}
			prev = header
		}
		log.Debugf("Validated headers up to height %d", count)
	}
	return count, nil
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
