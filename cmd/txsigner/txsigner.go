package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
	"github.com/huynhtastic/programmingbitcoin/infrastructure/os/signal"
	"github.com/huynhtastic/programmingbitcoin/txfetcher"
	"github.com/huynhtastic/programmingbitcoin/txsign"
	"github.com/huynhtastic/programmingbitcoin/util"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

var log = logger.RegisterSubSystem("CNFG")

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(err, "Failed to parse arguments")
	}
	cfg.InitLogging("txsigner")
	defer logger.BackendLog.Close()

	params := cfg.NetParams()
	wif, err := parsePrivateKey(cfg.PrivateKey, params)
	if err != nil {
		printErrorAndExit(err, "Failed to decode private key")
	}

	transaction, err := parseTransaction(cfg.Transaction)
	if err != nil {
		printErrorAndExit(err, "Failed to decode transaction")
	}

	cache, err := openCache(cfg)
	if err != nil {
		printErrorAndExit(err, "Failed to open transaction cache")
	}
	defer cache.Close()

	fetcher := txfetcher.New(httpClient(cfg), cache)
	signer := txsign.New(freshFetcher{fetcher: fetcher, fresh: cfg.Fresh}, params)

	interruptCtx, stop := signal.InterruptContext(context.Background())
	defer stop()
	ctx, cancel := context.WithTimeout(interruptCtx, cfg.Timeout)
	defer cancel()

	fee, err := signTransaction(ctx, signer, transaction, wif)
	if err != nil {
		printErrorAndExit(err, "Failed to sign transaction")
	}

	serializedTransaction, err := serializeTransaction(transaction)
	if err != nil {
		printErrorAndExit(err, "Failed to serialize transaction")
	}

	fmt.Printf("Transaction ID: %s\n", transaction.TxID())
	fmt.Printf("Fee: %s\n", util.Amount(fee))
	fmt.Printf("Signed Transaction (hex): %s\n\n", serializedTransaction)
}

func parsePrivateKey(privateKeyWIF string, params *chaincfg.Params) (*util.WIF, error) {
	wif, err := util.DecodeWIF(strings.TrimSpace(privateKeyWIF))
	if err != nil {
		return nil, err
	}
	if !wif.IsForNet(params) {
		return nil, errors.Errorf("private key is not for %s", params.Name)
	}
	if !wif.CompressPubKey {
		return nil, errors.New("only keys with compressed public keys are supported")
	}
	return wif, nil
}

func parseTransaction(transactionHex string) (*wire.MsgTx, error) {
	serializedTx, err := hex.DecodeString(strings.TrimSpace(transactionHex))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var transaction wire.MsgTx
	err = transaction.Deserialize(bytes.NewReader(serializedTx))
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func openCache(cfg *configFlags) (txfetcher.Cache, error) {
	if cfg.MemCache {
		return txfetcher.NewMemoryCache(0), nil
	}
	err := os.MkdirAll(cfg.CacheDir, 0700)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return txfetcher.NewLevelDBCache(cfg.CacheDir)
}

// httpClient returns the client the transaction API is queried with, dialing
// through the configured SOCKS5 proxy if any.
func httpClient(cfg *configFlags) *http.Client {
	client := &http.Client{Timeout: cfg.Timeout}
	proxy := cfg.SocksProxy()
	if proxy == nil {
		return client
	}
	log.Infof("Fetching transactions via proxy %s", proxy.Addr)
	client.Transport = &http.Transport{
		DialContext: func(_ context.Context, network, addr string) (net.Conn, error) {
			return proxy.Dial(network, addr)
		},
	}
	return client
}

// freshFetcher forwards to a Fetcher, bypassing its cache when fresh is set.
type freshFetcher struct {
	fetcher *txfetcher.Fetcher
	fresh   bool
}

func (f freshFetcher) Fetch(ctx context.Context, txID string, params *chaincfg.Params, fresh bool) (*wire.MsgTx, error) {
	return f.fetcher.Fetch(ctx, txID, params, fresh || f.fresh)
}

// signTransaction signs every input with wif's key, checks the result and
// returns its fee.
func signTransaction(ctx context.Context, signer *txsign.Signer, transaction *wire.MsgTx, wif *util.WIF) (int64, error) {
	for i := range transaction.TxIn {
		err := signer.SignInput(ctx, transaction, i, wif.PrivKey)
		if err != nil {
			return 0, errors.Wrapf(err, "input %d", i)
		}
	}

	ok, err := signer.Verify(ctx, transaction)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("signed transaction does not verify")
	}
	return signer.Fee(ctx, transaction)
}

func serializeTransaction(transaction *wire.MsgTx) (string, error) {
	buf := bytes.NewBuffer(make([]byte, 0, transaction.SerializeSize()))
	err := transaction.Serialize(buf)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
