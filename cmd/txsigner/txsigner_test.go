package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"math/big"
	"net/http"
	"testing"

	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/txfetcher"
	"github.com/huynhtastic/programmingbitcoin/txscript"
	"github.com/huynhtastic/programmingbitcoin/txsign"
	"github.com/huynhtastic/programmingbitcoin/util"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

func TestParsePrivateKey(t *testing.T) {
	key, err := btcec.NewPrivateKey(big.NewInt(5003))
	require.NoError(t, err)

	wif, err := parsePrivateKey(" cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN8rFTv2sfUK\n", &chaincfg.TestNet3Params)
	require.NoError(t, err)
	require.Equal(t, 0, key.Secret().Cmp(wif.PrivKey.Secret()))

	_, err = parsePrivateKey("cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN8rFTv2sfUK", &chaincfg.MainNetParams)
	require.Error(t, err)

	uncompressed := util.EncodeWIF(key, &chaincfg.TestNet3Params, false)
	_, err = parsePrivateKey(uncompressed, &chaincfg.TestNet3Params)
	require.Error(t, err)

	_, err = parsePrivateKey("not a key", &chaincfg.TestNet3Params)
	require.Error(t, err)
}

func TestParseTransaction(t *testing.T) {
	_, err := parseTransaction("zz")
	require.Error(t, err)
	_, err = parseTransaction("0100000001")
	require.Error(t, err)
}

func TestSignTransaction(t *testing.T) {
	params := &chaincfg.TestNet3Params
	key, err := btcec.NewPrivateKey(big.NewInt(8675309))
	require.NoError(t, err)
	pkScript, err := txscript.PayToPubKeyHashScript(hashes.Hash160(key.PubKey().SerializeCompressed()))
	require.NoError(t, err)

	var funding hashes.Hash
	funding[31] = 0x17
	prevTx := wire.NewMsgTx(1)
	prevTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&funding, 3), nil))
	prevTx.AddTxOut(wire.NewTxOut(5000, pkScript))
	prevTx.AddTxOut(wire.NewTxOut(7000, pkScript))
	var buf bytes.Buffer
	require.NoError(t, prevTx.Serialize(&buf))

	url := params.TxAPIURL + "/tx/" + prevTx.TxID() + ".hex"
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, url,
		httpmock.NewStringResponder(http.StatusOK, hex.EncodeToString(buf.Bytes())))

	cache := txfetcher.NewMemoryCache(0)
	defer cache.Close()
	fetcher := txfetcher.New(&http.Client{Transport: transport}, cache)

	prevHash := prevTx.TxHash()
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, 0), nil))
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, 1), nil))
	tx.AddTxOut(wire.NewTxOut(11000, pkScript))

	serialized, err := serializeTransaction(tx)
	require.NoError(t, err)
	tx, err = parseTransaction(serialized)
	require.NoError(t, err)

	wif := util.NewWIF(key, params, true)
	signer := txsign.New(freshFetcher{fetcher: fetcher, fresh: false}, params)
	fee, err := signTransaction(context.Background(), signer, tx, wif)
	require.NoError(t, err)
	require.EqualValues(t, 1000, fee)
	require.Equal(t, 1, transport.GetTotalCallCount())

	// With fresh set every lookup goes to the network.
	signer = txsign.New(freshFetcher{fetcher: fetcher, fresh: true}, params)
	ok, err := signer.Verify(context.Background(), tx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Greater(t, transport.GetTotalCallCount(), 1)

	// A key not owning the outputs cannot sign them.
	otherKey, err := btcec.NewPrivateKey(big.NewInt(8675310))
	require.NoError(t, err)
	_, err = signTransaction(context.Background(), signer, tx, util.NewWIF(otherKey, params, true))
	require.Error(t, err)
}
