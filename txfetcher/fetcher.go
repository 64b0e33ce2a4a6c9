package txfetcher

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/util/binaryserializer"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

var (
	// ErrUnexpectedResponse is returned when the transaction API answers
	// with a non-OK status or a body that is not a hex encoded transaction.
	ErrUnexpectedResponse = errors.New("unexpected response from transaction API")

	// ErrTxIDMismatch is returned when the transaction served by the API
	// does not hash to the requested id.
	ErrTxIDMismatch = errors.New("fetched transaction does not match the requested id")
)

// maxResponseSize bounds the hex body read from the transaction API.
const maxResponseSize = 2 * wire.MaxMessagePayload

// Fetcher fetches raw transactions by id from the transaction API of a
// network, keeping them in a Cache. It is safe for concurrent use when its
// cache is.
type Fetcher struct {
	client *http.Client
	cache  Cache
}

// New returns a Fetcher using client for requests and cache to keep
// fetched transactions. A nil client means http.DefaultClient.
func New(client *http.Client, cache Cache) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, cache: cache}
}

// Fetch returns the transaction txID of the network described by params.
// Cached transactions are served without a request unless fresh is set.
// Every call returns a new MsgTx, so callers may modify it freely.
func (f *Fetcher) Fetch(ctx context.Context, txID string, params *chaincfg.Params, fresh bool) (*wire.MsgTx, error) {
	txID = strings.ToLower(txID)
	if _, err := hashes.NewHashFromStr(txID); err != nil || len(txID) != hashes.MaxHashStringSize {
		return nil, errors.Errorf("invalid transaction id %q", txID)
	}
	key := CacheKey{Net: params.Net, TxID: txID}

	if !fresh {
		raw, found, err := f.cache.Get(key)
		if err != nil {
			return nil, err
		}
		if found {
			log.Tracef("Transaction %s served from the cache", txID)
			return deserializeTx(raw)
		}
	}

	raw, err := f.request(ctx, fmt.Sprintf("%s/tx/%s.hex", params.TxAPIURL, txID))
	if err != nil {
		return nil, err
	}
	tx, err := parseFetchedTx(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrUnexpectedResponse, "transaction %s: %s", txID, err)
	}
	if tx.TxID() != txID {
		return nil, errors.Wrapf(ErrTxIDMismatch, "requested %s, got %s", txID, tx.TxID())
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}
	if err := f.cache.Put(key, buf.Bytes()); err != nil {
		return nil, err
	}
	log.Debugf("Fetched transaction %s from %s", txID, params.TxAPIURL)
	return tx, nil
}

// request performs a GET of url and returns the decoded hex body.
func (f *Fetcher) request(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s", url)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request %s failed", url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response of %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnexpectedResponse, "%s returned status code %d: %s",
			url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := hex.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, errors.Wrapf(ErrUnexpectedResponse, "%s returned a body that is not hex: %s", url, err)
	}
	return raw, nil
}

// parseFetchedTx decodes a transaction as served by the API. Segwit
// transactions carry a zero marker byte in place of the input count; the
// marker and flag are dropped and the lock time is taken from the last four
// bytes, which yields the legacy transaction the id commits to.
func parseFetchedTx(raw []byte) (*wire.MsgTx, error) {
	if len(raw) > 4 && raw[4] == 0 {
		if len(raw) < 10 {
			return nil, errors.Errorf("segwit transaction of %d bytes", len(raw))
		}
		stripped := make([]byte, 0, len(raw)-2)
		stripped = append(stripped, raw[:4]...)
		stripped = append(stripped, raw[6:]...)

		tx, err := deserializeTx(stripped)
		if err != nil {
			return nil, err
		}
		tx.LockTime, err = binaryserializer.Uint32(bytes.NewReader(stripped[len(stripped)-4:]))
		if err != nil {
			return nil, err
		}
		return tx, nil
	}
	return deserializeTx(raw)
}

func deserializeTx(raw []byte) (*wire.MsgTx, error) {
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrap(err, "failed to decode transaction")
	}
	return &tx, nil
}
