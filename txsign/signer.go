package txsign

import (
	"context"
	"math/big"

	"github.com/huynhtastic/programmingbitcoin/btcec"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/txscript"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

var (
	// ErrInputIndex is returned for an input index outside the transaction.
	ErrInputIndex = errors.New("input index out of range")

	// ErrOutputIndex is returned when an input spends an output its previous
	// transaction does not have.
	ErrOutputIndex = errors.New("previous output index out of range")

	// ErrMissingRedeemScript is returned when a pay-to-script-hash input has
	// no redeem script in its unlocking script.
	ErrMissingRedeemScript = errors.New("missing redeem script")

	// ErrVerifyFailed is returned by SignInput when the freshly signed input
	// does not verify.
	ErrVerifyFailed = errors.New("signed input failed verification")
)

// TxFetcher looks up a transaction by id.
type TxFetcher interface {
	Fetch(ctx context.Context, txID string, params *chaincfg.Params, fresh bool) (*wire.MsgTx, error)
}

// Signer signs and verifies transaction inputs on one network.
type Signer struct {
	fetcher TxFetcher
	params  *chaincfg.Params
}

// New returns a Signer that looks up previous transactions on params' network
// through fetcher.
func New(fetcher TxFetcher, params *chaincfg.Params) *Signer {
	return &Signer{
		fetcher: fetcher,
		params:  params,
	}
}

// prevOut returns the output spent by input idx of tx.
func (s *Signer) prevOut(ctx context.Context, tx *wire.MsgTx, idx int) (*wire.TxOut, error) {
	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, errors.Wrapf(ErrInputIndex, "input %d of %d", idx, len(tx.TxIn))
	}
	outPoint := tx.TxIn[idx].PreviousOutPoint
	prevTx, err := s.fetcher.Fetch(ctx, outPoint.Hash.String(), s.params, false)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch previous transaction of input %d", idx)
	}
	if int(outPoint.Index) >= len(prevTx.TxOut) {
		return nil, errors.Wrapf(ErrOutputIndex, "%s has %d outputs", outPoint, len(prevTx.TxOut))
	}
	return prevTx.TxOut[outPoint.Index], nil
}

// Value returns the amount held by the output input idx of tx spends.
func (s *Signer) Value(ctx context.Context, tx *wire.MsgTx, idx int) (int64, error) {
	out, err := s.prevOut(ctx, tx, idx)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// ScriptPubKey returns the locking script of the output input idx of tx
// spends.
func (s *Signer) ScriptPubKey(ctx context.Context, tx *wire.MsgTx, idx int) (*txscript.Script, error) {
	out, err := s.prevOut(ctx, tx, idx)
	if err != nil {
		return nil, err
	}
	return out.PkScript, nil
}

// Fee returns the sum of the spent outputs minus the sum of the new outputs.
// A negative fee means the transaction creates coins.
func (s *Signer) Fee(ctx context.Context, tx *wire.MsgTx) (int64, error) {
	var inputs, outputs int64
	for i := range tx.TxIn {
		value, err := s.Value(ctx, tx, i)
		if err != nil {
			return 0, err
		}
		inputs += value
	}
	for _, txOut := range tx.TxOut {
		outputs += txOut.Value
	}
	return inputs - outputs, nil
}

// SigHash returns the signature hash of input idx of tx. When redeem is nil
// the spent output's locking script is signed, otherwise redeem is.
func (s *Signer) SigHash(ctx context.Context, tx *wire.MsgTx, idx int, redeem *txscript.Script) (*big.Int, error) {
	subScript := redeem
	if subScript == nil {
		var err error
		subScript, err = s.ScriptPubKey(ctx, tx, idx)
		if err != nil {
			return nil, err
		}
	}
	return tx.SigHash(idx, subScript)
}

// redeemScript parses the last push of a pay-to-script-hash unlocking script.
func redeemScript(sigScript *txscript.Script) (*txscript.Script, error) {
	cmds := sigScript.Commands()
	if len(cmds) == 0 || !cmds[len(cmds)-1].IsData() {
		return nil, ErrMissingRedeemScript
	}
	redeem, err := txscript.ParseRaw(cmds[len(cmds)-1].Data())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redeem script")
	}
	return redeem, nil
}

// VerifyInput reports whether the unlocking script of input idx satisfies the
// output it spends. An error means the check could not be made.
func (s *Signer) VerifyInput(ctx context.Context, tx *wire.MsgTx, idx int) (bool, error) {
	scriptPubKey, err := s.ScriptPubKey(ctx, tx, idx)
	if err != nil {
		return false, err
	}
	txIn := tx.TxIn[idx]

	var redeem *txscript.Script
	if txscript.IsPayToScriptHash(scriptPubKey) {
		redeem, err = redeemScript(txIn.SignatureScript)
		if err != nil {
			log.Debugf("Input %d of %s: %s", idx, tx.TxID(), err)
			return false, nil
		}
	}

	z, err := s.SigHash(ctx, tx, idx, redeem)
	if err != nil {
		return false, err
	}

	combined := txIn.SignatureScript.Concat(scriptPubKey)
	txCtx := txscript.TxContext{
		Version:  uint32(tx.Version),
		LockTime: tx.LockTime,
		Sequence: txIn.Sequence,
	}
	ok := combined.EvaluateWithTxContext(z, txCtx)
	log.Tracef("Input %d of %s verified: %t", idx, tx.TxID(), ok)
	return ok, nil
}

// Verify reports whether tx does not create coins and every input verifies.
func (s *Signer) Verify(ctx context.Context, tx *wire.MsgTx) (bool, error) {
	fee, err := s.Fee(ctx, tx)
	if err != nil {
		return false, err
	}
	if fee < 0 {
		log.Debugf("Transaction %s has negative fee %d", tx.TxID(), fee)
		return false, nil
	}
	for i := range tx.TxIn {
		ok, err := s.VerifyInput(ctx, tx, i)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// SignInput signs input idx of tx, which must spend a pay-to-pubkey-hash
// output of key, and sets its unlocking script to the SIGHASH_ALL signature
// followed by the compressed public key. The input is verified afterwards and
// ErrVerifyFailed is returned when it does not pass.
func (s *Signer) SignInput(ctx context.Context, tx *wire.MsgTx, idx int, key *btcec.PrivateKey) error {
	z, err := s.SigHash(ctx, tx, idx, nil)
	if err != nil {
		return err
	}
	sig, err := key.Sign(z)
	if err != nil {
		return err
	}
	der := append(sig.Serialize(), byte(wire.SigHashAll))
	sec := key.PubKey().SerializeCompressed()
	tx.TxIn[idx].SignatureScript = txscript.NewScript(
		txscript.DataCommand(der),
		txscript.DataCommand(sec),
	)

	ok, err := s.VerifyInput(ctx, tx, idx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrVerifyFailed, "input %d", idx)
	}
	log.Debugf("Signed input %d of %s", idx, tx.TxID())
	return nil
}

// SignInputMultiSig produces a SIGHASH_ALL signature of input idx of tx over
// redeem, for combining into a pay-to-script-hash unlocking script with
// P2SHMultiSigScript.
func (s *Signer) SignInputMultiSig(ctx context.Context, tx *wire.MsgTx, idx int, redeem *txscript.Script,
	key *btcec.PrivateKey) ([]byte, error) {

	z, err := s.SigHash(ctx, tx, idx, redeem)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(z)
	if err != nil {
		return nil, err
	}
	return append(sig.Serialize(), byte(wire.SigHashAll)), nil
}

// P2SHMultiSigScript returns the unlocking script spending a bare multisig
// redeem script through pay-to-script-hash: OP_0, the signatures in key
// order, then the serialized redeem script.
func P2SHMultiSigScript(sigs [][]byte, redeem *txscript.Script) (*txscript.Script, error) {
	rawRedeem, err := redeem.RawSerialize()
	if err != nil {
		return nil, err
	}
	cmds := make([]txscript.Command, 0, len(sigs)+2)
	cmds = append(cmds, txscript.OpcodeCommand(txscript.Op0))
	for _, sig := range sigs {
		cmds = append(cmds, txscript.DataCommand(sig))
	}
	cmds = append(cmds, txscript.DataCommand(rawRedeem))
	return txscript.NewScript(cmds...), nil
}
