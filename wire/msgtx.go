// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/huynhtastic/programmingbitcoin/txscript"
	"github.com/huynhtastic/programmingbitcoin/util/binaryserializer"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// SigHashAll is the only signature hash type supported: the signature
	// commits to every input and output.
	SigHashAll uint32 = 1

	// minTxInPayload is the minimum payload size for a transaction input.
	// PreviousOutPoint.Hash + PreviousOutPoint.Index 4 bytes + Varint for
	// SignatureScript length 1 byte + Sequence 4 bytes.
	minTxInPayload = 9 + hashes.HashSize

	// maxTxInPerMessage is the maximum number of transactions inputs that
	// a transaction which fits into a message could possibly have.
	maxTxInPerMessage = (MaxMessagePayload / minTxInPayload) + 1

	// minTxOutPayload is the minimum payload size for a transaction output.
	// Value 8 bytes + Varint for PkScript length 1 byte.
	minTxOutPayload = 9

	// maxTxOutPerMessage is the maximum number of transactions outputs that
	// a transaction which fits into a message could possibly have.
	maxTxOutPerMessage = (MaxMessagePayload / minTxOutPayload) + 1
)

// OutPoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  hashes.Hash
	Index uint32
}

// NewOutPoint returns a new bitcoin transaction outpoint point with the
// provided hash and index.
func NewOutPoint(hash *hashes.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the OutPoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  *txscript.Script
	Sequence         uint32
}

// NewTxIn returns a new bitcoin transaction input with the provided
// previous outpoint point and signature script with a default sequence of
// MaxTxInSequenceNum. A nil signatureScript is replaced by an empty script.
func NewTxIn(prevOut *OutPoint, signatureScript *txscript.Script) *TxIn {
	if signatureScript == nil {
		signatureScript = txscript.NewScript()
	}
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// String returns the spent outpoint.
func (t *TxIn) String() string {
	return t.PreviousOutPoint.String()
}

// TxOut defines a bitcoin transaction output.
type TxOut struct {
	Value    int64
	PkScript *txscript.Script
}

// NewTxOut returns a new bitcoin transaction output with the provided
// transaction value and public key script.
func NewTxOut(value int64, pkScript *txscript.Script) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// String returns the amount followed by the locking script.
func (t *TxOut) String() string {
	return fmt.Sprintf("%d:%s", t.Value, t.PkScript)
}

// MsgTx implements the Message interface and represents a bitcoin tx message.
// It is used to deliver transaction information in response to a getdata
// message (MsgGetData) for a given transaction.
//
// Use the AddTxIn and AddTxOut functions to build up the list of transaction
// inputs and outputs.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// TxHash generates the Hash for the transaction: the double sha256 of its
// serialization. Its String form is the transaction id.
func (msg *MsgTx) TxHash() hashes.Hash {
	// Deserialize only yields scripts that serialize back, so the only
	// failure left is a hand-built push over txscript.MaxScriptElementSize.
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return hashes.Hash256H(buf.Bytes())
}

// TxID returns the human-readable transaction id.
func (msg *MsgTx) TxID() string {
	hash := msg.TxHash()
	return hash.String()
}

// IsCoinbase determines whether or not a transaction is a coinbase. A
// coinbase is a special transaction created by miners that has no inputs.
// This is represented in the block chain by a transaction with a single
// input that has a previous output transaction index set to the maximum
// value along with a zero hash.
func (msg *MsgTx) IsCoinbase() bool {
	// A coinbase must only have one transaction input.
	if len(msg.TxIn) != 1 {
		return false
	}

	// The previous output of a coinbase must have a max value index and
	// a zero hash.
	prevOut := &msg.TxIn[0].PreviousOutPoint
	return prevOut.Index == MaxPrevOutIndex && prevOut.Hash.IsZero()
}

// CoinbaseHeight returns the block height committed to by a coinbase
// transaction: the little endian value of the first push of its signature
// script (BIP0034). ok is false when msg is not a coinbase or its first
// command is not a push of at most eight bytes.
func (msg *MsgTx) CoinbaseHeight() (height uint64, ok bool) {
	if !msg.IsCoinbase() {
		return 0, false
	}
	cmds := msg.TxIn[0].SignatureScript.Commands()
	if len(cmds) == 0 || !cmds[0].IsData() || len(cmds[0].Data()) > 8 {
		return 0, false
	}
	data := cmds[0].Data()
	for i := len(data) - 1; i >= 0; i-- {
		height = height<<8 | uint64(data[i])
	}
	return height, true
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated. Scripts are immutable and therefore
// shared.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	for _, oldTxIn := range msg.TxIn {
		newTxIn := *oldTxIn
		newTx.TxIn = append(newTx.TxIn, &newTxIn)
	}
	for _, oldTxOut := range msg.TxOut {
		newTxOut := *oldTxOut
		newTx.TxOut = append(newTx.TxOut, &newTxOut)
	}

	return &newTx
}

// SigHash returns the signature hash of input idx under SIGHASH_ALL: the
// transaction is serialized with every signature script emptied except the
// one at idx, which is replaced by subScript (the previous output's locking
// script, or the redeem script for pay-to-script-hash), followed by the hash
// type as four little endian bytes. The double sha256 of that is read as a
// big endian integer.
func (msg *MsgTx) SigHash(idx int, subScript *txscript.Script) (*big.Int, error) {
	if idx < 0 || idx >= len(msg.TxIn) {
		return nil, errors.Errorf("input index %d out of range [0, %d)", idx, len(msg.TxIn))
	}

	txCopy := msg.Copy()
	for i, txIn := range txCopy.TxIn {
		if i == idx {
			txIn.SignatureScript = subScript
		} else {
			txIn.SignatureScript = txscript.NewScript()
		}
	}

	w := hashes.NewDoubleHashWriter()
	err := txCopy.Serialize(w)
	if err != nil {
		return nil, err
	}
	err = binaryserializer.PutUint32(w, SigHashAll)
	if err != nil {
		return nil, err
	}
	hash := w.Finalize()
	return new(big.Int).SetBytes(hash[:]), nil
}

// BtcDecode decodes r using the bitcoin protocol encoding into the receiver.
// This is part of the Message interface implementation.
func (msg *MsgTx) BtcDecode(r io.Reader, pver uint32) error {
	err := readElement(r, &msg.Version)
	if err != nil {
		return err
	}

	count, err := binaryserializer.ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more input transactions than could possibly fit into a
	// message. It would be possible to cause memory exhaustion and panics
	// without a sane upper bound on this count.
	if count > uint64(maxTxInPerMessage) {
		str := fmt.Sprintf("too many input transactions to fit into "+
			"max message size [count %d, max %d]", count,
			maxTxInPerMessage)
		return messageError("MsgTx.BtcDecode", str)
	}

	msg.TxIn = make([]*TxIn, count)
	for i := uint64(0); i < count; i++ {
		ti := &TxIn{}
		err = readTxIn(r, pver, ti)
		if err != nil {
			return err
		}
		msg.TxIn[i] = ti
	}

	count, err = binaryserializer.ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more output transactions than could possibly fit into a
	// message.
	if count > uint64(maxTxOutPerMessage) {
		str := fmt.Sprintf("too many output transactions to fit into "+
			"max message size [count %d, max %d]", count,
			maxTxOutPerMessage)
		return messageError("MsgTx.BtcDecode", str)
	}

	msg.TxOut = make([]*TxOut, count)
	for i := uint64(0); i < count; i++ {
		to := &TxOut{}
		err = readTxOut(r, pver, to)
		if err != nil {
			return err
		}
		msg.TxOut[i] = to
	}

	return readElement(r, &msg.LockTime)
}

// Deserialize decodes a transaction from r into the receiver using a format
// that is suitable for long-term storage such as a database while respecting
// the Version field in the transaction.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	// At the current time, there is no difference between the wire encoding
	// at protocol version 0 and the stable long-term storage format. As
	// a result, make use of BtcDecode.
	return msg.BtcDecode(r, 0)
}

// BtcEncode encodes the receiver to w using the bitcoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgTx) BtcEncode(w io.Writer, pver uint32) error {
	err := writeElement(w, msg.Version)
	if err != nil {
		return err
	}

	err = binaryserializer.WriteVarInt(w, uint64(len(msg.TxIn)))
	if err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		err = writeTxIn(w, pver, ti)
		if err != nil {
			return err
		}
	}

	err = binaryserializer.WriteVarInt(w, uint64(len(msg.TxOut)))
	if err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		err = writeTxOut(w, pver, to)
		if err != nil {
			return err
		}
	}

	return writeElement(w, msg.LockTime)
}

// Serialize encodes the transaction to w using a format that suitable for
// long-term storage such as a database while respecting the Version field in
// the transaction.
func (msg *MsgTx) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, 0)
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction. Scripts that cannot be serialized count as empty.
func (msg *MsgTx) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + binaryserializer.VarIntSerializeSize(uint64(len(msg.TxIn))) +
		binaryserializer.VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		// Outpoint 36 bytes + Sequence 4 bytes.
		n += hashes.HashSize + 8 + scriptSerializeSize(txIn.SignatureScript)
	}
	for _, txOut := range msg.TxOut {
		// Value 8 bytes.
		n += 8 + scriptSerializeSize(txOut.PkScript)
	}
	return n
}

func scriptSerializeSize(script *txscript.Script) int {
	if script == nil {
		return 1
	}
	raw, err := script.RawSerialize()
	if err != nil {
		return 1
	}
	return binaryserializer.VarIntSerializeSize(uint64(len(raw))) + len(raw)
}

// Command returns the protocol command string for the message. This is part
// of the Message interface implementation.
func (msg *MsgTx) Command() string {
	return CmdTx
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the Message interface implementation.
func (msg *MsgTx) MaxPayloadLength(pver uint32) uint32 {
	return MaxMessagePayload
}

// String returns the id, version, inputs, outputs and lock time, one per
// line.
func (msg *MsgTx) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tx: %s\nversion: %d\ntx_ins:\n", msg.TxID(), msg.Version)
	for _, txIn := range msg.TxIn {
		fmt.Fprintf(&sb, "%s\n", txIn)
	}
	sb.WriteString("tx_outs:\n")
	for _, txOut := range msg.TxOut {
		fmt.Fprintf(&sb, "%s\n", txOut)
	}
	fmt.Fprintf(&sb, "locktime: %d", msg.LockTime)
	return sb.String()
}

// NewMsgTx returns a new bitcoin tx message that conforms to the Message
// interface. The return instance has a default version of TxVersion and there
// are no transaction inputs or outputs. Also, the lock time is set to zero
// to indicate the transaction is valid immediately as opposed to some time in
// future.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0),
		TxOut:   make([]*TxOut, 0),
	}
}

// readOutPoint reads the next sequence of bytes from r as an OutPoint.
func readOutPoint(r io.Reader, pver uint32, op *OutPoint) error {
	return readElements(r, &op.Hash, &op.Index)
}

// writeOutPoint encodes op to the bitcoin protocol encoding for an OutPoint
// to w.
func writeOutPoint(w io.Writer, pver uint32, op *OutPoint) error {
	return writeElements(w, &op.Hash, op.Index)
}

// readTxIn reads the next sequence of bytes from r as a transaction input
// (TxIn).
func readTxIn(r io.Reader, pver uint32, ti *TxIn) error {
	err := readOutPoint(r, pver, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	ti.SignatureScript, err = txscript.Parse(r)
	if err != nil {
		return err
	}

	return readElement(r, &ti.Sequence)
}

// writeTxIn encodes ti to the bitcoin protocol encoding for a transaction
// input (TxIn) to w.
func writeTxIn(w io.Writer, pver uint32, ti *TxIn) error {
	err := writeOutPoint(w, pver, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	err = writeScript(w, ti.SignatureScript)
	if err != nil {
		return err
	}

	return writeElement(w, ti.Sequence)
}

// readTxOut reads the next sequence of bytes from r as a transaction output
// (TxOut).
func readTxOut(r io.Reader, pver uint32, to *TxOut) error {
	err := readElement(r, &to.Value)
	if err != nil {
		return err
	}

	to.PkScript, err = txscript.Parse(r)
	return err
}

// writeTxOut encodes to into the bitcoin protocol encoding for a transaction
// output (TxOut) to w.
func writeTxOut(w io.Writer, pver uint32, to *TxOut) error {
	err := writeElement(w, to.Value)
	if err != nil {
		return err
	}
	return writeScript(w, to.PkScript)
}

// writeScript writes a length prefixed script, treating nil as empty.
func writeScript(w io.Writer, script *txscript.Script) error {
	if script == nil {
		return binaryserializer.WriteVarInt(w, 0)
	}
	return script.Serialize(w)
}
