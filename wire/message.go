// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

// MessageHeaderSize is the number of bytes in a message envelope header.
// Network (magic) 4 bytes + command 12 bytes + payload length 4 bytes +
// checksum 4 bytes.
const MessageHeaderSize = 24

// CommandSize is the fixed size of all commands in the common message
// envelope. Shorter commands must be zero padded.
const CommandSize = 12

// MaxMessagePayload is the maximum bytes a message can be regardless of other
// individual limits imposed by messages themselves.
const MaxMessagePayload = (1024 * 1024 * 32) // 32MB

// Commands used in message envelopes which describe the type of message.
const (
	CmdVersion    = "version"
	CmdVerAck     = "verack"
	CmdPing       = "ping"
	CmdPong       = "pong"
	CmdGetHeaders = "getheaders"
	CmdHeaders    = "headers"
	CmdTx         = "tx"
)

// Message is an interface that describes a bitcoin message. A type that
// implements Message has complete control over the representation of its data
// and may therefore contain additional or fewer fields than those which
// are used directly in the protocol encoded message.
type Message interface {
	BtcDecode(io.Reader, uint32) error
	BtcEncode(io.Writer, uint32) error
	Command() string
	MaxPayloadLength(uint32) uint32
}

// makeEmptyMessage creates a message of the appropriate concrete type based
// on the command.
func makeEmptyMessage(command string) (Message, error) {
	var msg Message
	switch command {
	case CmdVersion:
		msg = &MsgVersion{}

	case CmdVerAck:
		msg = &MsgVerAck{}

	case CmdPing:
		msg = &MsgPing{}

	case CmdPong:
		msg = &MsgPong{}

	case CmdGetHeaders:
		msg = &MsgGetHeaders{}

	case CmdHeaders:
		msg = &MsgHeaders{}

	case CmdTx:
		msg = &MsgTx{}

	default:
		return nil, errors.Errorf("unhandled command [%s]", command)
	}
	return msg, nil
}

// Envelope is the framing every network message travels in: the network
// magic, a command naming the payload, and the payload itself. The payload
// length and checksum are derived on serialization and validated on read.
type Envelope struct {
	Net     BitcoinNet
	Command string
	Payload []byte
}

// NewEnvelope wraps an already encoded payload.
func NewEnvelope(net BitcoinNet, command string, payload []byte) *Envelope {
	return &Envelope{Net: net, Command: command, Payload: payload}
}

// ReadEnvelope reads one envelope from r. It fails with ErrUnknownNetwork
// when the magic doesn't match net and with ErrInvalidChecksum when the
// payload doesn't hash to the announced checksum. An r that ends before
// any byte was read returns io.EOF unwrapped.
func ReadEnvelope(r io.Reader, net BitcoinNet) (*Envelope, error) {
	var headerBytes [MessageHeaderSize]byte
	_, err := io.ReadFull(r, headerBytes[:])
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.WithStack(err)
	}
	hr := bytes.NewReader(headerBytes[:])

	var magic BitcoinNet
	var command [CommandSize]byte
	var length uint32
	var checksum [4]byte
	err = readElement(hr, &magic)
	if err != nil {
		return nil, err
	}
	_, err = io.ReadFull(hr, command[:])
	if err != nil {
		return nil, errors.WithStack(err)
	}
	err = readElements(hr, &length, &checksum)
	if err != nil {
		return nil, err
	}

	if magic != net {
		return nil, errors.Wrapf(ErrUnknownNetwork, "got %s, want %s", magic, net)
	}

	cmd, err := parseCommand(command)
	if err != nil {
		return nil, err
	}

	// Enforce maximum message payload.
	if length > MaxMessagePayload {
		str := fmt.Sprintf("message payload is too large - header "+
			"indicates %d bytes, but max message payload is %d "+
			"bytes.", length, MaxMessagePayload)
		return nil, messageError("ReadEnvelope", str)
	}

	payload := make([]byte, length)
	_, err = io.ReadFull(r, payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	computed := hashes.Hash256(payload)
	if !bytes.Equal(computed[:4], checksum[:]) {
		return nil, errors.Wrapf(ErrInvalidChecksum, "command %s: got %x, want %x",
			cmd, checksum, computed[:4])
	}

	return &Envelope{Net: magic, Command: cmd, Payload: payload}, nil
}

// parseCommand strips the zero padding from a raw command and checks that
// what remains is printable ascii with nothing after the padding.
func parseCommand(raw [CommandSize]byte) (string, error) {
	end := bytes.IndexByte(raw[:], 0)
	if end == -1 {
		end = CommandSize
	}
	for _, b := range raw[end:] {
		if b != 0 {
			return "", messageError("ReadEnvelope", fmt.Sprintf(
				"command %q has data after its zero padding", raw))
		}
	}
	cmd := string(raw[:end])
	if !utf8.ValidString(cmd) {
		return "", messageError("ReadEnvelope", fmt.Sprintf(
			"invalid command %v", []byte(cmd)))
	}
	for _, c := range cmd {
		if c < 0x21 || c > 0x7e {
			return "", messageError("ReadEnvelope", fmt.Sprintf(
				"invalid command %v", []byte(cmd)))
		}
	}
	return cmd, nil
}

// Serialize writes the envelope to w.
func (e *Envelope) Serialize(w io.Writer) error {
	if len(e.Command) > CommandSize {
		str := fmt.Sprintf("command [%s] is too long [max %v]",
			e.Command, CommandSize)
		return messageError("Envelope.Serialize", str)
	}
	if len(e.Payload) > MaxMessagePayload {
		str := fmt.Sprintf("message payload is too large - encoded "+
			"%d bytes, but maximum message payload is %d bytes",
			len(e.Payload), MaxMessagePayload)
		return messageError("Envelope.Serialize", str)
	}

	var command [CommandSize]byte
	copy(command[:], e.Command)
	var checksum [4]byte
	copy(checksum[:], hashes.Hash256(e.Payload)[:4])

	// Encode the header into a buffer first so the envelope is written
	// with at most two calls to w.
	hw := bytes.NewBuffer(make([]byte, 0, MessageHeaderSize))
	err := writeElement(hw, e.Net)
	if err != nil {
		return err
	}
	hw.Write(command[:])
	err = writeElements(hw, uint32(len(e.Payload)), checksum)
	if err != nil {
		return err
	}

	_, err = w.Write(hw.Bytes())
	if err != nil {
		return errors.WithStack(err)
	}
	if len(e.Payload) > 0 {
		_, err = w.Write(e.Payload)
	}
	return errors.WithStack(err)
}

// Bytes returns the serialized envelope.
func (e *Envelope) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := e.Serialize(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stream returns a reader over the payload, for handing to a message's
// BtcDecode.
func (e *Envelope) Stream() io.Reader {
	return bytes.NewReader(e.Payload)
}

// String returns the command followed by the payload in hex.
func (e *Envelope) String() string {
	return fmt.Sprintf("%s: %s", e.Command, hex.EncodeToString(e.Payload))
}

// EncodeEnvelope encodes msg with pver and wraps it for net.
func EncodeEnvelope(msg Message, pver uint32, net BitcoinNet) (*Envelope, error) {
	var bw bytes.Buffer
	err := msg.BtcEncode(&bw, pver)
	if err != nil {
		return nil, err
	}
	payload := bw.Bytes()

	// Enforce maximum message payload based on the message type.
	mpl := msg.MaxPayloadLength(pver)
	if uint32(len(payload)) > mpl {
		str := fmt.Sprintf("message payload is too large - encoded "+
			"%d bytes, but maximum message payload size for "+
			"messages of type [%s] is %d.", len(payload), msg.Command(), mpl)
		return nil, messageError("EncodeEnvelope", str)
	}

	return NewEnvelope(net, msg.Command(), payload), nil
}

// DecodeMessage decodes the payload of e into the concrete message type
// named by its command.
func DecodeMessage(e *Envelope, pver uint32) (Message, error) {
	msg, err := makeEmptyMessage(e.Command)
	if err != nil {
		return nil, messageError("DecodeMessage", err.Error())
	}

	mpl := msg.MaxPayloadLength(pver)
	if uint32(len(e.Payload)) > mpl {
		str := fmt.Sprintf("payload exceeds max length - header "+
			"indicates %v bytes, but max payload size for "+
			"messages of type [%v] is %v.", len(e.Payload), e.Command, mpl)
		return nil, messageError("DecodeMessage", str)
	}

	err = msg.BtcDecode(e.Stream(), pver)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// WriteMessage writes a bitcoin Message to w including the necessary header
// information.
func WriteMessage(w io.Writer, msg Message, pver uint32, net BitcoinNet) error {
	envelope, err := EncodeEnvelope(msg, pver, net)
	if err != nil {
		return err
	}
	return envelope.Serialize(w)
}

// ReadMessage reads, validates, and parses the next bitcoin Message from r for
// the provided protocol version and bitcoin network. It returns the parsed
// Message and the envelope it arrived in.
func ReadMessage(r io.Reader, pver uint32, net BitcoinNet) (Message, *Envelope, error) {
	envelope, err := ReadEnvelope(r, net)
	if err != nil {
		return nil, nil, err
	}
	msg, err := DecodeMessage(envelope, pver)
	if err != nil {
		return nil, envelope, err
	}
	return msg, envelope, nil
}
