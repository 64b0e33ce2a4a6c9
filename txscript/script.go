// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"

	"github.com/huynhtastic/programmingbitcoin/util/binaryserializer"
	"github.com/pkg/errors"
)

const (
	// MaxScriptElementSize is the largest data push a script may hold.
	MaxScriptElementSize = 520

	// MaxScriptSize is the largest serialized script Parse accepts.
	MaxScriptSize = 10000

	// maxInlinePushLen is the largest push encoded by its length byte
	// alone, without a OP_PUSHDATA prefix.
	maxInlinePushLen = 75
)

// Command is a single element of a script: either an opcode or a data push.
type Command struct {
	opcode byte
	data   []byte
	isData bool
}

// OpcodeCommand returns a command executing op.
func OpcodeCommand(op byte) Command {
	return Command{opcode: op}
}

// DataCommand returns a command pushing data onto the stack.
func DataCommand(data []byte) Command {
	return Command{data: data, isData: true}
}

// IsData returns whether the command is a data push.
func (c Command) IsData() bool {
	return c.isData
}

// Opcode returns the opcode of an opcode command. It returns Op0 for data
// pushes.
func (c Command) Opcode() byte {
	return c.opcode
}

// Data returns the pushed bytes of a data command, or nil for opcodes.
func (c Command) Data() []byte {
	return c.data
}

// isOpcode returns whether c executes op.
func (c Command) isOpcode(op byte) bool {
	return !c.isData && c.opcode == op
}

// String returns the opcode name or the hex encoding of the pushed data.
func (c Command) String() string {
	if c.isData {
		return hex.EncodeToString(c.data)
	}
	return opcodeArray[c.opcode].name
}

// Script is an ordered list of commands.
type Script struct {
	cmds []Command
}

// NewScript returns a script executing cmds in order.
func NewScript(cmds ...Command) *Script {
	return &Script{cmds: append([]Command(nil), cmds...)}
}

// Commands returns a copy of the script's commands.
func (s *Script) Commands() []Command {
	return append([]Command(nil), s.cmds...)
}

// Len returns the number of commands in the script.
func (s *Script) Len() int {
	return len(s.cmds)
}

// Concat returns a new script running s followed by other. This is how an
// unlock script is combined with the lock script it spends.
func (s *Script) Concat(other *Script) *Script {
	cmds := make([]Command, 0, len(s.cmds)+len(other.cmds))
	cmds = append(cmds, s.cmds...)
	cmds = append(cmds, other.cmds...)
	return &Script{cmds: cmds}
}

// String returns the commands separated by spaces, opcodes by name and
// pushes in hex.
func (s *Script) String() string {
	parts := make([]string, len(s.cmds))
	for i, cmd := range s.cmds {
		parts[i] = cmd.String()
	}
	return strings.Join(parts, " ")
}

// Parse reads a length-prefixed script from r.
func Parse(r io.Reader) (*Script, error) {
	length, err := binaryserializer.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length > MaxScriptSize {
		return nil, errors.Wrapf(ErrMalformedScript, "script length %d exceeds the max "+
			"allowed of %d", length, MaxScriptSize)
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, errors.WithStack(err)
	}
	return ParseRaw(raw)
}

// ParseRaw parses a script without its length prefix.
//
// Bytes 0x01 to 0x4b push that many following bytes. OP_PUSHDATA1,
// OP_PUSHDATA2 and OP_PUSHDATA4 push the number of bytes given by the
// little-endian length that follows them. Any other byte is an opcode. A
// push that runs past the end of the script or is larger than
// MaxScriptElementSize returns ErrMalformedScript, so every parsed script
// serializes back to the same bytes.
func ParseRaw(raw []byte) (*Script, error) {
	var cmds []Command
	for i := 0; i < len(raw); {
		op := raw[i]
		i++

		var dataLen, prefixLen int
		switch {
		case op >= OpData1 && op <= OpData75:
			dataLen = int(op)
		case op == OpPushData1:
			prefixLen = 1
		case op == OpPushData2:
			prefixLen = 2
		case op == OpPushData4:
			prefixLen = 4
		default:
			cmds = append(cmds, OpcodeCommand(op))
			continue
		}

		if prefixLen > 0 {
			if prefixLen > len(raw)-i {
				return nil, errors.Wrapf(ErrMalformedScript, "%s at offset %d is missing "+
					"its length", opcodeArray[op].name, i-1)
			}
			for j := prefixLen - 1; j >= 0; j-- {
				dataLen = dataLen<<8 | int(raw[i+j])
			}
			i += prefixLen
		}

		if dataLen > MaxScriptElementSize {
			return nil, errors.Wrapf(ErrMalformedScript, "push of %d bytes at offset %d "+
				"exceeds the max allowed of %d", dataLen, i, MaxScriptElementSize)
		}
		if dataLen < 0 || dataLen > len(raw)-i {
			return nil, errors.Wrapf(ErrMalformedScript, "push of %d bytes at offset %d "+
				"exceeds the remaining %d bytes", dataLen, i, len(raw)-i)
		}
		data := make([]byte, dataLen)
		copy(data, raw[i:i+dataLen])
		cmds = append(cmds, DataCommand(data))
		i += dataLen
	}
	return &Script{cmds: cmds}, nil
}

// RawSerialize returns the script's bytes without a length prefix.
//
// Empty pushes are encoded as OP_0, pushes of up to 75 bytes by their
// length, and longer pushes with OP_PUSHDATA1 or OP_PUSHDATA2. Pushes larger
// than MaxScriptElementSize return ErrMalformedScript.
func (s *Script) RawSerialize() ([]byte, error) {
	var buf bytes.Buffer
	for _, cmd := range s.cmds {
		if !cmd.isData {
			buf.WriteByte(cmd.opcode)
			continue
		}

		dataLen := len(cmd.data)
		switch {
		case dataLen == 0:
			buf.WriteByte(Op0)
		case dataLen <= maxInlinePushLen:
			buf.WriteByte(byte(dataLen))
		case dataLen <= 0xff:
			buf.WriteByte(OpPushData1)
			buf.WriteByte(byte(dataLen))
		case dataLen <= MaxScriptElementSize:
			buf.WriteByte(OpPushData2)
			buf.WriteByte(byte(dataLen))
			buf.WriteByte(byte(dataLen >> 8))
		default:
			return nil, errors.Wrapf(ErrMalformedScript, "push of %d bytes exceeds the max "+
				"allowed of %d", dataLen, MaxScriptElementSize)
		}
		buf.Write(cmd.data)
	}
	return buf.Bytes(), nil
}

// Serialize writes the script to w prefixed by its varint length.
func (s *Script) Serialize(w io.Writer) error {
	raw, err := s.RawSerialize()
	if err != nil {
		return err
	}
	if err := binaryserializer.WriteVarInt(w, uint64(len(raw))); err != nil {
		return err
	}
	_, err = w.Write(raw)
	return errors.WithStack(err)
}

// Bytes returns the length-prefixed serialization of the script.
func (s *Script) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
