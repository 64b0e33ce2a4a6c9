// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"bytes"
	"context"
	"net"
	"sync"
	"time"

	"github.com/btcsuite/go-socks/socks"
	"github.com/davecgh/go-spew/spew"
	"github.com/huynhtastic/programmingbitcoin/chaincfg"
	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/huynhtastic/programmingbitcoin/util/random"
	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/pkg/errors"
)

const (
	// defaultDialTimeout is used when the dial context has no deadline.
	defaultDialTimeout = 30 * time.Second
)

// Node is a connection to a single bitcoin peer.
type Node struct {
	conn   net.Conn
	params *chaincfg.Params
	pver   uint32

	writeMtx sync.Mutex
}

// New returns a Node speaking the protocol of params over conn.
func New(conn net.Conn, params *chaincfg.Params) *Node {
	return &Node{
		conn:   conn,
		params: params,
		pver:   wire.ProtocolVersion,
	}
}

// Dial connects to host:port on params' network and returns the Node. An
// empty host or port falls back to the network's default peer. When proxy
// is not nil the connection is made through that SOCKS5 proxy.
func Dial(ctx context.Context, host, port string, params *chaincfg.Params, proxy *socks.Proxy) (*Node, error) {
	if host == "" {
		host = params.DefaultPeerHost
	}
	if port == "" {
		port = params.DefaultPort
	}
	addr := net.JoinHostPort(host, port)

	var conn net.Conn
	var err error
	if proxy != nil {
		timeout := defaultDialTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		log.Debugf("Connecting to %s via proxy %s", addr, proxy.Addr)
		conn, err = proxy.DialTimeout("tcp", addr, timeout)
	} else {
		log.Debugf("Connecting to %s", addr)
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", addr)
	}
	return New(conn, params), nil
}

// String returns the remote address of the node.
func (n *Node) String() string {
	return n.conn.RemoteAddr().String()
}

// Close closes the underlying connection.
func (n *Node) Close() error {
	return n.conn.Close()
}

// SetDeadline sets the read and write deadline of the underlying connection.
func (n *Node) SetDeadline(t time.Time) error {
	return n.conn.SetDeadline(t)
}

// Send encodes msg into an envelope for the node's network and writes it.
func (n *Node) Send(msg wire.Message) error {
	envelope, err := wire.EncodeEnvelope(msg, n.pver, n.params.Net)
	if err != nil {
		return err
	}

	log.Debugf("Sending %s to %s", msg.Command(), n)
	log.Tracef("%s", logger.NewLogClosure(func() string {
		return spew.Sdump(msg)
	}))

	var buf bytes.Buffer
	err = envelope.Serialize(&buf)
	if err != nil {
		return err
	}

	n.writeMtx.Lock()
	defer n.writeMtx.Unlock()
	_, err = n.conn.Write(buf.Bytes())
	return errors.WithStack(err)
}

// Read returns the next envelope from the node without decoding its
// payload.
func (n *Node) Read() (*wire.Envelope, error) {
	envelope, err := wire.ReadEnvelope(n.conn, n.params.Net)
	if err != nil {
		return nil, err
	}
	log.Debugf("Received %s (%d bytes) from %s", envelope.Command, len(envelope.Payload), n)
	return envelope, nil
}

// WaitFor reads envelopes until one carries one of commands and returns its
// decoded message. Version messages are answered with verack and pings with
// pong along the way; everything else is discarded.
func (n *Node) WaitFor(commands ...string) (wire.Message, error) {
	wanted := make(map[string]struct{}, len(commands))
	for _, command := range commands {
		wanted[command] = struct{}{}
	}

	for {
		envelope, err := n.Read()
		if err != nil {
			return nil, err
		}

		if _, ok := wanted[envelope.Command]; ok {
			msg, err := wire.DecodeMessage(envelope, n.pver)
			if err != nil {
				return nil, err
			}
			log.Tracef("%s", logger.NewLogClosure(func() string {
				return spew.Sdump(msg)
			}))
			return msg, nil
		}

		switch envelope.Command {
		case wire.CmdVersion:
			err = n.Send(wire.NewMsgVerAck())
		case wire.CmdPing:
			var msg wire.Message
			msg, err = wire.DecodeMessage(envelope, n.pver)
			if err != nil {
				return nil, err
			}
			err = n.Send(wire.NewMsgPong(msg.(*wire.MsgPing).Nonce))
		default:
			log.Tracef("Ignoring %s from %s", envelope.Command, n)
		}
		if err != nil {
			return nil, err
		}
	}
}

// Handshake sends a version message and waits for the peer's verack.
func (n *Node) Handshake() error {
	nonce, err := random.Uint64()
	if err != nil {
		return err
	}
	err = n.Send(wire.NewDefaultMsgVersion(nonce))
	if err != nil {
		return err
	}
	_, err = n.WaitFor(wire.CmdVerAck)
	if err != nil {
		return errors.Wrapf(err, "handshake with %s failed", n)
	}
	log.Infof("Connected to %s", n)
	return nil
}

// GetHeaders asks for the headers following start and waits for them.
func (n *Node) GetHeaders(start *hashes.Hash) ([]*wire.BlockHeader, error) {
	err := n.Send(wire.NewMsgGetHeaders(start))
	if err != nil {
		return nil, err
	}
	msg, err := n.WaitFor(wire.CmdHeaders)
	if err != nil {
		return nil, err
	}
	headers := msg.(*wire.MsgHeaders).Headers
	log.Debugf("Received %d headers after %s from %s", len(headers), start, n)
	return headers, nil
}

// Ping sends a ping with a random nonce and waits for the matching pong.
func (n *Node) Ping() error {
	nonce, err := random.Uint64()
	if err != nil {
		return err
	}
	err = n.Send(wire.NewMsgPing(nonce))
	if err != nil {
		return err
	}
	for {
		msg, err := n.WaitFor(wire.CmdPong)
		if err != nil {
			return err
		}
		pong := msg.(*wire.MsgPong)
		if pong.Nonce == nonce {
			return nil
		}
		log.Debugf("Ignoring pong %d from %s, expected %d", pong.Nonce, n, nonce)
	}
}
