// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package peer provides a minimal bitcoin peer connection for light clients.

A Node wraps a single net.Conn and exchanges wire envelopes over it
synchronously: Send writes a message, Read returns the next envelope, and
WaitFor reads until one of the given commands arrives. While waiting, a Node
answers version messages with verack and ping messages with pong so that the
remote peer keeps the connection open.

	node, err := peer.Dial(ctx, "", "", &chaincfg.TestNet3Params, nil)
	if err != nil {
		return err
	}
	defer node.Close()
	if err := node.Handshake(); err != nil {
		return err
	}

A Node is safe for one reader and any number of concurrent senders.
*/
package peer
