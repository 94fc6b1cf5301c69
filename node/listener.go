package node

import (
	"errors"
	"net"
	"strconv"

	"hsring/wire"
)

// listen binds the node's TCP listener on loopback:basePort+index.
func (rt *Runtime) listen() error {
	var addr = net.JoinHostPort("127.0.0.1", strconv.Itoa(rt.basePort+rt.pos.index))

	var l, err = net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	rt.listener = l
	return nil
}

// acceptLoop accepts connections until the node shuts down. Each accepted
// connection is served by its own goroutine, so multiple inbound
// connections are read concurrently.
func (rt *Runtime) acceptLoop() {
	for {
		var conn, err = rt.listener.Accept()
		if err != nil {
			if rt.shuttingDown.Load() {
				return
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			rt.logger.Warn("accept error, continuing", "node_id", rt.uid, "error", err)
			continue
		}

		go rt.serveConn(conn)
	}
}

// serveConn reads UTF-8 newline-delimited JSON lines off conn until EOF or
// error, enqueuing each successfully parsed message onto the inbox.
// Malformed lines are silently dropped by wire.ReadLines.
func (rt *Runtime) serveConn(conn net.Conn) {
	defer conn.Close()

	wire.ReadLines(conn, func(m wire.Message) {
		var side = wire.ResolveSide(m.SenderIndexOrDefault(-1), rt.pos.leftIndex, rt.pos.rightIndex)
		if side == wire.SideUnknown {
			rt.logger.Warn("message from unrecognized sender index",
				"node_id", rt.uid, "type", m.Type, "sender_index", m.SenderIndexOrDefault(-1))
		}
		rt.inbox.push(wire.Envelope{Msg: m, Side: side})
	})
}
