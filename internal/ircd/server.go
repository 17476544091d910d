package ircd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
)

// inboundMessage pairs a parsed line with the client that sent it, so the
// event loop can process everything through a single channel.
type inboundMessage struct {
	client *Client
	cmd    Command
}

// deadClient reports that a connection's read or write side has failed
// and the client should be torn down.
type deadClient struct {
	client *Client
	reason string
}

// Server owns all shared mutable state described in section 4.F-4.I. A
// single goroutine (Run) ever touches registry, so the registry needs no
// lock (only the connection ID counter is guarded, by nextIDMu, since the
// accept goroutine advances it): concurrency comes entirely from the reader and
// writer goroutines per connection, and they only ever hand data to the
// central loop over channels.
type Server struct {
	Config Config

	registry *Registry

	nextIDMu sync.Mutex
	nextID   uint64

	newClientChan chan *Client
	messageChan   chan inboundMessage
	deadChan      chan deadClient

	registrationHandlers map[string]func(*Client, []string)
	channelOpHandlers    map[string]func(*Client, []string)
}

// NewServer builds a Server ready to Run. Config.ServerName defaults to
// DefaultServerName if empty.
func NewServer(cfg Config) *Server {
	if cfg.ServerName == "" {
		cfg.ServerName = DefaultServerName
	}

	s := &Server{
		Config:        cfg,
		registry:      NewRegistry(),
		newClientChan: make(chan *Client),
		messageChan:   make(chan inboundMessage),
		deadChan:      make(chan deadClient),
	}
	s.registrationHandlers = s.registrationHandlerFuncs()
	s.channelOpHandlers = s.channelOpHandlerFuncs()
	return s
}

// Run listens on Config.ListenAddr, returning an error if it cannot, and
// drives the central event loop until ctx is cancelled. Accept errors are
// logged and accepting continues. It always returns once every accepted
// connection has been torn down.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.acceptLoop(ctx, listener)
	}()

	s.eventLoop(ctx)

	_ = listener.Close()
	wg.Wait()

	return nil
}

// acceptLoop accepts connections until ctx is cancelled, handing each to
// the central loop via newClientChan.
func (s *Server) acceptLoop(ctx context.Context, listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("accept: %s", err)
			continue
		}

		s.nextIDMu.Lock()
		s.nextID++
		id := s.nextID
		s.nextIDMu.Unlock()

		c := newClient(id, conn)

		select {
		case s.newClientChan <- c:
		case <-ctx.Done():
			_ = conn.Close()
			return
		}
	}
}

// eventLoop is the single goroutine that owns s.registry. Every state
// mutation in this package happens on this goroutine.
func (s *Server) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.shutdownAll("Server shutting down")
			return

		case c := <-s.newClientChan:
			s.registry.AddClient(c)
			go s.readLoop(ctx, c)
			go s.writeLoop(ctx, c)

		case im := <-s.messageChan:
			if !s.connected(im.client) {
				continue
			}
			s.dispatch(im.client, im.cmd)

		case dc := <-s.deadChan:
			if !s.connected(dc.client) {
				continue
			}
			s.teardown(dc.client, dc.reason)
		}
	}
}

// connected reports whether c is still present in the registry; it
// guards against racing a read-side failure against a QUIT that is
// already being processed.
func (s *Server) connected(c *Client) bool {
	_, ok := s.registry.clients[c.id]
	return ok
}

// readLoop reads off the connection and feeds parsed commands to the
// central loop until the connection fails or ctx is cancelled. It never
// touches shared state directly.
func (s *Server) readLoop(ctx context.Context, c *Client) {
	chunk := make([]byte, readChunkSize)
	for {
		n, err := c.conn.Read(chunk)
		if n > 0 {
			for _, line := range c.buffer.Feed(chunk[:n]) {
				select {
				case s.messageChan <- inboundMessage{client: c, cmd: Tokenize(line)}:
				case <-ctx.Done():
					return
				}
			}
		}
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case s.deadChan <- deadClient{client: c, reason: "Read error"}:
			case <-ctx.Done():
			}
			return
		}
	}
}

// writeLoop drains c.writeChan and writes to the connection until it is
// closed, preserving per-client message order. A failed write reports
// the client to the central loop as dead.
func (s *Server) writeLoop(ctx context.Context, c *Client) {
	for msg := range c.writeChan {
		if _, err := c.conn.Write([]byte(msg.Encode())); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case s.deadChan <- deadClient{client: c, reason: "Write error"}:
			case <-ctx.Done():
			}
			return
		}
	}
}

// send queues msg for delivery to c. It never blocks the central loop:
// writeChan is generously buffered, and when it is full the message is
// dropped and the drop is logged.
func (s *Server) send(c *Client, msg Message) {
	select {
	case c.writeChan <- msg:
	default:
		log.Printf("dropping message to %s: write buffer full", c.DisplayNick())
	}
}

// teardown shuts down c: it marks c as quitting, then (via
// finishTeardown) parts c from every channel it occupies (destroying any
// that become empty), removes it from the registry, and closes its
// socket. Called from QUIT, from a transport failure, and from
// shutdownAll.
func (s *Server) teardown(c *Client, reason string) {
	c.quitting = true
	s.finishTeardown(c, reason)
}

func (s *Server) finishTeardown(c *Client, reason string) {
	for _, ch := range s.registry.ChannelsOf(c) {
		ch.BroadcastExcept(c, Envelope(c.Nickname, c.Username, c.ip, "QUIT", reason), s.send)
		ch.RemoveOccupant(c)
		if ch.Empty() {
			s.registry.RemoveChannel(ch.Name)
		}
	}
	s.registry.RemoveClient(c)
	close(c.writeChan)
	_ = c.conn.Close()
}

// shutdownAll tears down every connected client, used when the server is
// asked to shut down gracefully.
func (s *Server) shutdownAll(reason string) {
	for _, c := range s.registry.Clients() {
		s.teardown(c, reason)
	}
}
