package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/hyprshy/hyprshy/internal/bar"
	"github.com/hyprshy/hyprshy/internal/daemon"
	"github.com/hyprshy/hyprshy/internal/platform"
	"github.com/hyprshy/hyprshy/internal/runtimepath"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	backend      platform.Backend
	reconciler   *daemon.Reconciler
	driver       *bar.Driver
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(backend platform.Backend, reconciler *daemon.Reconciler, driver *bar.Driver) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		backend:    backend,
		reconciler: reconciler,
		driver:     driver,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)
	reqData, err := reader.ReadBytes('\n')
	if err != nil {
		log.Printf("IPC read error: %v", err)
		return
	}

	var req Request
	if err := json.Unmarshal(reqData, &req); err != nil {
		s.writeResponse(conn, NewErrorResponse(fmt.Errorf("invalid request: %w", err)))
		return
	}

	s.writeResponse(conn, s.handleRequest(&req))
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandSetVisible:
		return s.handleSetVisible(req.Payload)
	default:
		return NewErrorResponse(fmt.Errorf("unknown command %q", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	state := s.reconciler.State()
	resp, err := NewOKResponse(StatusData{
		DaemonRunning:   true,
		Backend:         s.backend.Name(),
		CursorAtTop:     state.CursorAtTop,
		WindowsOpen:     state.WindowsOpen,
		DesiredVisible:  state.Visible,
		BelievedVisible: s.driver.BelievedVisible(),
		UptimeSeconds:   int64(time.Since(s.startTime).Seconds()),
	})
	if err != nil {
		return NewErrorResponse(err)
	}
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	monitors, err := s.backend.Monitors()
	if err != nil {
		return NewErrorResponse(err)
	}

	data := MonitorsData{Monitors: make([]MonitorInfo, 0, len(monitors))}
	for _, m := range monitors {
		data.Monitors = append(data.Monitors, MonitorInfo{
			ID:     m.ID,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		})
	}

	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err)
	}
	return resp
}

// handleSetVisible drives the bar directly. The driver defends against the
// resulting concurrency with the reconciler's own calls; the reconciler will
// re-evaluate on the next compositor event either way.
func (s *Server) handleSetVisible(payload json.RawMessage) *Response {
	var p SetVisiblePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Errorf("invalid payload: %w", err))
	}

	s.driver.SetVisible(p.Visible)

	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err)
	}
	return resp
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("IPC marshal error: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		log.Printf("IPC write error: %v", err)
	}
}

// Stop shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
