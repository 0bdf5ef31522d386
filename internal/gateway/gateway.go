// Package gateway exposes the game to chat clients over websockets.
//
// Each text frame carries one user interaction:
//
//	{"user": "42", "command": "pkmn explore"}
//	{"user": "42", "button": "attack_charge"}
//
// and is answered with one Response frame, in order.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/samdwyer/pkmnbot/internal/game"
)

const maxFrameSize = 4096

// Frame is one interaction sent by a chat client.
type Frame struct {
	User    string `json:"user"`
	Command string `json:"command,omitempty"`
	Button  string `json:"button,omitempty"`
}

// Response answers a Frame. Reply is nil when the command was not addressed
// to the bot or the frame was malformed.
type Response struct {
	User  string      `json:"user"`
	Reply *game.Reply `json:"reply,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Server routes websocket and health requests.
type Server struct {
	game     *game.Game
	logger   *slog.Logger
	upgrader websocket.Upgrader
	router   chi.Router
}

// NewServer creates a gateway for g.
func NewServer(g *game.Game, logger *slog.Logger) *Server {
	s := &Server{
		game:   g,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Chat bridges connect from other origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("gateway listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	remote := conn.RemoteAddr().String()
	s.logger.Debug("websocket connected", "remote", remote)

	ctx := r.Context()
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "remote", remote, "error", err)
			}
			return
		}

		if err := conn.WriteJSON(s.handleFrame(ctx, frame)); err != nil {
			s.logger.Warn("websocket write failed", "remote", remote, "error", err)
			return
		}
	}
}

// handleFrame runs one frame against the game.
func (s *Server) handleFrame(ctx context.Context, f Frame) Response {
	resp := Response{User: f.User}

	switch {
	case f.User == "":
		resp.Error = "missing user"
	case f.Command != "" && f.Button != "":
		resp.Error = "frame has both command and button"
	case f.Command != "":
		if reply, ok := s.game.HandleCommand(ctx, f.User, f.Command); ok {
			resp.Reply = &reply
		}
	case f.Button != "":
		reply := s.game.HandleButton(ctx, f.User, f.Button)
		resp.Reply = &reply
	default:
		resp.Error = "frame has neither command nor button"
	}

	if resp.Error != "" {
		s.logger.Debug("malformed frame", "user", f.User, "error", resp.Error)
	}
	return resp
}
