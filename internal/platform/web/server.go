// Package web serves the browser client: an embedded canvas page, a
// WebSocket game endpoint with one driver per connection, the synthesized
// sound files and a small high score API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/loop"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Runtime is the board and tick settings every connection plays with.
	Runtime core.RuntimeConfig

	// Skin is the initial skin for rulesets that let players choose one.
	Skin *snake.Skin

	// Scores backs the high scores. Nil keeps them in memory.
	Scores *storage.Book

	// Synth renders the sound files. Nil uses 44.1kHz at unit volume.
	Synth *audio.Synth

	// EventBuffer is the outbound queue length per connection.
	EventBuffer int

	// Logger defaults to a stderr logger with the gridsnake-web prefix.
	Logger *log.Logger

	// Scheduler builds the tick scheduler for each connection. Tests use
	// manual schedulers; nil means real time.
	Scheduler func() loop.Scheduler
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     ":8080",
		Runtime:     core.DefaultConfig(),
		EventBuffer: session.DefaultBufferSize,
	}
}

// Server is the browser-facing HTTP server.
type Server struct {
	cfg      Config
	http     *http.Server
	upgrader websocket.Upgrader
	scores   *storage.Book
	sessions *session.Registry
	sounds   map[string][]byte
	logger   *log.Logger
}

// NewServer creates a server. The sound files are rendered up front.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gridsnake-web",
		})
	}
	if cfg.Scores == nil {
		logger.Warn("no score database, high scores are kept in memory")
		cfg.Scores = storage.NewBook(nil)
	}
	if cfg.Synth == nil {
		cfg.Synth = audio.NewSynth(44100, 0, 0)
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = session.DefaultBufferSize
	}

	sounds := make(map[string][]byte, len(audio.Sounds))
	for _, snd := range audio.Sounds {
		data, err := cfg.Synth.WAV(snd)
		if err != nil {
			return nil, fmt.Errorf("web: cannot render %s sound: %w", snd.Name(), err)
		}
		sounds[snd.Name()] = data
	}

	s := &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{SubprotocolMsgpack},
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		scores:   cfg.Scores,
		sessions: session.NewRegistry(),
		sounds:   sounds,
		logger:   logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded at build time
	}

	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServer(http.FS(static)))
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /sounds/{file}", s.handleSound)
	mux.HandleFunc("GET /api/highscore", s.handleHighScore)
	mux.HandleFunc("GET /api/variants", s.handleVariants)
	return mux
}

func soundURLs() map[string]string {
	urls := make(map[string]string, len(audio.Sounds))
	for _, snd := range audio.Sounds {
		urls[snd.Name()] = "/sounds/" + snd.Name() + ".wav"
	}
	return urls
}

// variantParam resolves ?variant=, defaulting to the classic ruleset.
func variantParam(r *http.Request) (registry.Variant, error) {
	id := r.URL.Query().Get("variant")
	if id == "" {
		id = registry.DefaultVariant
	}
	return registry.Get(id)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	variant, err := variantParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := session.ID(uuid.NewString())
	logger := s.logger.With("session", id)
	out := session.NewChannelSession(id, s.cfg.EventBuffer)

	opts := []loop.Option{
		loop.WithRenderer(out),
		loop.WithSound(out),
		loop.WithHighScores(s.scores.For(variant.ID)),
		loop.WithLogger(logger),
	}
	if s.cfg.Scheduler != nil {
		opts = append(opts, loop.WithScheduler(s.cfg.Scheduler()))
	}
	rt := s.cfg.Runtime
	driver := loop.New(loop.Config{
		Variant:  variant,
		Board:    rt.Board,
		Interval: rt.TickInterval,
		Seed:     rt.Seed,
		Skin:     s.cfg.Skin,
	}, opts...)

	c := &client{
		ws:     ws,
		codec:  CodecFor(ws.Subprotocol()),
		driver: driver,
		out:    out,
		hello:  helloFor(id, variant, rt.TickInterval),
		logger: logger,
	}
	out.Render(driver.Snapshot())

	s.sessions.Register(out)
	logger.Info("player connected",
		"remote", r.RemoteAddr,
		"variant", variant.ID,
		"codec", c.codec.Name(),
		"active", s.sessions.Count(),
	)

	go c.writePump()
	c.readPump()

	driver.Close()
	s.sessions.Unregister(id)
	logger.Info("player disconnected", "dropped", out.Dropped(), "active", s.sessions.Count())
}

func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".wav")
	data, found := s.sounds[name]
	if !ok || !found {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// HighScoreResponse is the body of /api/highscore.
type HighScoreResponse struct {
	Variant   string `json:"variant"`
	HighScore int    `json:"highScore"`
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	variant, err := variantParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	high, err := s.scores.For(variant.ID).Get()
	if err != nil {
		s.logger.Warn("could not read high score", "variant", variant.ID, "error", err)
		http.Error(w, "high score unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, HighScoreResponse{Variant: variant.ID, HighScore: high})
}

// VariantInfo is one entry of /api/variants.
type VariantInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	HighScore   int    `json:"highScore"`
}

func (s *Server) handleVariants(w http.ResponseWriter, _ *http.Request) {
	variants := registry.List()
	infos := make([]VariantInfo, 0, len(variants))
	for _, v := range variants {
		infos = append(infos, VariantInfo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			HighScore:   s.scores.Get(v.ID),
		})
	}
	writeJSON(w, infos)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe starts the server and blocks until SIGINT/SIGTERM.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.cfg.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		return fmt.Errorf("web: %w", err)
	}
}

// Shutdown closes every game connection and stops the HTTP server.
func (s *Server) Shutdown() error {
	s.sessions.Each(func(h session.Handle) {
		if cs, ok := h.(*session.ChannelSession); ok {
			cs.Close()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Address
}

// Sessions returns the number of connected players.
func (s *Server) Sessions() int {
	return s.sessions.Count()
}
