// Package server implements the open-here HTTP server running on the workstation.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	humanize "github.com/dustin/go-humanize"
	"github.com/open-here/open-here/pkg/config"
	"github.com/open-here/open-here/pkg/protocol"
	"github.com/open-here/open-here/pkg/runner"
	"github.com/open-here/open-here/pkg/target"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Server serves open requests.
type Server struct {
	conf     config.ServerConfig
	listener net.Listener
	srv      *http.Server
	runner   *runner.Runner
	logger   *logrus.Logger
}

// Option is a functional option for a Server.
type Option func(*Server)

// Logger sets the logger of the server.
func Logger(logger *logrus.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Runner sets the runner handling open requests.
func Runner(r *runner.Runner) Option {
	return func(s *Server) {
		s.runner = r
	}
}

// New creates a server and binds its listener, so that Port is known before Run.
func New(conf config.ServerConfig, opts ...Option) (*Server, error) {
	s := &Server{
		conf:   conf,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = runner.New(runner.Opts{
			Opener: &conf.Opener,
			Logger: s.logger,
		})
	}

	var err error
	s.listener, err = net.Listen("tcp", conf.Host)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	for _, method := range []string{"GET", "POST"} {
		mux.Handle(method+" "+protocol.RouteURL, s.limitBody(http.HandlerFunc(s.openURL)))
		mux.Handle(method+" "+protocol.RoutePath, s.limitBody(http.HandlerFunc(s.openPath)))
	}

	// cors answers preflights without allowing any origin, sameSite refuses the
	// simple requests browsers send without a preflight.
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return false },
	})
	s.srv = &http.Server{Handler: c.Handler(s.sameSite(mux))}
	return s, nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Run serves requests until the server is closed.
func (s *Server) Run() error {
	s.logger.Infof("Listening on %s (dry-run: %t, max filesize: %s, opener: %s, files: %s)",
		s.Addr(), s.conf.DryRun, humanize.IBytes(uint64(s.conf.MaxFilesize)), s.runner.Opener(), s.runner.Dir())

	err := s.srv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close closes the server.
func (s *Server) Close() error {
	return s.srv.Close()
}

// sameSite rejects requests issued by web pages, they carry an Origin header or
// a Sec-Fetch-Site header other than "none" and "same-origin".
func (s *Server) sameSite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		fetchSite := req.Header.Get("Sec-Fetch-Site")
		if origin != "" || (fetchSite != "" && fetchSite != "none" && fetchSite != "same-origin") {
			s.logger.Warnf("Rejected %s %s from origin '%s' (Sec-Fetch-Site: '%s')", req.Method, req.URL.Path, origin, fetchSite)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// limitBody rejects requests whose body exceeds the maximum file size.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.ContentLength > s.conf.MaxFilesize {
			s.logger.Warnf("Rejected %s: body of %d bytes exceeds %d bytes", req.URL.Path, req.ContentLength, s.conf.MaxFilesize)
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		req.Body = http.MaxBytesReader(w, req.Body, s.conf.MaxFilesize)
		next.ServeHTTP(w, req)
	})
}

// openURL handles requests to open a URL, the body is a protocol.URLTarget.
func (s *Server) openURL(w http.ResponseWriter, req *http.Request) {
	var urlTarget protocol.URLTarget
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(&urlTarget); err != nil {
		s.bodyError(w, err)
		return
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after the JSON object")
		}
		s.bodyError(w, err)
		return
	}
	if !target.ValidURL(urlTarget.Target) {
		http.Error(w, "Invalid target.", http.StatusBadRequest)
		return
	}
	s.open(w, target.URL{Target: urlTarget.Target})
}

// openPath handles requests to open a file, the body is the raw file content.
func (s *Server) openPath(w http.ResponseWriter, req *http.Request) {
	content, err := io.ReadAll(req.Body)
	if err != nil {
		s.bodyError(w, err)
		return
	}
	s.open(w, target.Path{
		Filename: req.URL.Query().Get(protocol.FilenameParam),
		Content:  content,
	})
}

// open dispatches a target to the runner and writes the result envelope.
func (s *Server) open(w http.ResponseWriter, t target.OpenTarget) {
	entry := s.logger.WithField("span", "open").WithField("open", t.String())
	entry.Debug("Handling open request")

	var (
		res    string
		runErr *protocol.RunError
	)
	if s.conf.DryRun {
		res, runErr = s.runner.DryRun(t)
	} else {
		res, runErr = s.runner.Run(t)
	}

	result := protocol.OK(res)
	if runErr != nil {
		entry.Warn(runErr)
		result = protocol.Failure(runErr)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		entry.Warnf("Couldn't write response: %s", err)
	}
}

// bodyError replies to a request whose body couldn't be read or decoded.
func (s *Server) bodyError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, fmt.Sprintf("Invalid request body: %s", err), http.StatusBadRequest)
}
