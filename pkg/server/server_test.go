package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/open-here/open-here/pkg/client"
	"github.com/open-here/open-here/pkg/config"
	"github.com/open-here/open-here/pkg/open"
	"github.com/open-here/open-here/pkg/protocol"
	"github.com/open-here/open-here/pkg/runner"
	"github.com/open-here/open-here/pkg/target"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnRecorder struct {
	mu   sync.Mutex
	cmds []open.Command
}

func (s *spawnRecorder) spawn(cmd open.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, cmd)
	return nil
}

func (s *spawnRecorder) commands() []open.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmds
}

// syncBuffer is a bytes.Buffer safe for concurrent use by the server and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.Out = out
	logger.Level = logrus.DebugLevel
	return logger
}

// startServer starts a server on a random port and returns a client for it.
func startServer(t *testing.T, conf config.ServerConfig, opts ...Option) (*Server, *client.Client) {
	conf.Host = "localhost:0"
	if conf.MaxFilesize == 0 {
		conf.MaxFilesize = config.DefaultMaxFilesize
	}
	srv, err := New(conf, append([]Option{Logger(newTestLogger(io.Discard))}, opts...)...)
	require.NoError(t, err)

	port := srv.Port()
	require.NotZero(t, port)

	go func() {
		assert.NoError(t, srv.Run())
	}()
	t.Cleanup(func() { srv.Close() })

	return srv, client.New(fmt.Sprintf("http://localhost:%d", port))
}

func TestDryRunURL(t *testing.T) {
	testCases := []struct {
		opener      open.Kind
		expContains []string
	}{
		{open.XdgOpen, []string{"Would run:", "xdg-open"}},
		{open.Open, []string{"Would run:", "open"}},
		{open.Start, []string{"Would run:", "cmd", "start"}},
	}

	for _, tc := range testCases {
		_, c := startServer(t, config.ServerConfig{DryRun: true, Opener: tc.opener})

		res, err := c.Open(target.URL{Target: "http://localhost:1234"})
		require.NoError(t, err)
		require.Contains(t, res, "http://localhost:1234")
		for _, s := range tc.expContains {
			require.Contains(t, res, s)
		}

		// Dry runs are idempotent.
		again, err := c.Open(target.URL{Target: "http://localhost:1234"})
		require.NoError(t, err)
		require.Equal(t, res, again)
	}
}

func TestDryRunPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	recorder := &spawnRecorder{}
	r := runner.New(runner.Opts{Fs: fs, TempDir: "/tmp", Spawn: recorder.spawn})

	_, c := startServer(t, config.ServerConfig{DryRun: true}, Runner(r))

	res, err := c.Open(target.Path{Filename: "image.png", Content: []byte{}})
	require.NoError(t, err)
	require.Contains(t, res, "image.png")
	require.Contains(t, res, "Would save")
	require.Contains(t, res, "Would run:")

	require.Empty(t, recorder.commands())
	exists, err := afero.DirExists(fs, r.Dir())
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRunPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	recorder := &spawnRecorder{}
	xdgOpen := open.XdgOpen
	r := runner.New(runner.Opts{Opener: &xdgOpen, Fs: fs, TempDir: "/tmp", Spawn: recorder.spawn})

	_, c := startServer(t, config.ServerConfig{}, Runner(r))

	content := []byte("%PDF-1.4 report")
	res, err := c.Open(target.Path{Filename: "/home/user/report.pdf", Content: content})
	require.NoError(t, err)
	require.Equal(t, "", res)

	expPath := filepath.FromSlash("/tmp/open-here/home/user/report.pdf")
	data, err := afero.ReadFile(fs, expPath)
	require.NoError(t, err)
	require.Equal(t, content, data)
	require.Equal(t, []open.Command{{Program: "xdg-open", Args: []string{expPath}}}, recorder.commands())
}

func TestRunURL(t *testing.T) {
	recorder := &spawnRecorder{}
	start := open.Start
	r := runner.New(runner.Opts{Opener: &start, Fs: afero.NewMemMapFs(), Spawn: recorder.spawn})

	_, c := startServer(t, config.ServerConfig{}, Runner(r))

	res, err := c.Open(target.URL{Target: "https://example.com/?q=open here"})
	require.NoError(t, err)
	require.Equal(t, "", res)
	require.Equal(t, []open.Command{{Program: "cmd", Args: []string{"/c", "start", "https://example.com/?q=open here"}}}, recorder.commands())
}

func TestUnsafePath(t *testing.T) {
	recorder := &spawnRecorder{}
	r := runner.New(runner.Opts{Fs: afero.NewMemMapFs(), TempDir: "/tmp", Spawn: recorder.spawn})

	logs := &syncBuffer{}
	_, c := startServer(t, config.ServerConfig{}, Runner(r), Logger(newTestLogger(logs)))

	for _, filename := range []string{"", "./", "../etc/passwd"} {
		_, err := c.Open(target.Path{Filename: filename, Content: []byte("root:x:0:0")})

		var serverErr *client.ServerError
		require.True(t, errors.As(err, &serverErr), filename)
		require.Equal(t, protocol.UnsafePath, serverErr.Err.Kind)
	}
	require.Empty(t, recorder.commands())

	require.Contains(t, logs.String(), "span=open")
	require.Contains(t, logs.String(), `open="../etc/passwd, len: 10"`)
	require.Contains(t, logs.String(), "level=warning")
}

func TestMaxFilesize(t *testing.T) {
	recorder := &spawnRecorder{}
	fs := afero.NewMemMapFs()
	r := runner.New(runner.Opts{Fs: fs, TempDir: "/tmp", Spawn: recorder.spawn})

	_, c := startServer(t, config.ServerConfig{MaxFilesize: 16}, Runner(r))

	_, err := c.Open(target.Path{Filename: "big.bin", Content: bytes.Repeat([]byte("x"), 17)})
	var httpErr *client.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Contains(t, httpErr.Msg, "413")

	_, err = c.Open(target.Path{Filename: "small.bin", Content: bytes.Repeat([]byte("x"), 16)})
	require.NoError(t, err)

	require.Len(t, recorder.commands(), 1)
	exists, err := afero.Exists(fs, filepath.FromSlash("/tmp/open-here/big.bin"))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestMaxFilesizeChunked(t *testing.T) {
	recorder := &spawnRecorder{}
	r := runner.New(runner.Opts{Fs: afero.NewMemMapFs(), TempDir: "/tmp", Spawn: recorder.spawn})

	srv, _ := startServer(t, config.ServerConfig{MaxFilesize: 16}, Runner(r))

	// Hiding the reader type prevents the client from setting a Content-Length.
	body := io.MultiReader(strings.NewReader(strings.Repeat("x", 64)))
	req, err := http.NewRequest("POST", fmt.Sprintf("http://%s/open/path?filename=big.bin", srv.Addr()), body)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	require.Empty(t, recorder.commands())
}

func TestPostAndInvalidRequests(t *testing.T) {
	srv, _ := startServer(t, config.ServerConfig{DryRun: true})
	baseURL := "http://" + srv.Addr()

	testCases := []struct {
		method    string
		path      string
		body      string
		expStatus int
		expBody   string
	}{
		{"POST", "/open/url", `{"target":"http://localhost:1234"}`, 200, "Would run:"},
		{"POST", "/open/path?filename=a.txt", "abc", 200, "Would save 3 bytes"},
		{"GET", "/open/url", `{"target":""}`, 400, ""},
		{"GET", "/open/url", `not json`, 400, ""},
		{"GET", "/open/url", `{"target":"http://localhost:1234"} garbage`, 400, "invalid character"},
		{"GET", "/open/url", `{"target":"http://localhost:1234"}}`, 400, ""},
		{"GET", "/open/url", `{"target":"http://localhost:1234"}{"target":"http://localhost:5678"}`, 400, "unexpected data"},
		{"GET", "/open/url", "{\"target\":\"http://localhost:1234\"}\n", 200, "Would run:"},
		{"PUT", "/open/url", `{"target":"http://localhost:1234"}`, 405, ""},
		{"GET", "/open", "", 404, ""},
	}

	for _, tc := range testCases {
		req, err := http.NewRequest(tc.method, baseURL+tc.path, strings.NewReader(tc.body))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		require.Equal(t, tc.expStatus, resp.StatusCode, tc.method+" "+tc.path)
		require.Contains(t, string(body), tc.expBody)
	}
}

func TestCrossSiteRequests(t *testing.T) {
	recorder := &spawnRecorder{}
	r := runner.New(runner.Opts{Fs: afero.NewMemMapFs(), TempDir: "/tmp", Spawn: recorder.spawn})

	srv, _ := startServer(t, config.ServerConfig{}, Runner(r))
	baseURL := "http://" + srv.Addr()

	testCases := []struct {
		headers   map[string]string
		expStatus int
	}{
		{map[string]string{"Origin": "https://evil.example", "Content-Type": "text/plain"}, 403},
		{map[string]string{"Origin": "null"}, 403},
		{map[string]string{"Sec-Fetch-Site": "cross-site"}, 403},
		{map[string]string{"Sec-Fetch-Site": "same-site"}, 403},
		{map[string]string{"Sec-Fetch-Site": "none"}, 200},
		{map[string]string{"Sec-Fetch-Site": "same-origin"}, 200},
	}

	for _, tc := range testCases {
		req, err := http.NewRequest("POST", baseURL+"/open/url", strings.NewReader(`{"target":"https://evil.example/payload"}`))
		require.NoError(t, err)
		for key, val := range tc.headers {
			req.Header.Set(key, val)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, tc.expStatus, resp.StatusCode, tc.headers)
		require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	}
	require.Len(t, recorder.commands(), 2)

	req, err := http.NewRequest("OPTIONS", baseURL+"/open/path?filename=a.txt", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	require.Len(t, recorder.commands(), 2)
}

func TestRunLogsSettings(t *testing.T) {
	r := runner.New(runner.Opts{Fs: afero.NewMemMapFs(), TempDir: "/tmp", Spawn: (&spawnRecorder{}).spawn})

	logs := &syncBuffer{}
	_, c := startServer(t, config.ServerConfig{DryRun: true, MaxFilesize: 1 << 20}, Runner(r), Logger(newTestLogger(logs)))

	_, err := c.Open(target.URL{Target: "http://localhost:1234"})
	require.NoError(t, err)

	require.Contains(t, logs.String(), "dry-run: true")
	require.Contains(t, logs.String(), "max filesize: 1.0 MiB")
	require.Contains(t, logs.String(), "files: "+r.Dir())
}

func TestPortDiscovery(t *testing.T) {
	srv, err := New(config.ServerConfig{Host: "localhost:0", DryRun: true, MaxFilesize: config.DefaultMaxFilesize},
		Logger(newTestLogger(io.Discard)))
	require.NoError(t, err)

	port := srv.Port()
	require.NotZero(t, port)

	done := make(chan error, 1)
	go func() {
		done <- srv.Run()
	}()

	res, err := client.New(fmt.Sprintf("http://localhost:%d", port)).Open(target.URL{Target: "http://localhost:1234"})
	require.NoError(t, err)
	require.Contains(t, res, "Would run:")
	require.Contains(t, res, "http://localhost:1234")

	require.NoError(t, srv.Close())
	require.NoError(t, <-done)
}

func TestNewInvalidHost(t *testing.T) {
	_, err := New(config.ServerConfig{Host: "not-a-host"})
	require.Error(t, err)
}
