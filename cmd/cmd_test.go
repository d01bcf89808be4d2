package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gopak/ytmsearch/internal/logging"
	"github.com/gopak/ytmsearch/internal/search"
	"github.com/gopak/ytmsearch/internal/share"
	"github.com/gopak/ytmsearch/internal/ytmusic"
)

type backend struct {
	mu      sync.Mutex
	queries []string
	params  []string
	status  int
	body    []byte
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Query  string `json:"query"`
		Params string `json:"params"`
	}
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &p)
	b.mu.Lock()
	b.queries = append(b.queries, p.Query)
	b.params = append(b.params, p.Params)
	b.mu.Unlock()
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body)
}

func setup(t *testing.T, status int, body []byte) *backend {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	b := &backend{status: status, body: body}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	t.Setenv("YTMSEARCH_BASE_URL", srv.URL+"/youtubei/v1/")
	logging.SetOutput(io.Discard)
	t.Cleanup(func() {
		logging.Close()
		logging.SetOutput(os.Stderr)
	})
	return b
}

func fixture(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "internal", "ytmusic", "testdata", "search_songs.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return b
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearch_EmptyQueryPrintsBrackets(t *testing.T) {
	b := setup(t, http.StatusOK, fixture(t))
	for _, args := range [][]string{{"search"}, {"search", ""}, {"search", "--", ""}} {
		out, err := run(args...)
		if err != nil {
			t.Fatalf("%v: unexpected err: %v", args, err)
		}
		if out != "[]\n" {
			t.Fatalf("%v: want []\\n, got %q", args, out)
		}
	}
	if len(b.queries) != 0 {
		t.Fatalf("no request expected, got %v", b.queries)
	}
}

func TestSearch_TopSongAsCompactJSON(t *testing.T) {
	b := setup(t, http.StatusOK, fixture(t))
	out, err := run("search", "wake", "me", "up")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(b.queries) != 1 || b.queries[0] != "wake me up" {
		t.Fatalf("want one query 'wake me up', got %q", b.queries)
	}
	if b.params[0] != "EgWKAQIIAWoMEA4QChADEAQQCRAF" {
		t.Fatalf("songs filter not applied: %q", b.params[0])
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("want a single line of output, got %q", out)
	}
	var songs []ytmusic.Song
	if err := json.Unmarshal([]byte(out), &songs); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(songs) != 1 || songs[0].VideoID != "IcrbM1l_BoI" {
		t.Fatalf("unexpected songs: %+v", songs)
	}
}

func TestSearch_WhitespaceQueryReachesBackend(t *testing.T) {
	b := setup(t, http.StatusOK, []byte(`{"contents":{}}`))
	out, err := run("search", "  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(b.queries) != 1 || b.queries[0] != "  " {
		t.Fatalf("whitespace query not sent: %q", b.queries)
	}
	if out != "[]\n" {
		t.Fatalf("want empty list, got %q", out)
	}
}

func TestSearch_WordsAfterQueryAreNotFlags(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"search", "live", "-o", "table"}, "live -o table"},
		{[]string{"search", "hello", "--post"}, "hello --post"},
		{[]string{"search", "Numb", "--", "Linkin", "Park"}, "Numb -- Linkin Park"},
		{[]string{"search", "hello", "--help"}, "hello --help"},
		{[]string{"search", "--", "-1"}, "-1"},
	}
	for _, c := range cases {
		b := setup(t, http.StatusOK, fixture(t))
		out, err := run(c.args...)
		if err != nil {
			t.Fatalf("%v: unexpected err: %v", c.args, err)
		}
		if len(b.queries) != 1 || b.queries[0] != c.want {
			t.Fatalf("%v: want query %q, got %q", c.args, c.want, b.queries)
		}
		var songs []ytmusic.Song
		if err := json.Unmarshal([]byte(out), &songs); err != nil || strings.Count(out, "\n") != 1 {
			t.Fatalf("%v: want one line of JSON, got %q", c.args, out)
		}
	}
}

func TestResolve_WordsAfterQueryAreNotFlags(t *testing.T) {
	b := setup(t, http.StatusOK, []byte(`{"contents":{}}`))
	if _, err := run("resolve", "live", "-o", "table"); !errors.Is(err, search.ErrNoResults) {
		t.Fatalf("want ErrNoResults, got %v", err)
	}
	if len(b.queries) != 1 || b.queries[0] != "live -o table" {
		t.Fatalf("unexpected queries: %q", b.queries)
	}
}

func TestSearch_EmptyQueryWritesNothingToDisk(t *testing.T) {
	setup(t, http.StatusOK, fixture(t))
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	if out, err := run("search"); err != nil || out != "[]\n" {
		t.Fatalf("empty search: %q, %v", out, err)
	}
	if _, err := os.Stat(filepath.Join(home, "ytmsearch")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("empty query created the config dir: %v", err)
	}

	if _, err := run("search", "hello"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "ytmsearch", "logs", "ytmsearch.log")); err != nil {
		t.Fatalf("log file not opened for a real search: %v", err)
	}
}

func TestSearch_BackendFailure(t *testing.T) {
	setup(t, http.StatusInternalServerError, []byte("oops"))
	out, err := run("search", "hello")
	if !errors.Is(err, ytmusic.ErrBackend) {
		t.Fatalf("want ErrBackend, got %v", err)
	}
	if out != "" {
		t.Fatalf("nothing should be printed on failure, got %q", out)
	}
}

func TestSearch_TableOutput(t *testing.T) {
	setup(t, http.StatusOK, fixture(t))
	out, err := run("search", "-o", "table", "wake me up")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "Avicii") || !strings.Contains(out, "IcrbM1l_BoI") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if _, err := run("search", "-o", "xml", "x"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestSearch_PostRequiresSlackConfig(t *testing.T) {
	b := setup(t, http.StatusOK, fixture(t))
	t.Setenv("YTMSEARCH_SLACK_BOT_TOKEN", "")
	t.Setenv("YTMSEARCH_SLACK_CHANNEL_ID", "")
	_, err := run("search", "--post", "hello")
	if !errors.Is(err, share.ErrNotConfigured) {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
	if len(b.queries) != 0 {
		t.Fatalf("search must not run without slack config")
	}
}

type slackAPI struct {
	mu    sync.Mutex
	texts []string
	ok    bool
}

func (s *slackAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	s.mu.Lock()
	s.texts = append(s.texts, r.FormValue("text"))
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if !s.ok {
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
		return
	}
	_, _ = w.Write([]byte(`{"ok":true,"channel":"C0123ABC","ts":"1700000000.000100"}`))
}

func setupSlack(t *testing.T, ok bool) *slackAPI {
	t.Helper()
	api := &slackAPI{ok: ok}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	t.Setenv("YTMSEARCH_SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("YTMSEARCH_SLACK_CHANNEL_ID", "C0123ABC")
	t.Setenv("YTMSEARCH_SLACK_API_URL", srv.URL+"/")
	return api
}

func TestSearch_PostSharesTopSong(t *testing.T) {
	setup(t, http.StatusOK, fixture(t))
	api := setupSlack(t, true)
	out, err := run("search", "--post", "wake", "me", "up")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(api.texts) != 1 || api.texts[0] != "https://music.youtube.com/watch?v=IcrbM1l_BoI" {
		t.Fatalf("unexpected slack posts: %q", api.texts)
	}
	var songs []ytmusic.Song
	if err := json.Unmarshal([]byte(out), &songs); err != nil || len(songs) != 1 {
		t.Fatalf("unexpected output %q: %v", out, err)
	}
}

func TestSearch_SlackFailureKeepsResult(t *testing.T) {
	setup(t, http.StatusOK, fixture(t))
	api := setupSlack(t, false)
	var diag bytes.Buffer
	logging.SetOutput(&diag)

	out, err := run("search", "--post", "wake", "me", "up")
	if err != nil {
		t.Fatalf("slack failure must not fail the command: %v", err)
	}
	if len(api.texts) != 1 {
		t.Fatalf("expected one slack attempt, got %d", len(api.texts))
	}
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, `"videoId":"IcrbM1l_BoI"`) {
		t.Fatalf("stdout changed by slack failure: %q", out)
	}
	if !strings.Contains(diag.String(), "failed to post to Slack") {
		t.Fatalf("missing warning: %q", diag.String())
	}
}

func TestSearch_BadConfigFails(t *testing.T) {
	setup(t, http.StatusOK, fixture(t))
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	os.WriteFile(p, []byte("client:\n  region: usa\n"), 0o644)
	if _, err := run("--config", p, "search", "hello"); err == nil || !strings.Contains(err.Error(), "schema error") {
		t.Fatalf("want schema error, got %v", err)
	}
	// The empty fast path does not read configuration.
	if out, err := run("--config", p, "search"); err != nil || out != "[]\n" {
		t.Fatalf("empty query should bypass config: %q, %v", out, err)
	}
}

func TestResolve_NoResults(t *testing.T) {
	setup(t, http.StatusOK, []byte(`{"contents":{}}`))
	_, err := run("resolve", "nothing", "here")
	if !errors.Is(err, search.ErrNoResults) {
		t.Fatalf("want ErrNoResults, got %v", err)
	}
	out, err := run("resolve")
	if err != nil || out != "[]\n" {
		t.Fatalf("empty resolve: %q, %v", out, err)
	}
}

func TestValidate(t *testing.T) {
	setup(t, http.StatusOK, nil)
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	os.WriteFile(p, []byte("client:\n  language: en\n  region: GB\n"), 0o644)
	out, err := run("--config", p, "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "Configuration is valid" {
		t.Fatalf("unexpected output: %q", out)
	}

	os.WriteFile(filepath.Join(dir, "zz.yaml"), []byte("slack:\n  channel_id: general\n"), 0o644)
	if _, err := run("--config", p, "validate"); err == nil {
		t.Fatalf("expected schema error from merged file")
	}
}

func TestConfigInit_NonInteractive(t *testing.T) {
	setup(t, http.StatusOK, nil)
	orig := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = orig })

	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if _, err := run("--config", p, "config", "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || !strings.Contains(string(b), "yt-dlp") {
		t.Fatalf("default config not written: %v", err)
	}

	if _, err := run("--config", p, "config", "init"); err == nil {
		t.Fatalf("expected error for existing file")
	}

	os.WriteFile(p, []byte("client: {}\n"), 0o644)
	if _, err := run("--config", p, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	b, _ = os.ReadFile(p)
	if !strings.Contains(string(b), "yt-dlp") {
		t.Fatalf("--force did not replace the file")
	}
}
