package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const scheduleHTML = `<html><body>
<h3>レース一覧（2018年）</h3>
<ul>
<li class="race g2">
<p class="date">1/21（日）</p>
<p class="name">東海ステークス</p>
<p class="course">JRA中京 1800m</p>
</li>
<li class="race jpn3 mare">
<p class="date">1/24（水）</p>
<p class="name">TCK女王盃</p>
<p class="course">大井 1800m</p>
</li>
<li class="race jpn1">
<p class="date">1/31（水）</p>
<p class="name">川崎記念</p>
<p class="course">川崎 2100m</p>
</li>
</ul></body></html>`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DIRTRACE_URL", "DIRTRACE_YEAR_MODE", "DIRTRACE_YEAR", "DIRTRACE_TIMEOUT", "DIRTRACE_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func newServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Stdout(t *testing.T) {
	clearEnv(t)
	server := newServer(t, scheduleHTML, http.StatusOK)

	stdout, stderr, err := execute(t, server.URL)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	for _, field := range []string{
		"SUMMARY:TCK女王盃(JpnⅢ)",
		"DTSTART;VALUE=DATE:20180124",
		"LOCATION:川崎競馬場",
		"TRANSP:TRANSPARENT",
	} {
		if !strings.Contains(stdout, field) {
			t.Errorf("output missing %s", field)
		}
	}
	if strings.Contains(stdout, "東海ステークス") {
		t.Error("JRA race should be excluded from output")
	}
	if strings.Contains(stdout, `"level"`) {
		t.Error("log lines must not be written to stdout")
	}
	if !strings.Contains(stderr, "Extracted races") {
		t.Errorf("stderr = %q, want extraction log", stderr)
	}
}

func TestRootCmd_OutputFile(t *testing.T) {
	clearEnv(t)
	server := newServer(t, scheduleHTML, http.StatusOK)
	path := filepath.Join(t.TempDir(), "dirtrace.ics")

	stdout, _, err := execute(t, server.URL, "-o", path)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty when writing to a file", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got := strings.Count(string(data), "BEGIN:VEVENT"); got != 2 {
		t.Errorf("file has %d events, want 2", got)
	}
}

func TestRootCmd_FixedYear(t *testing.T) {
	clearEnv(t)
	html := strings.Replace(scheduleHTML, "<h3>レース一覧（2018年）</h3>", "", 1)
	server := newServer(t, html, http.StatusOK)

	if _, _, err := execute(t, server.URL); err == nil {
		t.Fatal("Execute() without heading or --year expected error, got nil")
	}

	stdout, _, err := execute(t, server.URL, "--year", "2019")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stdout, "DTSTART;VALUE=DATE:20190124") {
		t.Error("--year should set the event year")
	}
}

func TestRootCmd_LocalFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "schedule.html")
	if err := os.WriteFile(path, []byte(scheduleHTML), 0600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, path, "--format", "json")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var races []raceJSON
	if err := json.Unmarshal([]byte(stdout), &races); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(races) != 2 {
		t.Fatalf("got %d races, want 2", len(races))
	}
	want := raceJSON{Date: "2018-01-24", Grade: "JpnⅢ", Name: "TCK女王盃", Course: "大井競馬場"}
	if races[0] != want {
		t.Errorf("races[0] = %+v, want %+v", races[0], want)
	}
}

func TestRootCmd_Errors(t *testing.T) {
	badGrade := strings.Replace(scheduleHTML, "race jpn1", "race jpn9", 1)

	tests := []struct {
		name   string
		body   string
		status int
		args   []string
	}{
		{"HTTP error", "", http.StatusInternalServerError, nil},
		{"unknown grade", badGrade, http.StatusOK, nil},
		{"invalid format", scheduleHTML, http.StatusOK, []string{"--format", "csv"}},
		{"invalid year mode", scheduleHTML, http.StatusOK, []string{"--year-mode", "page"}},
		{"fixed mode without year", scheduleHTML, http.StatusOK, []string{"--year-mode", "fixed"}},
		{"zero year", scheduleHTML, http.StatusOK, []string{"--year", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			server := newServer(t, tt.body, tt.status)
			path := filepath.Join(t.TempDir(), "out.ics")

			args := append([]string{server.URL, "-o", path}, tt.args...)
			if _, _, err := execute(t, args...); err == nil {
				t.Error("Execute() expected error, got nil")
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("no output file should be written on failure")
			}
		})
	}
}

func TestRootCmd_FixedModeFromEnvWithoutYear(t *testing.T) {
	clearEnv(t)
	t.Setenv("DIRTRACE_YEAR_MODE", "fixed")
	server := newServer(t, scheduleHTML, http.StatusOK)

	_, _, err := execute(t, server.URL)
	if err == nil {
		t.Fatal("Execute() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "DIRTRACE_YEAR") || !strings.Contains(err.Error(), "--year") {
		t.Errorf("error = %q, should name both --year and DIRTRACE_YEAR", err)
	}

	t.Setenv("DIRTRACE_YEAR", "2018")
	if _, _, err := execute(t, server.URL); err != nil {
		t.Errorf("Execute() with DIRTRACE_YEAR error: %v", err)
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, nil, FormatText); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No races found.") {
		t.Errorf("output = %q", buf.String())
	}

	if err := WriteOutput(&buf, nil, OutputFormat("xml")); err == nil {
		t.Error("WriteOutput() expected error for unknown format")
	}
}
