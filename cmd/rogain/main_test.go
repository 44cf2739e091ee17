package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const resultsPage = `<html><body>
<table width="1381px"><tr><td id="c12">3</td><td id="c13">Foxtrot</td></tr></table>
<table>
	<tr><td>Pts</td><td>(4)</td><td>(6)</td><td>META</td></tr>
	<tr><td>Hora</td><td>0:15:00</td><td>0:32:10</td></tr>
</table>
<table width="1381px"><tr><td id="c13"></td></tr></table>
<table><tr><td>Pts</td><td>(1)</td></tr></table>
</body></html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.html")
	if err := os.WriteFile(path, []byte(resultsPage), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"extract", "-in", writePage(t)}, &stdout, &stderr); err != nil {
		t.Fatalf("run() failed: %v\n%s", err, stderr.String())
	}

	want := "Team,Points,Time,Total points\n" +
		"FOXTROT,4,00:15:00,4\n" +
		"FOXTROT,6,00:32:10,10\n"
	if stdout.String() != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout.String(), want)
	}
	if !strings.Contains(stderr.String(), "extraction complete") {
		t.Errorf("stderr missing summary:\n%s", stderr.String())
	}
}

func TestExtract_FileAndSQLite(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "all_teams_points_by_time.csv")
	db := filepath.Join(dir, "runs.db")

	var stdout, stderr bytes.Buffer
	err := run([]string{"extract", "-in", writePage(t), "-out", out, "-sqlite", db}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() failed: %v\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "Team,Points,Time,Total points\n") {
		t.Errorf("output = %q", data)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty when -out is set, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "run_id=") {
		t.Errorf("stderr missing run id:\n%s", stderr.String())
	}
}

func TestExtract_NoInput(t *testing.T) {
	t.Setenv("ROGAIN_INPUT", "")
	var stdout, stderr bytes.Buffer
	if err := run([]string{"extract"}, &stdout, &stderr); err == nil {
		t.Error("run() expected error without input")
	}
}

func TestExtract_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"extract", "-in", "/nonexistent/page.html"}, &stdout, &stderr); err == nil {
		t.Error("run() expected error for missing page")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"frobnicate"}, &stdout, &stderr); err == nil {
		t.Error("run() expected error for unknown command")
	}
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Error("run() expected error without command")
	}
	if err := run([]string{"help"}, &stdout, &stderr); err != nil {
		t.Errorf("help failed: %v", err)
	}
}

func TestLoader_Reload(t *testing.T) {
	in := writePage(t)
	var stderr bytes.Buffer
	c := common{input: in}
	cfg, logger, err := c.load(&stderr)
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}

	load, err := loader(cfg.Input, logger, true)
	if err != nil {
		t.Fatalf("loader() failed: %v", err)
	}
	records, err := load(context.Background())
	if err != nil || len(records) != 2 {
		t.Fatalf("load() = %v, %v", records, err)
	}

	// A second team appears on the next read.
	page := strings.Replace(resultsPage, `<td id="c13"></td>`, `<td id="c13">Golf</td>`, 1)
	page = strings.Replace(page, "<td>(1)</td></tr></table>", "<td>(1)</td></tr><tr><td>t</td><td>1:00:00</td></tr></table>", 1)
	if err := os.WriteFile(in, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err = load(context.Background())
	if err != nil || len(records) != 3 || records[2].Team != "GOLF" {
		t.Errorf("reloaded = %+v, %v", records, err)
	}
}
