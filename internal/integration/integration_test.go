// internal/integration/integration_test.go
package integration

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"clonexport/internal/app"
	"clonexport/pkg/api"
)

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestExportDefaultColumns(t *testing.T) {
	in := writeSet(t, fixture(), false)
	r := run(t, "export", "--no-progress", in)
	if r.code != 0 {
		t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
	}
	got := lines(r.stdout)
	if len(got) != 5 {
		t.Fatalf("want header + 4 rows, got %d:\n%s", len(got), r.stdout)
	}
	wantHeader := "Clone ID\tClone count\tClone fraction\tNumber of targets\tN. Seq. CDR3\tQual. CDR3\tAA. Seq. CDR3"
	if got[0] != wantHeader {
		t.Fatalf("header = %q", got[0])
	}
	if got[1] != "1\t50\t0.5\t1\tTGTGCCAGCAGTTTC\t!!!!!!!!!!!!!!!\tCASSF" {
		t.Fatalf("first row = %q", got[1])
	}
	// abundance order
	for i, id := range []string{"1", "2", "3", "4"} {
		if !strings.HasPrefix(got[i+1], id+"\t") {
			t.Fatalf("row %d = %q, want id %s", i+1, got[i+1], id)
		}
	}
	if !strings.Contains(r.stderr, "loaded clone set") {
		t.Fatalf("expected load log on stderr, got %q", r.stderr)
	}
}

func TestProductiveFiltersRecalculateFractions(t *testing.T) {
	in := writeSet(t, fixture(), false)
	r := run(t, "export", "--no-progress", "-o", "-t", "-f", "-cloneId -fraction", "--no-header", in)
	if r.code != 0 {
		t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
	}
	want := []string{
		"1\t" + strconv.FormatFloat(50.0/55.0, 'g', -1, 64),
		"4\t" + strconv.FormatFloat(5.0/55.0, 'g', -1, 64),
	}
	if got := lines(r.stdout); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %q, want %q", got, want)
	}
}

func TestOutOfFrameOnly(t *testing.T) {
	in := writeSet(t, fixture(), false)
	r := run(t, "export", "--no-progress", "--filter-out-of-frames", "-f", "-cloneId", "--no-header", in)
	if got := strings.Join(lines(r.stdout), ","); got != "1,3,4" {
		t.Fatalf("ids = %s (exit %d)", got, r.code)
	}
}

func TestCutoffAndLimit(t *testing.T) {
	in := writeSet(t, fixture(), false)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"min fraction", []string{"-q", "0.2"}, "1,2"},
		{"min count", []string{"-m", "15"}, "1,2,3"},
		{"limit", []string{"-n", "1"}, "1"},
		{"limit beyond cutoff", []string{"-q", "0.2", "-n", "3"}, "1,2"},
		{"ids", []string{"--clone-ids", "2,4"}, "2,4"},
		{"exclude", []string{"--exclude-ids", "1"}, "2,3,4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			argv := append([]string{"export", "--no-progress", "-f", "-cloneId", "--no-header"}, tc.args...)
			r := run(t, append(argv, in)...)
			if r.code != 0 {
				t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
			}
			if got := strings.Join(lines(r.stdout), ","); got != tc.want {
				t.Fatalf("ids = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNoClonesWritten(t *testing.T) {
	in := writeSet(t, fixture(), false)
	r := run(t, "export", "--no-progress", "-m", "1000", in)
	if r.code != 1 {
		t.Fatalf("exit %d, want 1", r.code)
	}
	// header is still written
	if len(lines(r.stdout)) != 1 {
		t.Fatalf("stdout = %q", r.stdout)
	}
	r = run(t, "export", "--no-progress", "-m", "1000", "--no-match-exit-code", "0", in)
	if r.code != 0 {
		t.Fatalf("exit %d, want 0", r.code)
	}
}

func TestJSONLToFile(t *testing.T) {
	in := writeSet(t, fixture(), true)
	out := filepath.Join(t.TempDir(), "out.jsonl")
	r := run(t, "export", "--no-progress", "--format", "jsonl", "-f", "-cloneId -aaFeature CDR3", in, out)
	if r.code != 0 {
		t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
	}
	if r.stdout != "" {
		t.Fatalf("stdout should be empty, got %q", r.stdout)
	}
	fh, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	var rows []api.CloneRowV1
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		var row api.CloneRowV1
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		rows = append(rows, row)
	}
	if len(rows) != 4 || rows[0].CloneID != 1 || len(rows[2].Fields) != 2 || rows[2].Fields[1] != (api.FieldV1{Header: "AA. Seq. CDR3", Value: "C*A"}) {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestFASTAFromStdin(t *testing.T) {
	b, err := json.Marshal(fixture())
	if err != nil {
		t.Fatal(err)
	}
	r := runStdin(t, b, "export", "--no-progress", "--format", "fasta", "-n", "2", "-", "-")
	if r.code != 0 {
		t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
	}
	if !strings.HasPrefix(r.stdout, ">clone_1 count=50 fraction=0.5\n") || !strings.Contains(r.stdout, "TGTGCCAGCAGTTTC") {
		t.Fatalf("stdout = %q", r.stdout)
	}
	if strings.Count(r.stdout, ">") != 2 {
		t.Fatalf("want 2 records, got %q", r.stdout)
	}
}

func TestFASTAWithoutFeatureIsNoMatch(t *testing.T) {
	in := writeSet(t, fixture(), false)
	prom := filepath.Join(t.TempDir(), "clonexport.prom")
	r := run(t, "export", "--no-progress", "--format", "fasta", "--fasta-feature", "VDJRegion", "--metrics-file", prom, in)
	if r.code != 1 {
		t.Fatalf("exit %d, want 1, stderr=%s", r.code, r.stderr)
	}
	if r.stdout != "" {
		t.Fatalf("stdout = %q", r.stdout)
	}
	b, err := os.ReadFile(prom)
	if err != nil {
		t.Fatal(err)
	}
	var gauge string
	for _, l := range lines(string(b)) {
		if strings.HasPrefix(l, "clonexport_clones_written{") {
			gauge = l
		}
	}
	if !strings.HasSuffix(gauge, "} 0") {
		t.Fatalf("written gauge = %q", gauge)
	}
}

func TestLongProgressIntervalDoesNotDelayExit(t *testing.T) {
	in := writeSet(t, fixture(), false)
	start := time.Now()
	r := run(t, "export", "--quiet", "--progress-interval", "1h", in)
	if r.code != 0 {
		t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
	}
	if d := time.Since(start); d > 5*time.Second {
		t.Fatalf("export took %v", d)
	}
	if !strings.Contains(r.stderr, "Exporting clones: 100.0%") {
		t.Fatalf("stderr = %q", r.stderr)
	}
}

func TestProgressOnStderr(t *testing.T) {
	in := writeSet(t, fixture(), false)
	r := run(t, "export", "--quiet", "--progress-interval", "5ms", in)
	if r.code != 0 {
		t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
	}
	if !strings.Contains(r.stderr, "Exporting clones: 100.0%") {
		t.Fatalf("stderr = %q", r.stderr)
	}
	if strings.Contains(r.stderr, "loaded clone set") {
		t.Fatalf("--quiet should drop info logs: %q", r.stderr)
	}
}

func TestMetricsFile(t *testing.T) {
	in := writeSet(t, fixture(), false)
	prom := filepath.Join(t.TempDir(), "clonexport.prom")
	r := run(t, "export", "--no-progress", "-o", "--metrics-file", prom, in)
	if r.code != 0 {
		t.Fatalf("exit %d, stderr=%s", r.code, r.stderr)
	}
	b, err := os.ReadFile(prom)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"clonexport_clones_loaded", "clonexport_clones_filtered_out", "clonexport_clones_written", "clonexport_cutoff_index"} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("metrics missing %s:\n%s", want, b)
		}
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	in := writeSet(t, fixture(), false)
	cfg := filepath.Join(t.TempDir(), "clonexport.yaml")
	yaml := "no-progress: true\nno-header: true\nfields: -cloneId\nminimal-clone-count: 10\n"
	if err := os.WriteFile(cfg, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	r := run(t, "export", "--config", cfg, in)
	if got := strings.Join(lines(r.stdout), ","); got != "1,2,3" {
		t.Fatalf("ids = %s (exit %d, stderr=%s)", got, r.code, r.stderr)
	}

	t.Setenv("CLONEXPORT_LIMIT", "1")
	r = run(t, "export", "--config", cfg, in)
	if got := strings.Join(lines(r.stdout), ","); got != "1" {
		t.Fatalf("ids = %s", got)
	}
}

func TestUsageErrors(t *testing.T) {
	in := writeSet(t, fixture(), false)
	cases := []struct {
		name string
		argv []string
	}{
		{"no input", []string{"export"}},
		{"too many args", []string{"export", in, "a", "b"}},
		{"unknown flag", []string{"export", "--frobnicate", in}},
		{"unknown command", []string{"frobnicate"}},
		{"bad field", []string{"export", "-f", "-nope", in}},
		{"bad format", []string{"export", "--format", "xml", in}},
		{"bad fraction", []string{"export", "-q", "2", in}},
		{"missing input", []string{"export", filepath.Join(t.TempDir(), "none.json")}},
		{"unknown preset", []string{"presets", "nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := run(t, tc.argv...)
			if r.code != 2 {
				t.Fatalf("exit %d, want 2 (stderr=%s)", r.code, r.stderr)
			}
			if r.stderr == "" {
				t.Fatalf("expected a message on stderr")
			}
		})
	}
}

func TestPresetsAndVersion(t *testing.T) {
	r := run(t, "presets")
	if r.code != 0 || !strings.Contains(r.stdout, "default") || !strings.Contains(r.stdout, "rna-seq") {
		t.Fatalf("presets: exit %d, stdout=%q", r.code, r.stdout)
	}
	r = run(t, "presets", "default")
	if r.code != 0 || !strings.Contains(r.stdout, "featureToAlign: VTranscriptWithout5UTR") {
		t.Fatalf("presets default: exit %d, stdout=%q", r.code, r.stdout)
	}
	r = run(t, "presets", "--json", "rna-seq")
	var p map[string]json.RawMessage
	if r.code != 0 || json.Unmarshal([]byte(r.stdout), &p) != nil || p["V"] == nil {
		t.Fatalf("presets --json: exit %d, stdout=%q", r.code, r.stdout)
	}
	r = run(t, "version")
	if r.code != 0 || !strings.HasPrefix(r.stdout, "clonexport version ") {
		t.Fatalf("version: exit %d, stdout=%q", r.code, r.stdout)
	}
	r = run(t, "--help")
	if r.code != 0 || !strings.Contains(r.stdout, "export") {
		t.Fatalf("help: exit %d, stdout=%q", r.code, r.stdout)
	}
}

func TestRunWrapper(t *testing.T) {
	if code := app.Run([]string{"version"}, io.Discard, io.Discard); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if code := app.RunContext(context.Background(), []string{"export"}, io.Discard, io.Discard); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
