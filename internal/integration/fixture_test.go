// internal/integration/fixture_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"clonexport/core/translate"
	"clonexport/internal/app"
	"clonexport/pkg/api"
)

// Four clones, counts 50/30/15/5:
//
//	1  TGTGCCAGCAGTTTC  in frame, CASSF
//	2  TGTGCCAG         out of frame
//	3  TGTTAAGCC        in frame, stop codon (C*A)
//	4  TGTGCCTTC        in frame, CAF
func fixture() api.CloneSetV1 {
	mk := func(id int, count int64, cdr3 string) api.CloneV1 {
		return api.CloneV1{
			ID:    id,
			Count: count,
			Targets: []api.TargetV1{{
				Features: map[string]api.SeqV1{"CDR3": {Seq: cdr3}},
				Frames:   map[string]translate.Frame{"CDR3": {Offset: 0}},
			}},
		}
	}
	return api.CloneSetV1{
		Version:            api.CloneSetVersion,
		AssemblingFeatures: []string{"CDR3"},
		Clones: []api.CloneV1{
			mk(3, 15, "TGTTAAGCC"),
			mk(1, 50, "TGTGCCAGCAGTTTC"),
			mk(4, 5, "TGTGCCTTC"),
			mk(2, 30, "TGTGCCAG"),
		},
	}
}

func writeSet(t *testing.T, doc api.CloneSetV1, gz bool) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	name := "set.clns.json"
	if gz {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		b = buf.Bytes()
		name += ".gz"
	}
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, b, 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, argv ...string) result {
	t.Helper()
	return runStdin(t, nil, argv...)
}

func runStdin(t *testing.T, stdin []byte, argv ...string) result {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.RunIO(context.Background(), argv, bytes.NewReader(stdin), &out, &errBuf)
	return result{code: code, stdout: out.String(), stderr: errBuf.String()}
}
