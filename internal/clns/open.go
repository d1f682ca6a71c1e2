// internal/clns/open.go
package clns

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// open returns a reader over path ("-" is stdin), gunzipping when the data
// starts with the gzip magic (1F 8B) or the name ends in .gz. Sniffing the
// magic through a bufio.Reader works for pipes as well as files.
func open(path string, stdin io.Reader) (io.ReadCloser, error) {
	src, closeSrc := stdin, func() error { return nil }
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closeSrc = fh, fh.Close
	}
	br := bufio.NewReaderSize(src, 64<<10)
	if !isGzip(br) && !strings.HasSuffix(path, ".gz") {
		return readCloser{br, closeSrc}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		_ = closeSrc()
		return nil, err
	}
	return readCloser{gr, func() error { return errors.Join(gr.Close(), closeSrc()) }}, nil
}

func isGzip(br *bufio.Reader) bool {
	sig, _ := br.Peek(2)
	return len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b
}
