package parser

import (
	"io"
	"os"
)

// osOpener is the default FileOpener: real files via os.Open.
type osOpener struct{}

func (osOpener) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
