package writers

import (
	"io"
	"io/fs"
	"os"
)

// LazyWriteCloser delays opening the destination until the first write, so
// a run that fails before rendering never leaves a truncated or empty
// script file behind.
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

// NewLazyFileWriter lazily opens (and truncates) the file at path.
func NewLazyFileWriter(path string, perms fs.FileMode) *LazyWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perms)
	})
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		var err error
		f.writer, err = f.init()
		if err != nil {
			return 0, err
		}
	}
	return f.writer.Write(p)
}

func (f *LazyWriteCloser) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}
