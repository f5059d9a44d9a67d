package writers

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyFileWriterCreatesOnFirstWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closing_ceremony.html")
	w := NewLazyFileWriter(path, 0o644)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	n, err := w.Write([]byte("<html>"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, err = w.Write([]byte("</html>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestLazyFileWriterNoFileWithoutWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closing_ceremony.html")
	w := NewLazyFileWriter(path, 0o644)
	require.NoError(t, w.Close())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLazyWriteCloserInitFailure(t *testing.T) {
	wantErr := errors.New("no destination")
	w := NewLazyWriteCloser(func() (io.WriteCloser, error) { return nil, wantErr })

	_, err := w.Write([]byte("x"))
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, w.Close())
}
