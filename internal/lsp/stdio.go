package lsp

import (
	"io"
	"os"
)

// stdioStream adapts stdin/stdout to the io.ReadWriteCloser the JSON-RPC
// stream layer expects.
type stdioStream struct{}

// Stdio returns a stream over the process's stdin and stdout.
func Stdio() io.ReadWriteCloser {
	return stdioStream{}
}

func (stdioStream) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioStream) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdioStream) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
