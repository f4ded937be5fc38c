package bench

import (
	"fmt"
	"io"
	"os"

	"github.com/ugorji/go/codec"
)

func handle(format string) (codec.Handle, error) {
	switch format {
	case "json":
		h := new(codec.JsonHandle)
		h.Indent = 2
		return h, nil
	case "msgpack":
		return new(codec.MsgpackHandle), nil
	default:
		return nil, fmt.Errorf("unknown result format %q", format)
	}
}

// WriteResults encodes results to w as "json" or "msgpack".
func WriteResults(w io.Writer, format string, results []Result) error {
	h, err := handle(format)
	if err != nil {
		return err
	}
	return codec.NewEncoder(w, h).Encode(results)
}

// ReadResults decodes results written by WriteResults.
func ReadResults(r io.Reader, format string) ([]Result, error) {
	h, err := handle(format)
	if err != nil {
		return nil, err
	}
	var results []Result
	if err := codec.NewDecoder(r, h).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return results, nil
}

// WriteFile writes results to path, replacing any existing file.
func WriteFile(path, format string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteResults(f, format, results); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
