package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
)

// readRows decodes the observables saved in path ("-" reads stdin) and
// flattens them.
func readRows(stdin io.Reader, path string) ([]*observable.FlatRow, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, withCode(exitIO, fmt.Errorf("read %s: %w", path, err))
	}
	nodes, err := observable.Decode(data)
	if err != nil {
		return nil, withCode(exitInput, err)
	}
	return observable.Flatten(nodes), nil
}
