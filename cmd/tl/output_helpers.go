package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amonks/tasklist/server"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// clientError adds a hint when the server could not be reached.
func clientError(client *server.Client, err error) error {
	if server.IsUnavailable(err) {
		return fmt.Errorf("%w (is tl serve running at %s?)", err, client.BaseURL())
	}
	return err
}
