package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// readInput reads a file, or stdin when f is "-"
func readInput(cmd *cobra.Command, f string) ([]byte, error) {
	if f == "-" {
		data, err := ioutil.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
		return data, nil
	}

	return ioutil.ReadFile(f)
}

func printJSON(w io.Writer, v interface{}) error {
	s, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshalling output")
	}

	_, err = fmt.Fprintf(w, "%s\n", s)
	return err
}
