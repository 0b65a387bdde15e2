package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// outputOptions selects between the styled report and raw JSON.
type outputOptions struct {
	json bool
}

func (o *outputOptions) bind(fs *pflag.FlagSet) {
	fs.BoolVar(&o.json, "json", false, "Print JSON instead of a formatted report")
}

func (o outputOptions) write(w io.Writer, v any, render func() string) error {
	if o.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(w, render())
	return err
}

// readInput decodes a YAML or JSON document from path, or from stdin when
// path is "-".
func readInput(path string, stdin io.Reader, out any) error {
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
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
