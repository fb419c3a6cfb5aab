package pipeline

import (
	"os"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Load reads the document named by opts and returns the tree and the raw
// bytes it was decoded from.
func Load(opts Options) (*tree.Node, []byte, error) {
	data, format := opts.Data, opts.Format
	if len(data) == 0 {
		var err error
		if format == "" {
			if format, err = tree.FormatFromPath(opts.Input); err != nil {
				return nil, nil, err
			}
		}
		data, err = os.ReadFile(opts.Input)
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", opts.Input)
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", opts.Input)
		}
	}
	root, err := tree.Parse(data, format)
	if err != nil {
		return nil, nil, err
	}
	return root, data, nil
}
