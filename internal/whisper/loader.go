package whisper

import (
	"context"
	"fmt"
	"os"
)

// NewDiskLoader returns a LoadFunc that prepares a per-instance scratch
// directory under baseDir. Weights land in the shared download root on first
// use; the private scratch directory is what keeps concurrently checked-out
// instances from clobbering each other's output files.
func NewDiskLoader(baseDir string) LoadFunc {
	return func(ctx context.Context, model ModelID) (*Instance, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure model work root: %w", err)
		}
		dir, err := os.MkdirTemp(baseDir, string(model)+"-")
		if err != nil {
			return nil, fmt.Errorf("create instance workdir: %w", err)
		}
		return &Instance{Model: model, WorkDir: dir}, nil
	}
}
