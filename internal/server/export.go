package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtkav/redditviz/internal/viewport"
)

// Export writes a standalone page for v to path.
func (d *Dashboard) Export(ctx context.Context, path string, v viewport.Viewport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := d.WritePage(ctx, f, v, ""); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	d.logger.Info("page exported", "path", path, "viewport", v.String())
	return nil
}
