package cli

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/fuellog/internal/client/export"
	"github.com/dmitrijs2005/fuellog/internal/filex"
)

// Export writes the ledger to an XLSX file and optionally uploads it:
//
//	export [path] [upload]
func (a *App) Export(ctx context.Context, args []string) error {
	path := export.FileName(a.now())
	upload := false
	for _, arg := range args {
		if arg == "upload" {
			upload = true
			continue
		}
		path = arg
	}

	rows, err := a.entryService.List(ctx)
	if err != nil {
		a.println("error:", err)
		return err
	}
	data, err := export.Bytes(rows)
	if err != nil {
		a.println("error:", err)
		return err
	}
	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		a.println("error:", err)
		return err
	}
	a.printf("Exported %d entries to %s\n", len(rows), path)

	if !upload {
		return nil
	}
	u, err := a.newUploader(ctx)
	if err != nil {
		a.println("Upload not possible:", err)
		return err
	}
	key, err := u.Upload(ctx, filepath.Base(path), data)
	if err != nil {
		a.logger.Error(ctx, "archive upload failed", "error", err)
		a.println("Upload failed:", err)
		return err
	}
	a.printf("Uploaded to %s\n", key)
	return nil
}
