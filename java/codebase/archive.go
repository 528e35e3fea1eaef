package codebase

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// IsArchive reports whether path names a zip or jar file.
func IsArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".jar":
		return true
	}
	return false
}

// ArchivePath is the name under which an archive entry is stored.
func ArchivePath(archive, entry string) string {
	return archive + "!/" + entry
}

// ScanArchive parses the Java sources inside a zip or jar file, such as a
// JDK's src.zip. Entries are read one after another and parsed in parallel.
func (c *Codebase) ScanArchive(ctx context.Context, path string) error {
	f, err := c.fs.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("read archive %s: %w", path, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	count := 0
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !c.cfg.Included(entry.Name) {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		content, err := readEntry(entry)
		if err != nil {
			log.Warningf("skip %s: %s", ArchivePath(path, entry.Name), err)
			continue
		}
		name := ArchivePath(path, entry.Name)
		count++
		g.Go(func() error {
			return c.UpdateFile(gctx, name, content).Err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Infof("scanned %d files in %s", count, path)
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
