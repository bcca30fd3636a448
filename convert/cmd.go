package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"texload/parallel"
	"texload/texture"

	"github.com/schollz/progressbar/v3"
)

type CLICmd struct {
	Scan   string `help:"Source folder to scan for textures" default:"."`
	Dest   string `help:"Destination folder for aligned textures. Relative to scan dir if not absolute." default:"aligned"`
	Format string `help:"Output format of converted textures" enum:"png,bmp,tiff,gif,jpeg,tga" default:"png"`
	RLE    bool   `help:"Run-length encode TGA output" default:"false"`
	Force  bool   `help:"Overwrite existing destination files" default:"false"`
	Quiet  bool   `help:"Do not show a progress bar" default:"false"`
}

func (c *CLICmd) Validate() error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Format == "" {
		c.Format = "png"
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var names []string
	for _, file := range files {
		if file.IsDir() || !texture.IsTexture(file.Name()) {
			continue
		}
		names = append(names, file.Name())
	}

	var bar *progressbar.ProgressBar
	if c.Quiet {
		bar = progressbar.DefaultSilent(int64(len(names)), "converting")
	} else {
		bar = progressbar.Default(int64(len(names)), "converting")
	}

	var processedCount, errCount atomic.Uint64
	for _, name := range names {
		pool.Submit(func() error {
			defer func() { _ = bar.Add(1) }()

			srcPath := filepath.Join(c.Scan, name)
			logger := slog.Default().With("file", srcPath)

			dest := destPath(c.Dest, name, c.Format)
			if err := checkDest(dest, c.Force); err != nil {
				errCount.Add(1)
				logger.Error("could not convert texture", "error", err)
				return err
			}

			img, err := texture.Read(logger, srcPath)
			if err != nil {
				errCount.Add(1)
				logger.Error("could not read texture", "error", err)
				return err
			}

			if err = save(img, c.Format, dest, c.RLE); err != nil {
				errCount.Add(1)
				logger.Error("could not save texture", "dest", dest, "error", err)
				return err
			}

			logger.Debug("converted", "dest", dest, "width", img.Width(), "height", img.Height())
			processedCount.Add(1)
			return nil
		})
	}

	err = pool.Wait()
	_ = bar.Finish()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if err != nil {
		return fmt.Errorf("error processing %d files: %w", errors, err)
	}
	return nil
}
