package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/hubconf/pkg/render"
)

// configurationRenderCmd represents the configuration render command
var configurationRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the hub configuration file",
	Long: `Assemble the configuration and write it to a file, by default as the
jupyterhub_config.py the hub loads at startup. The file is replaced
atomically and is not touched when assembly fails.

With --watch, the file given by --env-file is watched and the output is
rewritten whenever it changes. The hub still has to be restarted to pick up
the new file.

Example:
  hubconf configuration render --out /srv/jupyterhub/jupyterhub_config.py
  hubconf configuration render --env-file .env --out jupyterhub_config.py --watch`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := renderOptions{}
		opts.out, _ = cmd.Flags().GetString("out")
		opts.output, _ = cmd.Flags().GetString("output")
		opts.watch, _ = cmd.Flags().GetBool("watch")

		src, err := sourceFromFlags(cmd)
		if err == nil {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			err = renderConfiguration(ctx, src, opts)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationRenderCmd)
	configurationRenderCmd.Flags().String("out", "jupyterhub_config.py", "Path of the file to write")
	configurationRenderCmd.Flags().StringP("output", "o", "python", "Output format (text, json, yaml or python)")
	configurationRenderCmd.Flags().Bool("watch", false, "Rewrite the output whenever --env-file changes")
}

type renderOptions struct {
	out    string
	output string
	watch  bool
	// ready, when set, is closed once the watcher is installed
	ready chan struct{}
}

func renderConfiguration(ctx context.Context, src source, opts renderOptions) error {
	format, err := render.Parse(opts.output)
	if err != nil {
		return err
	}
	if opts.watch && src.envFile == "" {
		return fmt.Errorf("--watch requires --env-file")
	}

	if err := renderOnce(src, format, opts.out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s configuration to %s\n", src.variant, opts.out)

	if !opts.watch {
		return nil
	}
	return watchEnvFile(ctx, src.envFile, opts.ready, func() {
		if err := renderOnce(src, format, opts.out); err != nil {
			log.WithError(err).Error("Keeping previous configuration")
			return
		}
		log.WithField("path", opts.out).Info("Configuration rewritten")
	})
}

func renderOnce(src source, format render.Format, path string) error {
	cfg, err := src.assemble()
	if err != nil {
		return fmt.Errorf("failed to assemble configuration: %w", err)
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, cfg, format); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic replaces path with data via a temp file in the same
// directory, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// watchEnvFile calls onChange whenever filename is written or replaced. The
// parent directory is watched because editors and secret mounts replace
// files rather than write them in place.
func watchEnvFile(ctx context.Context, filename string, ready chan struct{}, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	log.WithField("file", filename).Info("Watching for changes")
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				log.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("Env file changed")
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watcher error")
		case <-ctx.Done():
			log.Info("Shutting down")
			return nil
		}
	}
}
