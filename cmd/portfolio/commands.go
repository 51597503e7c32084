package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	portfolio "github.com/gbxnga/gbengaoni.com-v2"
)

func runServe(args []string) error {
	fset := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fset.String("config", portfolio.EnvOr("PORTFOLIO_CONFIG", ""), "YAML config file")
	if err := fset.Parse(args); err != nil {
		return err
	}

	cfg, err := portfolio.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	app := portfolio.New(cfg)
	defer app.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sig:
		return app.Echo.Close()
	}
}

// runHead prints the fragment without starting the server. Overrides are
// read from the configured database only if it already exists.
func runHead(args []string, out io.Writer) error {
	fset := flag.NewFlagSet("head", flag.ContinueOnError)
	configPath := fset.String("config", portfolio.EnvOr("PORTFOLIO_CONFIG", ""), "YAML config file")
	pagePath := fset.String("path", "/", "page path")
	if err := fset.Parse(args); err != nil {
		return err
	}

	cfg, err := portfolio.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	p, err := portfolio.NormalizePath(*pagePath)
	if err != nil {
		return err
	}

	var src portfolio.PageSource
	if _, err := os.Stat(cfg.DatabasePath); err == nil {
		store, err := portfolio.NewStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
		}
		defer store.Close()
		src = store
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	frag, _, err := portfolio.HeadFor(cfg.HeadConfig(), src, p)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, frag.String())
	return err
}
