package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/vtree/appcomponents"
	"github.com/vcrobe/vtree/console"
	"github.com/vcrobe/vtree/ssr"
	"github.com/vcrobe/vtree/ssr/pagecache"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var cached bool
	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render the page of a route to HTML.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			var cache *pagecache.Cache
			if cached || opts.cfg.Cache.Enabled {
				c, err := pagecache.Open(opts.cfg.Cache.Path, console.Logger())
				if err != nil {
					return err
				}
				defer c.Close()
				cache = c
			}
			page, err := renderPage(opts, cache, path)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), page.HTML)
			return err
		},
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "serve the page from the page cache and store it after rendering")
	return cmd
}

// renderPage renders path with a fresh application. With a cache, a stored
// page is returned as is and a rendered page is stored unless path matches no
// route.
func renderPage(opts *rootOptions, cache *pagecache.Cache, path string) (ssr.Page, error) {
	logger := console.Logger()
	if cache != nil {
		entry, err := cache.Get(path)
		if err == nil {
			logger.Debug("page cache hit", zap.String("route", path))
			return ssr.Page{HTML: entry.HTML, ETag: entry.ETag}, nil
		}
		if !errors.Is(err, pagecache.ErrNotFound) {
			return ssr.Page{}, err
		}
	}

	app := appcomponents.New(nil)
	node, err := app.Routes().Resolve(path)
	if err != nil {
		return ssr.Page{}, fmt.Errorf("render %s: %w", path, err)
	}
	page, stats := ssr.NewPageRenderer(opts.cfg.Render.Doctype, logger).Render(path, node, app.Context())
	logger.Debug("page rendered", zap.String("route", path), zap.Int("serialized", stats.Serialized))

	if _, _, err := app.Routes().Match(path); cache != nil && err == nil {
		if err := cache.Put(pagecache.Entry{Route: path, HTML: page.HTML, ETag: page.ETag, RenderedAt: time.Now()}); err != nil {
			return ssr.Page{}, err
		}
	}
	return page, nil
}
