package dash

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/midbel/epicharts"
	"github.com/midbel/epicharts/dom"
	"github.com/midbel/epicharts/store"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Dash owns the page and the svg elements of the charts of a configuration.
// Charts with their own output are kept out of the page.
type Dash struct {
	Config

	stores Stores
	page   *html.Node
	charts map[string]*html.Node
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Dash, error) {
	if logger == nil {
		logger = slog.Default()
	}
	stores, err := LoadStores(cfg)
	if err != nil {
		return nil, err
	}
	d := Dash{
		Config: cfg,
		stores: stores,
		logger: logger.With(slog.String("module", "dash")),
	}
	d.build()
	return &d, nil
}

// Render draws every chart of cfg and writes them. The page goes to w when
// the configuration has no output.
func Render(ctx context.Context, cfg Config, w io.Writer, logger *slog.Logger) error {
	d, err := New(cfg, logger)
	if err != nil {
		return err
	}
	if err := d.Draw(ctx); err != nil {
		return err
	}
	return d.Write(ctx, w)
}

func (d *Dash) Page() *html.Node {
	return d.page
}

// Chart returns the svg element of the chart id.
func (d *Dash) Chart(id string) (*html.Node, bool) {
	el, ok := d.charts[id]
	return el, ok
}

// Draw clears and draws every chart concurrently. Each goroutine only
// touches the subtree of its own svg element.
func (d *Dash) Draw(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.NumCPU())
	for _, c := range d.Charts {
		var (
			ch  = c
			svg = d.charts[c.ID]
		)
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := d.clearChart(svg, ch); err != nil {
				return ChartError{ID: ch.ID, Err: err}
			}
			if err := d.drawChart(svg, ch); err != nil {
				return ChartError{ID: ch.ID, Err: err}
			}
			d.logger.Debug("chart drawn", slog.String("id", ch.ID), slog.String("kind", ch.Kind))
			return nil
		})
	}
	return grp.Wait()
}

// Write writes the standalone charts to their files and the page either to
// its output file or to w. The page is skipped when it has no chart and no
// output file.
func (d *Dash) Write(ctx context.Context, w io.Writer) error {
	grp, ctx := errgroup.WithContext(ctx)
	for _, c := range d.Charts {
		if c.Output == "" {
			continue
		}
		ch := c
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFile(ch.Output, d.charts[ch.ID]); err != nil {
				return ChartError{ID: ch.ID, Err: err}
			}
			d.logger.Info("chart written", slog.String("id", ch.ID), slog.String("file", ch.Output))
			return nil
		})
	}
	switch {
	case d.Output != "":
		grp.Go(func() error {
			if err := writeFile(d.Output, d.page); err != nil {
				return err
			}
			d.logger.Info("page written", slog.String("file", d.Output))
			return nil
		})
	case d.inPage() && w != nil:
		grp.Go(func() error {
			return WriteNode(w, d.page)
		})
	}
	return grp.Wait()
}

// Reload replaces the configuration and the datasets. The page is rebuilt
// only when the charts or the page settings changed, otherwise the existing
// svg elements are kept and redrawn by the next call to Draw.
func (d *Dash) Reload(cfg Config) error {
	stores, err := LoadStores(cfg)
	if err != nil {
		return err
	}
	rebuild := d.Title != cfg.Title ||
		d.Layer != cfg.Layer ||
		d.LayerIcon != cfg.LayerIcon ||
		d.Width != cfg.Width ||
		d.Height != cfg.Height ||
		!slices.Equal(d.Charts, cfg.Charts)

	d.Config = cfg
	d.stores = stores
	if rebuild {
		d.logger.Debug("rebuilding page", slog.Int("charts", len(cfg.Charts)))
		d.build()
	}
	return nil
}

func (d *Dash) build() {
	d.page = dom.NewPage(d.Title)
	d.charts = make(map[string]*html.Node)

	body := dom.Body(d.page)
	if d.Layer {
		body.AppendChild(epicharts.NewLayer(d.LayerIcon))
	}
	var tooltip bool
	for _, c := range d.Charts {
		w, h := d.Size(c)
		svg := dom.NewSVG(c.ID, w, h)
		d.charts[c.ID] = svg
		if c.Output != "" {
			continue
		}
		body.AppendChild(svg)
		tooltip = tooltip || c.Kind == KindLine
	}
	if tooltip {
		store.EnsureTooltip(body)
	}
}

func (d *Dash) inPage() bool {
	return slices.ContainsFunc(d.Charts, func(c Chart) bool {
		return c.Output == ""
	})
}

func (d *Dash) drawChart(svg *html.Node, c Chart) error {
	switch c.Kind {
	case KindLine:
		data, err := d.stores.LineSerie(c)
		if err != nil {
			return err
		}
		return d.stores.Lines.DrawLineChart(svg, c.ID, data, c.Title)
	case KindPie:
		data, err := d.stores.PieSerie(c)
		if err != nil {
			return err
		}
		return d.stores.Pies.DrawPie(svg, c.ID, data, c.Title)
	default:
		return fmt.Errorf("%s: unknown chart kind", c.Kind)
	}
}

func (d *Dash) clearChart(svg *html.Node, c Chart) error {
	switch c.Kind {
	case KindLine:
		return d.stores.Lines.ClearLineChart(svg, c.ID)
	case KindPie:
		if err := d.stores.Pies.ClearPie(svg, c.ID); err != nil {
			return err
		}
		// ClearPie leaves the empty groups behind
		dom.RemoveChildren(svg)
		return nil
	default:
		return fmt.Errorf("%s: unknown chart kind", c.Kind)
	}
}

func writeFile(file string, n *html.Node) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	defer w.Close()
	return WriteNode(w, n)
}

// WriteNode renders n to w through a buffer.
func WriteNode(w io.Writer, n *html.Node) error {
	ws := bufio.NewWriter(w)
	if err := dom.Render(ws, n); err != nil {
		return err
	}
	return ws.Flush()
}
