package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/midbel/epicharts"
	"github.com/midbel/epicharts/dash"
)

type Context struct {
	context.Context
	Logger *slog.Logger
}

var cli struct {
	Verbose bool `help:"Log debug messages." short:"v"`

	Line     LineCmd     `cmd:"" help:"Draw an infection series as a line chart."`
	Pie      PieCmd      `cmd:"" help:"Draw the areas of a district as a pie chart."`
	Render   RenderCmd   `cmd:"" help:"Render the charts of a configuration file."`
	Watch    WatchCmd    `cmd:"" help:"Render the charts of a configuration file and redraw them on change."`
	Mix      MixCmd      `cmd:"" help:"Interpolate between two colors."`
	Distance DistanceCmd `cmd:"" help:"Print the Lab distance between two colors."`
	Date     DateCmd     `cmd:"" help:"Print the date some days before today."`
}

type ChartFlags struct {
	Title  string  `help:"Chart title."`
	Width  float64 `help:"Width of the svg." default:"600"`
	Height float64 `help:"Height of the svg." default:"400"`
	Output string  `help:"Output file, stdout when empty." short:"o" type:"path"`
}

func (f ChartFlags) config(kind string, ds dash.Datasets) dash.Config {
	cfg := dash.Default()
	cfg.Width = f.Width
	cfg.Height = f.Height
	cfg.Datasets = ds
	cfg.Charts = []dash.Chart{
		{
			Kind:   kind,
			ID:     kind,
			Title:  f.Title,
			Output: f.Output,
		},
	}
	return cfg
}

// render writes the lone chart of cfg to f.Output or to stdout.
func (f ChartFlags) render(ctx *Context, cfg dash.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	d, err := dash.New(cfg, ctx.Logger)
	if err != nil {
		return err
	}
	if err := d.Draw(ctx); err != nil {
		return err
	}
	if f.Output != "" {
		return d.Write(ctx, nil)
	}
	svg, _ := d.Chart(cfg.Charts[0].ID)
	return dash.WriteNode(os.Stdout, svg)
}

type LineCmd struct {
	ChartFlags `embed:""`

	Series     string `arg:"" optional:"" help:"Name of the infection series, total infections when omitted."`
	Infections string `help:"Infection series dataset." type:"existingfile"`
	Total      string `help:"Total infections dataset." type:"existingfile"`
}

func (c *LineCmd) Run(ctx *Context) error {
	cfg := c.config(dash.KindLine, dash.Datasets{
		Infections: c.Infections,
		Total:      c.Total,
	})
	cfg.Charts[0].Series = c.Series
	if cfg.Charts[0].Title == "" {
		cfg.Charts[0].Title = c.Series
	}
	return c.render(ctx, cfg)
}

type PieCmd struct {
	ChartFlags `embed:""`

	Group string `arg:"" optional:"" help:"Name of the district, first one when omitted."`
	Data  string `help:"Pie dataset." type:"existingfile"`
}

func (c *PieCmd) Run(ctx *Context) error {
	cfg := c.config(dash.KindPie, dash.Datasets{
		Pie: c.Data,
	})
	cfg.Charts[0].Group = c.Group
	if cfg.Charts[0].Title == "" {
		cfg.Charts[0].Title = c.Group
	}
	return c.render(ctx, cfg)
}

type RenderCmd struct {
	Config string `arg:"" help:"Configuration file." type:"existingfile"`
}

func (c *RenderCmd) Run(ctx *Context) error {
	cfg, err := dash.Load(c.Config)
	if err != nil {
		return err
	}
	return dash.Render(ctx, cfg, os.Stdout, ctx.Logger)
}

type WatchCmd struct {
	Config string `arg:"" help:"Configuration file." type:"existingfile"`
}

func (c *WatchCmd) Run(ctx *Context) error {
	w, err := dash.NewWatcher(c.Config, os.Stdout, ctx.Logger)
	if err != nil {
		return err
	}
	ctx.Logger.Info("watching", slog.String("file", c.Config))
	return w.Run(ctx)
}

type MixCmd struct {
	From   string  `arg:"" help:"First color, as #rrggbb."`
	To     string  `arg:"" help:"Second color, as #rrggbb."`
	Factor float64 `arg:"" optional:"" default:"0.5" help:"Weight of the second color, between 0 and 1."`
	Steps  int     `help:"Print a gradient of this many colors instead."`
}

func (c *MixCmd) Run(ctx *Context) error {
	if c.Steps > 0 {
		list, err := epicharts.Gradient(c.From, c.To, c.Steps)
		if err != nil {
			return err
		}
		for _, str := range list {
			fmt.Println(str)
		}
		return nil
	}
	str, err := epicharts.Mix(c.From, c.To, c.Factor)
	if err != nil {
		return err
	}
	fmt.Println(str)
	return nil
}

type DistanceCmd struct {
	A string `arg:"" help:"First color, as #rrggbb."`
	B string `arg:"" help:"Second color, as #rrggbb."`
}

func (c *DistanceCmd) Run(ctx *Context) error {
	dist, err := epicharts.Distance(c.A, c.B)
	if err != nil {
		return err
	}
	fmt.Printf("%.3f similar=%t\n", dist, dist < epicharts.SimilarThreshold)
	return nil
}

type DateCmd struct {
	Days int `arg:"" help:"Number of days to go back."`
}

func (c *DateCmd) Run(ctx *Context) error {
	fmt.Println(epicharts.DateBefore(time.Now(), c.Days))
	return nil
}
