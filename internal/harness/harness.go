// internal/harness/harness.go

// Package harness runs the benchpct pipeline: load samples, aggregate
// percentiles, print and write the report, classify groups, draw the chart.
package harness

import (
	"io"
	"os"
	"time"

	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mwiater/benchpct/internal/chart"
	"github.com/mwiater/benchpct/internal/config"
	"github.com/mwiater/benchpct/internal/group"
	"github.com/mwiater/benchpct/internal/report"
	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/samples"
	"github.com/mwiater/benchpct/internal/stats"
)

// Run executes every stage for cfg, printing the console report to stdout.
// It stops at the first failing stage; a report written before a chart
// failure is kept.
func Run(cfg config.Config, stdout io.Writer) (RunResult, error) {
	res := RunResult{Config: cfg}

	if cfg.Debug {
		pp.Fprintln(log.StandardLogger().Out, cfg)
	}

	// Resolve everything configurable before touching the input.
	var format report.Format
	if cfg.Output != "" {
		f, err := report.ResolveFormat(cfg.Format, cfg.Output)
		if err != nil {
			return res, err
		}
		format = f
	}
	var opts chart.Options
	if cfg.Plot {
		o, err := ChartOptions(cfg)
		if err != nil {
			return res, err
		}
		opts = o
	}

	rows, err := LoadRows(cfg)
	if err != nil {
		return res, err
	}
	res.Rows = rows
	percentiles := cfg.Percentiles
	if len(rows) > 0 {
		percentiles = rows[0].Percentiles
	}
	opts.Percentiles = percentiles

	if err := report.WriteConsole(stdout, rows); err != nil {
		return res, errors.Wrap(err, "console report")
	}

	if cfg.Output != "" {
		path, err := report.Write(cfg.Output, format, rows, percentiles)
		if err != nil {
			return res, err
		}
		res.ReportPath = path
		log.WithFields(log.Fields{"path": path, "format": format.String(), "rows": len(rows)}).Info("Report written")
	}

	res.Groups = group.Classify(rows)
	res.Summaries = Summarize(res.Groups)
	log.WithField("groups", len(res.Groups)).Debug("Cases classified")

	if cfg.Plot {
		if err := chart.Render(cfg.PlotFile, rows, res.Groups, opts); err != nil {
			return res, err
		}
		res.ChartPath = cfg.PlotFile
		log.WithFields(log.Fields{
			"path":   cfg.PlotFile,
			"mode":   chart.ModeName(opts.Mode),
			"panels": chart.PanelCount(opts.Mode, res.Groups, percentiles),
		}).Info("Chart written")
	}

	res.GeneratedAt = time.Now()
	return res, nil
}

// LoadRows produces the percentile rows for cfg: from a previously written
// JSON report when cfg.Report is set, otherwise by aggregating cfg.Input.
func LoadRows(cfg config.Config) ([]stats.Row, error) {
	if cfg.Report != "" {
		return loadReport(cfg.Report)
	}

	log.WithField("path", cfg.Input).Info("Loading benchmark results")
	set, err := samples.LoadFile(cfg.Input)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"cases":   set.Len(),
		"samples": set.Total(),
		"host":    set.Context.HostName,
		"cpus":    set.Context.NumCPUs,
		"build":   set.Context.LibraryBuildType,
	}).Debug("Samples loaded")
	if cfg.Debug {
		pp.Fprintln(log.StandardLogger().Out, set.Context)
	}

	return stats.Aggregate(set, cfg.Field, cfg.Percentiles)
}

func loadReport(path string) ([]stats.Row, error) {
	log.WithField("path", path).Info("Loading report")
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(&reporterrors.ErrIO{Path: path, Op: "open", Err: err})
	}
	defer f.Close()
	return report.ReadJSON(f)
}

// ChartOptions maps the plot settings of cfg onto chart options.
func ChartOptions(cfg config.Config) (chart.Options, error) {
	mode, err := chart.ParseMode(cfg.PlotMode)
	if err != nil {
		return chart.Options{}, err
	}
	style := chart.DefaultStyle()
	style.DPI = cfg.DPI
	return chart.Options{
		Field:       cfg.Field,
		Percentiles: cfg.Percentiles,
		Mode:        mode,
		Style:       style,
	}, nil
}
