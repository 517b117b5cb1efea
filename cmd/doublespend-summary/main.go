// Command doublespend-summary prints the summary table of a double-spend feed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/feed"
	"github.com/goodnatureofminers/doublespend-viewer/internal/format"
	"github.com/goodnatureofminers/doublespend-viewer/internal/metrics"
	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/internal/summary"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

const hashKeep = 4

type config struct {
	Coin         model.Coin    `long:"coin" env:"DOUBLESPEND_COIN" description:"coin name" default:"VTC"`
	Network      model.Network `long:"network" env:"DOUBLESPEND_NETWORK" description:"network name" default:"mainnet"`
	FeedPath     string        `long:"feed-path" env:"DOUBLESPEND_FEED_PATH" description:"path to the double-spend feed file"`
	FeedURL      string        `long:"feed-url" env:"DOUBLESPEND_FEED_URL" description:"URL of the double-spend feed"`
	FeedTimeout  time.Duration `long:"feed-timeout" env:"DOUBLESPEND_FEED_TIMEOUT" description:"HTTP timeout for the feed download" default:"30s"`
	StrictHashes bool          `long:"strict-hashes" env:"DOUBLESPEND_STRICT_HASHES" description:"reject records with malformed block hashes, txids or outpoints"`
	Reverse      bool          `long:"reverse" description:"list the highest blocks first"`
	Detail       string        `long:"detail" description:"event id to print the detail of"`
	FullHashes   bool          `long:"full-hashes" description:"do not shorten hashes"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Fatal("doublespend summary failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, out io.Writer, logger *zap.Logger) error {
	data, err := fetch(ctx, cfg)
	if err != nil {
		return err
	}

	var opts []feed.Option
	if cfg.StrictHashes {
		opts = append(opts, feed.WithStrictHashes())
	}
	events, failures, err := feed.Decode(data, opts...)
	if err != nil {
		return err
	}
	for _, f := range failures {
		logger.Warn("skip record", zap.Int("position", f.Position), zap.Error(f.Err))
	}

	summarizer, err := summary.NewSummarizer(metrics.NewSummarizer(cfg.Coin, cfg.Network), logger)
	if err != nil {
		return err
	}
	batch, err := summarizer.SummarizeBatch(ctx, events)
	if err != nil {
		return err
	}

	p := printer{out: out, keep: hashKeep}
	if cfg.FullHashes {
		p.keep = 0
	}

	if cfg.Detail != "" {
		idx := slices.IndexFunc(events, func(ev model.Event) bool { return ev.ID() == cfg.Detail })
		if idx < 0 {
			return fmt.Errorf("event %s not found", cfg.Detail)
		}
		detail, err := summary.Detail(events[idx])
		if err != nil {
			return err
		}
		return p.detail(detail)
	}

	summaries := batch.Summaries
	if cfg.Reverse {
		summaries = slices.Clone(summaries)
		slices.Reverse(summaries)
	}
	if err := p.summaries(summaries); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\n%d events, %d skipped\n", len(batch.Summaries), len(failures)+len(batch.Failures))
	return err
}

func fetch(ctx context.Context, cfg config) ([]byte, error) {
	switch {
	case cfg.FeedPath != "" && cfg.FeedURL != "":
		return nil, errors.New("feed-path and feed-url are mutually exclusive")
	case cfg.FeedPath != "":
		return feed.NewFileSource(cfg.FeedPath).Fetch(ctx)
	case cfg.FeedURL != "":
		source, err := feed.NewHTTPSource(cfg.FeedURL, cfg.FeedTimeout, 1, metrics.NewFeedSource(cfg.Coin, cfg.Network))
		if err != nil {
			return nil, err
		}
		return source.Fetch(ctx)
	default:
		return nil, errors.New("one of feed-path or feed-url is required")
	}
}

type printer struct {
	out  io.Writer
	keep int
}

func (p printer) hash(s string) string {
	return format.TrimHash(s, p.keep)
}

func (p printer) summaries(summaries []model.Summary) error {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tBLOCK\tHEIGHT\tTX\tORPHANED\tVALUE\tID")
	for _, s := range summaries {
		block, tx := s.ConflictBlock, s.ConflictTxID
		if s.MainChainBlock != nil {
			block, tx = *s.MainChainBlock, s.MainChainTxID
		}
		orphaned := make([]string, 0, len(s.OrphanedTxIDs))
		for _, txid := range s.OrphanedTxIDs {
			orphaned = append(orphaned, p.hash(txid))
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			s.Label,
			p.hash(block.Hash),
			block.Height,
			p.hash(tx),
			strings.Join(orphaned, ","),
			format.Coins(s.Value),
			s.ID,
		)
	}
	return w.Flush()
}

func (p printer) detail(d model.Detail) error {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\n", d.Label)
	fmt.Fprintf(w, "block\t%s\t%d\n", d.Block.Hash, d.Block.Height)
	fmt.Fprintf(w, "tx\t%s\n\n", d.TxID)

	fmt.Fprintln(w, "INPUT\tOUTPOINT\tCONFLICT")
	for i, in := range d.Inputs {
		mark := ""
		if in.Implicated {
			mark = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, in.Outpoint, mark)
	}

	fmt.Fprintln(w, "\nOUTPUT\tTO\tTYPE\tVALUE")
	for _, out := range d.Outputs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", out.Index, strings.Join(out.To, ","), out.Type, format.Coins(out.Value))
	}

	fmt.Fprintln(w, "\nCONFLICTING TX\tBLOCK\tVALUE\tOUTPOINTS")
	for _, c := range d.Conflicts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.hash(c.TxID), p.hash(c.Block.Hash), format.Coins(c.Value), strings.Join(c.Outpoints, ","))
	}
	return w.Flush()
}
