package bcv

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/vesdash/cmd/env"
	"github.com/sig-0/vesdash/quote"
	"github.com/sig-0/vesdash/upstream"
)

const scrapeTimeout = time.Second * 30

// bcvCfg wraps the bcv configuration
type bcvCfg struct {
	url string
}

// NewBCVCmd creates the bcv subcommand, a diagnostic that fetches
// the official rates straight from the BCV website, bypassing
// the aggregation API
func NewBCVCmd() *ffcli.Command {
	cfg := &bcvCfg{}

	fs := flag.NewFlagSet("bcv", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "bcv",
		ShortUsage: "bcv [flags]",
		LongHelp:   "Fetches the official rates directly from the BCV website",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *bcvCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.url,
		"url",
		upstream.DefaultBCVURL,
		"the BCV website URL",
	)
}

func (c *bcvCfg) exec(ctx context.Context, _ []string) error {
	scraper := upstream.NewBCVScraper(c.url, scrapeTimeout)

	fetchCtx, cancelFn := context.WithTimeout(ctx, scrapeTimeout)
	defer cancelFn()

	records, err := scraper.Fetch(fetchCtx)
	if err != nil {
		return fmt.Errorf("unable to fetch BCV rates, %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "PAIR\tRATE")

	for _, record := range records {
		_, _ = fmt.Fprintf(
			w,
			"%s\t%s\n",
			record.CurrencyPair,
			quote.FormatBolivares(record.AvgPrice),
		)
	}

	return w.Flush()
}
