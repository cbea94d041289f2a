package commands

import (
	"context"
	"strings"

	"github.com/dyluth/radar/internal/config"
	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/internal/source"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/spf13/cobra"
)

// sourceFlags select where rows come from, overriding radar.yml.
type sourceFlags struct {
	kind      string
	delimiter string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "Source kind: file, url, api or store (inferred from LOCATION if omitted)")
	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", "", "Field delimiter for file and url sources (default '|')")
}

// openSource builds a fetcher from the positional location, flags and
// config, in that order of precedence. The returned close func releases any
// item store connection and is never nil.
func openSource(ctx context.Context, cfg *config.RadarConfig, flags *sourceFlags, location string) (source.Fetcher, func(), error) {
	noop := func() {}

	kind := flags.kind
	if location == "" {
		location = cfg.Source.Location
		if kind == "" {
			kind = cfg.Source.Kind
		}
	} else if kind == "" {
		kind = inferKind(location)
	}

	if kind == "" {
		return nil, noop, printer.Error(
			"no source",
			"No rows to read: give a LOCATION, --kind store, or a source section in radar.yml.",
			[]string{"radar plot ./radar.csv", "radar plot --kind store"},
		)
	}

	delimiter := flags.delimiter
	if delimiter == "" {
		delimiter = cfg.Source.Delimiter
	}

	var store *itemstore.Client
	closeFn := noop
	if kind == source.KindStore {
		client, err := connectStore(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		store = client
		closeFn = func() { client.Close() }
	}

	var lister source.ItemLister
	if store != nil {
		lister = store
	}

	fetcher, err := source.New(kind, location, delimiter, lister)
	if err != nil {
		closeFn()
		return nil, noop, printer.Error("invalid source", err.Error(), nil)
	}

	return fetcher, closeFn, nil
}

func inferKind(location string) string {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return source.KindURL
	}
	return source.KindFile
}
