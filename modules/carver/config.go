package carver

import (
	"flag"

	"github.com/grafana/dskit/flagext"
	"github.com/zachfi/zkit/pkg/util"

	"github.com/zachfi/mp3carve/pkg/mp3"
)

// Write chunk sizing (write-buffer-size): recovered streams are usually a
// few MiB, written in chunks of this size. Clamped to 32KiB-4MiB.
const (
	defaultWriteBufferSize  = 256 * 1024 // 256 KiB
	defaultConcurrency      = 4
	defaultPhaseConcurrency = 4
)

type Config struct {
	Inputs           flagext.StringSliceCSV `yaml:"inputs,omitempty"`
	Dir              string                 `yaml:"dir,omitempty"`               // output directory, defaults to the directory of each input
	Concurrency      int                    `yaml:"concurrency,omitempty"`       // files carved at once
	PhaseConcurrency int                    `yaml:"phase-concurrency,omitempty"` // swap phases scanned at once per file
	MinStreamSize    int                    `yaml:"min-stream-size,omitempty"`
	WriteBufferSize  int                    `yaml:"write-buffer-size,omitempty"`
	DryRun           bool                   `yaml:"dry-run,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.Var(&cfg.Inputs, util.PrefixConfig(prefix, "inputs"), "Comma separated list of files to carve. Positional arguments are appended.")
	f.StringVar(&cfg.Dir, util.PrefixConfig(prefix, "dir"), "", "The directory to write recovered streams to. Defaults to the directory of each input.")
	f.IntVar(&cfg.Concurrency, util.PrefixConfig(prefix, "concurrency"), defaultConcurrency, "Number of files carved in parallel.")
	f.IntVar(&cfg.PhaseConcurrency, util.PrefixConfig(prefix, "phase-concurrency"), defaultPhaseConcurrency, "Number of swap phases scanned in parallel for each file.")
	f.IntVar(&cfg.MinStreamSize, util.PrefixConfig(prefix, "min-stream-size"), mp3.Threshold,
		"Streams must be longer than this many bytes to be kept. Shorter runs of frames are treated as noise.")
	f.IntVar(&cfg.WriteBufferSize, util.PrefixConfig(prefix, "write-buffer-size"), defaultWriteBufferSize,
		"Bytes written to disk per write call (default 256KiB). Reasonable range: 256KiB-1MiB.")
	f.BoolVar(&cfg.DryRun, util.PrefixConfig(prefix, "dry-run"), false, "Report recovered streams without writing them.")
}
