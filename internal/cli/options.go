// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"regexp"
	"strings"

	"gtfetch/internal/version"
)

// Output formats accepted by --format.
const (
	FormatTSV  = "tsv"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Remote selection
	Release int
	Species string

	// Local input bypass (skips fetch + extract)
	Inputs []string

	// Layout / remote contract
	ConfigPath string
	BaseURL    string
	StagingDir string
	OutDir     string

	// Extraction
	FeatureType string
	Attrs       []string // column=key specs; empty = built-in defaults
	Format      string
	Header      bool // true unless --no-header
	Strict      bool
	KeepGz      bool

	Quiet   bool
	Verbose bool
	Version bool
}

// Ensembl species names are lowercase and underscore-separated, e.g.
// arabidopsis_thaliana.
var speciesRe = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: download Ensembl Genomes GTF annotation and extract a gene table

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var noHeader bool

	// Remote selection
	fs.IntVar(&opt.Release, "release", 0, "Ensembl Genomes release number [*]")
	fs.StringVar(&opt.Species, "species", "", "species name, lowercase underscore-separated [*]")

	// Local bypass
	var inputs stringSlice
	fs.Var(&inputs, "input", "local GTF file (.gtf or .gtf.gz, repeatable); skips download")

	// Layout / remote contract
	fs.StringVar(&opt.ConfigPath, "config", "", "YAML config file with defaults")
	fs.StringVar(&opt.BaseURL, "base-url", "", "mirror base URL (overrides config)")
	fs.StringVar(&opt.StagingDir, "staging-dir", "", "directory for downloaded/decompressed files")
	fs.StringVar(&opt.OutDir, "out-dir", "", "directory for gene tables")

	// Extraction
	fs.StringVar(&opt.FeatureType, "feature-type", "", "feature type to keep [gene]")
	var attrs stringSlice
	fs.Var(&attrs, "attr", "output column as column=key (repeatable) [gene_id, gene_name, gene_biotype]")
	fs.StringVar(&opt.Format, "format", FormatTSV, "output format: tsv | csv | json [tsv]")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header row in tsv/csv [false]")
	fs.BoolVar(&opt.Strict, "strict", false, "abort on the first malformed GTF line instead of skipping [false]")
	fs.BoolVar(&opt.KeepGz, "keep-archives", false, "keep the downloaded .gtf.gz files after extraction [false]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "log fetch/extract progress [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Inputs = inputs
	opt.Attrs = attrs
	opt.Header = !noHeader

	// Validation
	usingRemote := opt.Release != 0 || opt.Species != ""
	usingLocal := len(opt.Inputs) > 0
	switch {
	case usingRemote && usingLocal:
		return opt, errors.New("--input conflicts with --release/--species")
	case usingLocal:
		// nothing further to check on the remote side
	case opt.Release <= 0 && opt.Species == "":
		return opt, errors.New("provide --release and --species, or --input")
	case opt.Release <= 0:
		return opt, errors.New("--release must be a positive integer")
	case opt.Species == "":
		return opt, errors.New("--species is required")
	case !speciesRe.MatchString(opt.Species):
		return opt, fmt.Errorf("invalid --species %q (want lowercase underscore-separated, e.g. arabidopsis_thaliana)", opt.Species)
	}
	switch opt.Format {
	case FormatTSV, FormatCSV, FormatJSON:
	default:
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	if opt.FeatureType != "" && strings.ContainsAny(opt.FeatureType, " \t") {
		return opt, fmt.Errorf("invalid --feature-type %q", opt.FeatureType)
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
