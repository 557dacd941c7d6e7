// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"seqsample-core/sampler"
	"seqsample/internal/version"
)

// Options holds all CLI flags.
type Options struct {
	// Sampling
	Percent    float64 // 0-100, exclusive
	NumSamples int
	Seed       uint64
	HasSeed    bool

	// Output
	Outdir     string
	Basename   string
	NoManifest bool

	// Input
	Forward string
	Reverse string
	Single  string

	// Misc
	Quiet   bool
	Version bool
}

// Paired reports whether -1/-2 were given.
func (o Options) Paired() bool { return o.Forward != "" && o.Reverse != "" }

// Job converts validated options into the sampler configuration.
func (o Options) Job() sampler.Job {
	j := sampler.Job{Percent: o.Percent / 100, NumSamples: o.NumSamples}
	if o.HasSeed {
		s := o.Seed
		j.Seed = &s
	}
	if o.Paired() {
		j.Mode |= sampler.ModePaired
	}
	if o.Single != "" {
		j.Mode |= sampler.ModeSingle
	}
	return j
}

// NewFlagSet returns a FlagSet with ContinueOnError and the tool's help text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { PrintUsage(fs.Output(), name) }
	return fs
}

// PrintUsage writes the help banner.
func PrintUsage(out io.Writer, name string) {
	fmt.Fprintf(out, "%s – subsample (big) sequence files\n\n", name)
	fmt.Fprintf(out, "Version: %s\n", version.Version)
	fmt.Fprintln(out, "License: MIT")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Give both -1 and -2, or -s, or all three.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Reads given with -1 and -2 are sampled as pairs: a pair is kept or dropped")
	fmt.Fprintln(out, "  together. The files are ASSUMED to be in the same order; read names are not")
	fmt.Fprintln(out, "  checked.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Each read (or pair) is kept with probability -p percent, independently for")
	fmt.Fprintln(out, "  every sample, so sample sizes are close to, not exactly, that percentage.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s -p percent -n num_samples -o outdir -b basename [-r seed] [-1 fwd -2 rev] [-s single]\n", name)
	fmt.Fprintln(out, "\nSampling:")
	fmt.Fprintln(out, "  -p float      Percent to sample. Must be > 0 and < 100. [*]")
	fmt.Fprintln(out, "  -n int        Number of samples to take. Must be >= 1. [*]")
	fmt.Fprintln(out, "  -r int        Random seed. Must be >= 1. Omit to seed from system entropy.")
	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintln(out, "  -o dir        Output directory. Must not exist; it will be created. [*]")
	fmt.Fprintln(out, "  -b string     Basename for output files. [*]")
	fmt.Fprintln(out, "      --no-manifest  Do not write {basename}.manifest.yml")
	fmt.Fprintln(out, "\nInput (FASTA/FASTQ, optionally gzipped, '-' for STDIN):")
	fmt.Fprintln(out, "  -1 file       Forward reads")
	fmt.Fprintln(out, "  -2 file       Reverse reads")
	fmt.Fprintln(out, "  -s file       Single/unpaired reads")
	fmt.Fprintln(out, "\nMiscellaneous:")
	fmt.Fprintln(out, "  -q, --quiet   Suppress informational output and warnings")
	fmt.Fprintln(out, "  -v, --version Print version and exit")
	fmt.Fprintln(out, "  -h, --help    Show this help and exit")
	fmt.Fprintln(out, "\nOutput files: {outdir}/{basename}.sample_{i}.{1,2,U}.fq")
}

// ParseArgs registers and parses all flags, returns an Options struct.
// It returns flag.ErrHelp when help was requested.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var seed int64

	fs.Float64Var(&opt.Percent, "p", 0, "percent to sample (0 < p < 100)")
	fs.IntVar(&opt.NumSamples, "n", 0, "number of samples (>= 1)")
	fs.Int64Var(&seed, "r", 0, "random seed (>= 1)")

	fs.StringVar(&opt.Outdir, "o", "", "output directory (must not exist)")
	fs.StringVar(&opt.Basename, "b", "", "basename for output files")
	fs.BoolVar(&opt.NoManifest, "no-manifest", false, "do not write the run manifest")

	fs.StringVar(&opt.Forward, "1", "", "forward reads")
	fs.StringVar(&opt.Reverse, "2", "", "reverse reads")
	fs.StringVar(&opt.Single, "s", "", "single/unpaired reads")

	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress informational output")
	fs.BoolVar(&opt.Version, "v", false, "alias of --version")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "alias of --help")
	fs.BoolVar(&help, "help", false, "show help")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if opt.Outdir == "" {
		return opt, errors.New("-o is a required arg")
	}
	if opt.Basename == "" {
		return opt, errors.New("-b is a required arg")
	}
	if !set["p"] {
		return opt, errors.New("-p is a required arg")
	}
	if !(opt.Percent > 0 && opt.Percent < 100) {
		return opt, errors.New("sampling percent must be > 0 and < 100")
	}
	if !set["n"] {
		return opt, errors.New("-n is a required arg")
	}
	if opt.NumSamples < 1 {
		return opt, errors.New("-n must be >= 1")
	}
	if opt.Forward == "" && opt.Reverse == "" && opt.Single == "" {
		return opt, errors.New("no read files were given")
	}
	if (opt.Forward == "") != (opt.Reverse == "") {
		return opt, errors.New("-1 and -2 must both be given or neither be given")
	}
	if n := countStdin(opt.Forward, opt.Reverse, opt.Single); n > 1 {
		return opt, errors.New("only one input may be '-' (STDIN)")
	}
	if set["r"] {
		if seed < 1 {
			return opt, errors.New("-r must be > 0")
		}
		opt.Seed, opt.HasSeed = uint64(seed), true
	}
	return opt, nil
}

func countStdin(paths ...string) int {
	n := 0
	for _, p := range paths {
		if p == "-" {
			n++
		}
	}
	return n
}
