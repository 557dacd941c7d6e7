// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"seqsample-core/fastq"
	"seqsample-core/rng"
	"seqsample-core/sampler"
	"seqsample/internal/cli"
	"seqsample/internal/cmdutil"
	"seqsample/internal/manifest"
	"seqsample/internal/sinks"
	"seqsample/internal/version"
	"seqsample/pkg/api"
)

const name = "seqsample"

// RunContext parses argv, runs the requested phases and returns the exit
// code: 0 on success, 1 on any usage or runtime error, 130 when ctx was
// canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		cli.PrintUsage(stderr, name)
		return 1
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			cmdutil.Errorf(stderr, "%v", err)
		}
		cli.PrintUsage(stderr, name)
		return 1
	}

	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", name, version.Version)
		return 0
	}

	if err := run(parent, opts, stderr); err != nil {
		if parent.Err() != nil {
			cmdutil.Errorf(stderr, "interrupted: %v", err)
			return 130
		}
		cmdutil.Errorf(stderr, "%v", err)
		return 1
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, opts cli.Options, stderr io.Writer) error {
	job := opts.Job()
	if err := job.Validate(); err != nil {
		return err
	}
	if err := prepareOutdir(opts); err != nil {
		return err
	}

	seed, userSeed := uint64(0), job.Seed != nil
	if userSeed {
		seed = *job.Seed
	} else {
		s, err := rng.EntropySeed()
		if err != nil {
			return err
		}
		seed = s
	}
	if userSeed {
		cmdutil.Infof(stderr, opts.Quiet, "seed: %d", seed)
	} else {
		cmdutil.Infof(stderr, opts.Quiet, "seed: %d (from entropy; rerun with -r %d to reproduce)", seed, seed)
	}

	eng := sampler.NewEngine(rng.Seeded(seed), job.Percent, job.NumSamples)
	m := manifest.New(opts.Basename, opts.Percent, job.NumSamples, seed, userSeed)

	// The paired phase finishes and releases its sinks before the single
	// phase starts; both draw from the same engine.
	if job.Mode.Has(sampler.ModePaired) {
		ph := phase{
			mode:   sampler.ModePaired,
			inputs: []string{opts.Forward, opts.Reverse},
			roles:  []sampler.Role{sampler.RoleForward, sampler.RoleReverse},
			unit:   "pairs",
		}
		if err := ph.run(ctx, opts, eng, m, stderr); err != nil {
			return err
		}
	}
	if job.Mode.Has(sampler.ModeSingle) {
		ph := phase{
			mode:   sampler.ModeSingle,
			inputs: []string{opts.Single},
			roles:  []sampler.Role{sampler.RoleSingle},
			unit:   "reads",
		}
		if err := ph.run(ctx, opts, eng, m, stderr); err != nil {
			return err
		}
	}

	m.Draws = eng.Draws()
	if opts.NoManifest {
		return nil
	}
	path, err := manifest.Write(opts.Outdir, m)
	if err != nil {
		return err
	}
	cmdutil.Infof(stderr, opts.Quiet, "manifest: %s", path)
	return nil
}

// prepareOutdir refuses an existing outdir, checks that every input exists
// and only then creates the outdir, so a rejected run writes nothing.
func prepareOutdir(opts cli.Options) error {
	if _, err := os.Stat(opts.Outdir); err == nil {
		return fmt.Errorf("outdir ('%s') already exists", opts.Outdir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("something went wrong when checking outdir '%s': %w", opts.Outdir, err)
	}

	for _, in := range []struct{ flag, path string }{
		{"-1", opts.Forward}, {"-2", opts.Reverse}, {"-s", opts.Single},
	} {
		if in.path == "" || in.path == "-" {
			continue
		}
		if _, err := os.Stat(in.path); err != nil {
			return fmt.Errorf("%s %s does not exist", in.flag, in.path)
		}
	}

	if err := os.Mkdir(opts.Outdir, 0o755); err != nil {
		return fmt.Errorf("cannot create outdir '%s': %w", opts.Outdir, err)
	}
	return nil
}

type phase struct {
	mode   sampler.Mode
	inputs []string
	roles  []sampler.Role
	unit   string
}

func (p phase) run(ctx context.Context, opts cli.Options, eng *sampler.Engine, m *api.ManifestV1, stderr io.Writer) (err error) {
	streams := make([]*fastq.Reader, 0, len(p.inputs))
	defer func() {
		for _, s := range streams {
			_ = s.Close()
		}
	}()
	for _, path := range p.inputs {
		r, err := fastq.Open(path)
		if err != nil {
			return fmt.Errorf("couldn't open '%s' for reading: %w", path, err)
		}
		streams = append(streams, r)
	}

	set, err := sinks.Open(opts.Outdir, opts.Basename, eng.Slots(), p.roles...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := set.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var st sampler.Stats
	if p.mode == sampler.ModePaired {
		st, err = sampler.RunPaired(ctx, eng, streams[0], streams[1], set)
	} else {
		st, err = sampler.RunSingle(ctx, eng, streams[0], set)
	}
	if err != nil {
		return err
	}
	if st.ReverseLeftover {
		cmdutil.Warnf(stderr, opts.Quiet, "reverse reads file '%s' has more reads than '%s'; extra reads ignored", p.inputs[1], p.inputs[0])
	}

	files := make(map[sampler.Role][]string, len(p.roles))
	for _, r := range p.roles {
		files[r] = set.Paths(r)
	}
	manifest.AddPhase(m, p.mode, p.inputs, st, files, p.roles...)
	cmdutil.Infof(stderr, opts.Quiet, "%s: %d %s read; kept %s", p.mode, st.Units, p.unit, keptSummary(st.Kept))
	for _, s := range streams {
		cmdutil.Infof(stderr, opts.Quiet, "  %s: %d records", s.Name(), s.Records())
	}
	return nil
}

func keptSummary(kept []int) string {
	parts := make([]string, len(kept))
	for i, k := range kept {
		parts[i] = fmt.Sprintf("sample_%d=%d", i, k)
	}
	return strings.Join(parts, " ")
}
