// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/open-policy-agent/intern/internal/gen"
)

type params struct {
	output   string
	pkg      string
	manifest string
	fn       string
	handles  bool
	verbose  bool
}

func addFlags(fs *pflag.FlagSet, p *params) {
	fs.StringVarP(&p.output, "output", "o", "-", "output file, or - for stdout")
	fs.StringVarP(&p.pkg, "package", "p", "", "package name of the generated file (required)")
	fs.StringVarP(&p.manifest, "manifest", "m", "", "YAML/JSON manifest mapping identifiers to strings")
	fs.StringVar(&p.fn, "func", "intern.Intern", "interning function to look for in scan mode")
	fs.BoolVar(&p.handles, "handles", false, "also emit pre-interned handle vars")
	fs.BoolVarP(&p.verbose, "verbose", "v", false, "enable debug logging")
}

func newRootCommand() *cobra.Command {
	var p params

	cmd := &cobra.Command{
		Use:   "interngen [flags] [dir...]",
		Short: "Generate precomputed intern digest constants",
		Long: `interngen emits a Go source file containing FNV-1a digest constants for a
set of strings, so hot paths can use fixed tags without runtime hashing.

Strings come from a manifest (--manifest), from scanning source directories
for literal arguments to the interning function (--func), or both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(p, args)
		},
	}

	addFlags(cmd.Flags(), &p)
	return cmd
}

func run(p params, dirs []string) error {
	if p.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if p.pkg == "" {
		return fmt.Errorf("--package is required")
	}
	if p.manifest == "" && len(dirs) == 0 {
		return fmt.Errorf("nothing to generate: provide --manifest and/or directories to scan")
	}

	var syms []gen.Symbol

	if p.manifest != "" {
		bs, err := os.ReadFile(p.manifest)
		if err != nil {
			return err
		}
		ms, err := gen.FromManifest(bs)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"manifest": p.manifest, "symbols": len(ms)}).Debug("loaded manifest")
		syms = append(syms, ms...)
	}

	if len(dirs) > 0 {
		ss, err := gen.Scan(dirs, p.fn)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"dirs": dirs, "symbols": len(ss)}).Debug("scanned sources")
		syms = append(syms, ss...)
	}

	out, err := gen.Render(syms, gen.Options{Package: p.pkg, Handles: p.handles})
	if err != nil {
		return err
	}

	if p.output == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}

	if err := os.WriteFile(p.output, out, 0o644); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"output": p.output, "symbols": len(syms)}).Info("generated")
	return nil
}
