// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command extract loads a RePair-family grammar, builds the
// random-access index, and benchmarks substring extraction.
// Grammar statistics and timings go to stderr; the decoded
// text goes to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alancleary/FRAS/access"
	"github.com/alancleary/FRAS/cfg"
	"github.com/alancleary/FRAS/jagged"
	"github.com/alancleary/FRAS/xoroshiro"
	"github.com/google/uuid"
	"sigs.k8s.io/yaml"
)

func fatalf(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-spec file] <type> <file_stem> <encoding> <query_size> [num_queries=10000] [seed=random]\n", os.Args[0])
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "args:")
	fmt.Fprintln(os.Stderr, "\ttype={mrrepair|navarro|bigrepair}: the type of grammar to load")
	fmt.Fprintln(os.Stderr, "\t\tmrrepair: for grammars created with the MR-RePair algorithm")
	fmt.Fprintln(os.Stderr, "\t\tnavarro: for grammars created with Navarro's implementation of RePair")
	fmt.Fprintln(os.Stderr, "\t\tbigrepair: for grammars created with Manzini's implementation of Big-Repair")
	fmt.Fprintln(os.Stderr, "\tfile_stem: the name of the grammar file(s) without the extension(s)")
	fmt.Fprintln(os.Stderr, "\tencoding={array|bpleft|bpright|bpmono}: the rule storage encoding")
	fmt.Fprintln(os.Stderr, "\tquery_size: the length of each benchmark query")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "flags:")
	flag.PrintDefaults()
	os.Exit(1)
}

// workload mirrors the optional YAML spec file; fields set
// there override the positional arguments.
type workload struct {
	QuerySize  uint64  `json:"querySize"`
	NumQueries uint64  `json:"numQueries"`
	Seed       *uint64 `json:"seed"`
}

func loadGrammar(kind, stem string, enc jagged.Encoding) (*cfg.CFG, error) {
	switch kind {
	case "mrrepair":
		return cfg.FromMrRepairFile(stem+".out", enc)
	case "navarro":
		return cfg.FromNavarroFiles(stem+".C", stem+".R", enc)
	case "bigrepair":
		return cfg.FromBigRepairFiles(stem+".C", stem+".R", enc)
	}
	return nil, fmt.Errorf("invalid grammar type %q", kind)
}

func parseUint(name, s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fatalf("bad %s %q: %s", name, s, err)
	}
	return v
}

func main() {
	var specFile string
	flag.StringVar(&specFile, "spec", "", "YAML workload spec overriding query_size/num_queries/seed")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 4 || len(args) > 6 {
		usage()
	}
	kind, stem := args[0], args[1]
	enc, err := jagged.ParseEncoding(args[2])
	if err != nil {
		fatalf("%s", err)
	}

	work := workload{NumQueries: 10000}
	work.QuerySize = parseUint("query_size", args[3])
	if len(args) > 4 {
		work.NumQueries = parseUint("num_queries", args[4])
	}
	if len(args) > 5 {
		seed := parseUint("seed", args[5])
		work.Seed = &seed
	}
	if specFile != "" {
		buf, err := os.ReadFile(specFile)
		if err != nil {
			fatalf("reading spec: %s", err)
		}
		if err := yaml.Unmarshal(buf, &work); err != nil {
			fatalf("parsing spec %s: %s", specFile, err)
		}
	}
	if work.QuerySize == 0 || work.NumQueries == 0 {
		fatalf("query_size and num_queries must be positive")
	}

	start := time.Now()
	grammar, err := loadGrammar(kind, stem, enc)
	if err != nil {
		fatalf("loading grammar: %s", err)
	}
	idx := access.NewIndex(grammar)
	buildTime := time.Since(start)

	digest := grammar.SourceDigest()
	fmt.Fprintf(os.Stderr, "run id: %s\n", uuid.New())
	fmt.Fprintf(os.Stderr, "encoding: %s\n", enc)
	fmt.Fprintf(os.Stderr, "source digest: %x\n", digest)
	fmt.Fprintf(os.Stderr, "fingerprint: %016x\n", grammar.Fingerprint())
	fmt.Fprintf(os.Stderr, "text length: %d\n", grammar.TextLength())
	fmt.Fprintf(os.Stderr, "num rules: %d\n", grammar.NumRules())
	fmt.Fprintf(os.Stderr, "start size: %d\n", grammar.StartSize())
	fmt.Fprintf(os.Stderr, "rules size: %d\n", grammar.RulesSize())
	fmt.Fprintf(os.Stderr, "total size: %d\n", grammar.TotalSize())
	fmt.Fprintf(os.Stderr, "depth: %d\n", grammar.Depth())
	fmt.Fprintf(os.Stderr, "mem size: %d\n", grammar.MemSize())
	fmt.Fprintf(os.Stderr, "index mem size: %d\n", idx.MemSize())
	fmt.Fprintf(os.Stderr, "total mem size: %d\n", grammar.MemSize()+idx.MemSize())
	fmt.Fprintf(os.Stderr, "build time: %s\n", buildTime)

	if work.QuerySize > grammar.TextLength() {
		fatalf("query_size %d exceeds text length %d", work.QuerySize, grammar.TextLength())
	}

	var eng *xoroshiro.Engine
	if work.Seed != nil {
		eng = xoroshiro.New(*work.Seed)
	} else if eng, err = xoroshiro.NewRandom(); err != nil {
		fatalf("seeding generator: %s", err)
	}

	out := bufio.NewWriterSize(os.Stdout, 1<<20)
	dec := idx.Decoder()
	buf := make([]byte, 0, work.QuerySize)
	span := float64(grammar.TextLength() - work.QuerySize)
	var elapsed time.Duration
	for i := uint64(0); i < work.NumQueries; i++ {
		begin := uint64(span * eng.Float64())
		end := begin + work.QuerySize - 1
		qstart := time.Now()
		buf, err = dec.Extract(buf[:0], begin, end)
		elapsed += time.Since(qstart)
		if err != nil {
			fatalf("extract [%d, %d]: %s", begin, end, err)
		}
		out.Write(buf)
	}
	if err := out.Flush(); err != nil {
		fatalf("writing output: %s", err)
	}

	fmt.Fprintf(os.Stderr, "average query time: %s\n", elapsed/time.Duration(work.NumQueries))
	if rss := peakRSS(); rss > 0 {
		fmt.Fprintf(os.Stderr, "peak rss: %d\n", rss)
	}
}
