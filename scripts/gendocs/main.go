// Package main provides a generator that extracts CLI and lint rule metadata
// from nblint and writes markdown documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=lint -outdir=docs/rules
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, lint, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps a -gen value to its generator and default docs subdirectory.
var generators = map[string]struct {
	dir string
	run func(outDir string) error
}{
	"cli":  {dir: "cli", run: generateCLIDocs},
	"lint": {dir: "rules", run: generateLintDocs},
}

func main() {
	flag.Parse()

	if _, ok := generators[*genFlag]; !ok && *genFlag != "all" {
		log.Fatalf("unknown -gen value: %s (use: cli, lint, all)", *genFlag)
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	if err := generate(*genFlag, *outDirFlag, projectRoot); err != nil {
		log.Fatal(err)
	}
	log.Println("Done!")
}

// generate runs one generator, or all of them into their default directories.
func generate(gen, outDir, projectRoot string) error {
	if gen != "all" {
		g := generators[gen]
		if outDir == "" {
			outDir = filepath.Join(projectRoot, "docs", g.dir)
		}
		return g.run(outDir)
	}

	for _, name := range []string{"cli", "lint"} {
		g := generators[name]
		if err := g.run(filepath.Join(projectRoot, "docs", g.dir)); err != nil {
			return err
		}
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
