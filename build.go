//go:build ignore

package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

type target struct {
	goos, goarch, goarm string
}

func (t target) String() string {
	if t.goarm == "" {
		return t.goos + "-" + t.goarch
	}
	return fmt.Sprintf("%s-%s-v%s", t.goos, t.goarch, t.goarm)
}

func (t target) env() []string {
	env := []string{"GOOS=" + t.goos, "GOARCH=" + t.goarch}
	if t.goarm != "" {
		env = append(env, "GOARM="+t.goarm)
	}
	return env
}

var targets = []target{
	{goos: "linux", goarch: "arm", goarm: "6"}, // Raspberry Pi Zero/1
	{goos: "linux", goarch: "arm", goarm: "7"}, // Raspberry Pi 2
	{goos: "linux", goarch: "arm64"},           // Raspberry Pi 3 and newer
	{goos: "linux", goarch: "amd64"},           // development with -ui simulator
}

// binaries maps project directory to output base name
var binaries = map[string]string{
	"./cmd/mfx/":    "mfx",
	"./cmd/mfxctl/": "mfxctl",
}

type job struct {
	target  target
	project string
	output  string
}

type result struct {
	job
	stdout, stderr string
	err            error
}

var (
	platforms, projects, tags, outDir string
	cgo, race                         bool
)

func init() {
	var names []string
	for _, t := range targets {
		names = append(names, t.String())
	}
	flag.StringVar(&platforms, "platforms", "all", "comma-separated target platform list\navailable: "+strings.Join(names, ","))
	flag.StringVar(&projects, "projects", "all", "comma-separated project directories (./cmd/mfx/, ./cmd/mfxctl/)")
	flag.StringVar(&tags, "tags", "", "comma-separated build tags")
	flag.StringVar(&outDir, "out", "./builds", "output directory")
	flag.BoolVar(&cgo, "cgo", false, "cgo, required by rtmidi backend (cross-compiler has to be provided via CC)")
	flag.BoolVar(&race, "race", false, "include race detector")
	flag.Parse()
}

func selectTargets() ([]target, error) {
	if platforms == "all" {
		return targets, nil
	}
	var selected []target
next:
	for _, name := range strings.Split(platforms, ",") {
		for _, t := range targets {
			if t.String() == name {
				selected = append(selected, t)
				continue next
			}
		}
		return nil, fmt.Errorf("target not found: %s", name)
	}
	return selected, nil
}

func selectProjects() (map[string]string, error) {
	if projects == "all" {
		return binaries, nil
	}
	var selected = make(map[string]string)
	for _, p := range strings.Split(projects, ",") {
		base, ok := binaries[p]
		if !ok {
			return nil, fmt.Errorf("unknown project: %s", p)
		}
		selected[p] = base
	}
	return selected, nil
}

func (j job) run() result {
	args := []string{"build", "-o", j.output}
	if tags != "" {
		args = append(args, "-tags", tags)
	}
	if race {
		args = append(args, "-race")
	}
	args = append(args, j.project)

	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(), j.target.env()...)
	if cgo {
		cmd.Env = append(cmd.Env, "CGO_ENABLED=1")
	} else {
		cmd.Env = append(cmd.Env, "CGO_ENABLED=0")
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := cmd.Run()
	return result{job: j, stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func main() {
	log.SetFlags(log.Ltime)

	selectedTargets, err := selectTargets()
	if err != nil {
		log.Fatal(err)
	}
	selectedProjects, err := selectProjects()
	if err != nil {
		log.Fatal(err)
	}

	var jobs []job
	for _, t := range selectedTargets {
		for project, base := range selectedProjects {
			jobs = append(jobs, job{
				target:  t,
				project: project,
				output:  filepath.Join(outDir, fmt.Sprintf("%s-%s", base, t)),
			})
		}
	}
	log.Printf("engaging parallel building of %d binaries", len(jobs))

	var results = make(chan result, len(jobs))
	wg := sync.WaitGroup{}
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			results <- j.run()
		}(j)
	}
	wg.Wait()
	close(results)

	var failed []result
	for r := range results {
		if r.err != nil {
			log.Printf("failed:  %s", r.output)
			failed = append(failed, r)
			continue
		}
		log.Printf("success: %s", r.output)
	}

	for _, r := range failed {
		fmt.Printf("\n>>> Failed build: project: %s, target: %s (%v)\n", r.project, r.target, r.err)
		for _, out := range []struct{ name, text string }{{"STDOUT", r.stdout}, {"STDERR", r.stderr}} {
			if out.text == "" {
				continue
			}
			fmt.Printf("======== %s ========\n%s========================\n", out.name, out.text)
		}
	}
	if len(failed) > 0 {
		os.Exit(1)
	}
}
