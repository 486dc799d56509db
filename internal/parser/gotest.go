package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quietest/internal/domain"
)

// SetupFailedTest names the synthetic test recorded for a package that
// failed without any failing test, e.g. a compile error or a timeout
const SetupFailedTest = "[setup failed]"

// maxLineSize bounds a single event line; test output can be long
const maxLineSize = 16 * 1024 * 1024

// testEvent is one line of `go test -json` output
type testEvent struct {
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
}

// GoTestParser parses the `go test -json` event stream.
// Packages become targets, top-level test functions become cases and the
// leaf tests (subtests, or the function itself) become tests.
type GoTestParser struct{}

// NewGoTestParser creates a new GoTestParser
func NewGoTestParser() *GoTestParser {
	return &GoTestParser{}
}

type goPackage struct {
	name   string
	failed bool
	tests  []*goTest
	index  map[string]*goTest
}

type goTest struct {
	name    string
	action  string
	elapsed float64
}

// Parse reads events until EOF. Lines that are not JSON events, such as
// compiler output interleaved by the go tool, are ignored.
func (p *GoTestParser) Parse(r io.Reader) (domain.RawRun, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var packages []*goPackage
	byName := make(map[string]*goPackage)
	sawEvent := false
	succeeded := true

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}

		var ev testEvent
		if err := json.Unmarshal(line, &ev); err != nil || ev.Action == "" {
			continue
		}
		sawEvent = true

		pkg, ok := byName[ev.Package]
		if !ok {
			pkg = &goPackage{name: ev.Package, index: make(map[string]*goTest)}
			byName[ev.Package] = pkg
			packages = append(packages, pkg)
		}

		if ev.Action == "fail" {
			succeeded = false
		}

		if ev.Test == "" {
			if ev.Action == "fail" {
				pkg.failed = true
			}
			continue
		}

		test, ok := pkg.index[ev.Test]
		if !ok {
			test = &goTest{name: ev.Test}
			pkg.index[ev.Test] = test
			pkg.tests = append(pkg.tests, test)
		}
		switch ev.Action {
		case "pass", "fail", "skip":
			test.action = ev.Action
			test.elapsed = ev.Elapsed
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.RawRun{}, fmt.Errorf("read go test events: %w", err)
	}
	if !sawEvent {
		return domain.RawRun{}, ErrNoResults
	}

	builder := newTreeBuilder()
	for _, pkg := range packages {
		pkg.addTo(builder)
	}
	return builder.build(succeeded), nil
}

func (pkg *goPackage) addTo(builder *treeBuilder) {
	anyFailed := false
	for _, test := range pkg.tests {
		if !pkg.reported(test) {
			continue
		}
		status := domain.RawStatus(test.action)
		if test.action == "" {
			// Never finished: the binary crashed or timed out
			status = "incomplete"
		}
		if test.action == "fail" {
			anyFailed = true
		}
		builder.add(pkg.name, topLevel(test.name), domain.RawTest{
			Name:     test.name,
			Status:   status,
			Duration: test.elapsed,
		})
	}

	if pkg.failed && !anyFailed {
		builder.add(pkg.name, pkg.name, domain.RawTest{
			Name:   SetupFailedTest,
			Status: domain.RawFailed,
		})
	}
}

// reported decides whether a test appears in the tree. Leaves always do.
// A parent appears only when it failed and none of its subtests did, so
// failures raised by the parent itself are not lost.
func (pkg *goPackage) reported(test *goTest) bool {
	prefix := test.name + "/"
	hasChildren := false
	for _, other := range pkg.tests {
		if !strings.HasPrefix(other.name, prefix) {
			continue
		}
		hasChildren = true
		if other.action == "fail" {
			return false
		}
	}
	return !hasChildren || test.action == "fail"
}

func topLevel(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i]
	}
	return name
}
