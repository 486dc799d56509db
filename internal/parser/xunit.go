package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quietest/internal/domain"
)

// XUnitParser parses JUnit/xUnit XML reports, as written by
// `swift test --xunit-output` and most CI tooling
type XUnitParser struct{}

// NewXUnitParser creates a new XUnitParser
func NewXUnitParser() *XUnitParser {
	return &XUnitParser{}
}

// xunitSuite matches both a <testsuites> root and nested <testsuite> elements
type xunitSuite struct {
	Name   string       `xml:"name,attr"`
	Suites []xunitSuite `xml:"testsuite"`
	Cases  []xunitCase  `xml:"testcase"`
}

type xunitCase struct {
	ClassName string    `xml:"classname,attr"`
	Name      string    `xml:"name,attr"`
	Time      string    `xml:"time,attr"`
	Status    string    `xml:"status,attr"`
	Failure   *struct{} `xml:"failure"`
	Error     *struct{} `xml:"error"`
	Skipped   *struct{} `xml:"skipped"`
}

// Parse decodes the whole document and flattens nested suites
func (p *XUnitParser) Parse(r io.Reader) (domain.RawRun, error) {
	var root xunitSuite
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return domain.RawRun{}, ErrNoResults
		}
		return domain.RawRun{}, fmt.Errorf("decode xunit report: %w", err)
	}

	builder := newTreeBuilder()
	succeeded := true
	p.walk(root, builder, &succeeded)

	if builder.empty() {
		return domain.RawRun{}, ErrNoResults
	}
	return builder.build(succeeded), nil
}

func (p *XUnitParser) walk(suite xunitSuite, builder *treeBuilder, succeeded *bool) {
	for _, c := range suite.Cases {
		target, caseName := splitClassName(suite.Name, c.ClassName)
		status := c.status()
		if status == domain.RawFailed {
			*succeeded = false
		}
		builder.add(target, caseName, domain.RawTest{
			Name:     c.Name,
			Status:   status,
			Duration: parseSeconds(c.Time),
		})
	}
	for _, child := range suite.Suites {
		p.walk(child, builder, succeeded)
	}
}

func (c xunitCase) status() domain.RawStatus {
	switch {
	case c.Failure != nil, c.Error != nil:
		return domain.RawFailed
	case c.Skipped != nil:
		return domain.RawSkipped
	case c.Status == "", c.Status == "run":
		return domain.RawSucceeded
	default:
		return domain.RawStatus(c.Status)
	}
}

// splitClassName turns "Target.Case" into its parts. Class names that are
// paths, or have no dot, are grouped under the enclosing suite.
func splitClassName(suite, className string) (target, caseName string) {
	if className == "" {
		return suite, suite
	}
	if !strings.Contains(className, "/") {
		if i := strings.LastIndex(className, "."); i > 0 && i < len(className)-1 {
			return className[:i], className[i+1:]
		}
	}
	return suite, className
}

func parseSeconds(value string) float64 {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return seconds
}
