package parser

import "quietest/internal/domain"

// treeBuilder accumulates tests into targets and cases, keeping the order in
// which each target and case was first seen
type treeBuilder struct {
	targets []*targetNode
	index   map[string]*targetNode
}

type targetNode struct {
	name  string
	cases []*caseNode
	index map[string]*caseNode
}

type caseNode struct {
	name  string
	tests []domain.RawTest
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{index: make(map[string]*targetNode)}
}

func (b *treeBuilder) add(target, caseName string, test domain.RawTest) {
	t, ok := b.index[target]
	if !ok {
		t = &targetNode{name: target, index: make(map[string]*caseNode)}
		b.index[target] = t
		b.targets = append(b.targets, t)
	}

	c, ok := t.index[caseName]
	if !ok {
		c = &caseNode{name: caseName}
		t.index[caseName] = c
		t.cases = append(t.cases, c)
	}
	c.tests = append(c.tests, test)
}

func (b *treeBuilder) empty() bool {
	return len(b.targets) == 0
}

func (b *treeBuilder) build(succeeded bool) domain.RawRun {
	targets := make([]domain.RawTarget, 0, len(b.targets))
	for _, t := range b.targets {
		cases := make([]domain.RawCase, 0, len(t.cases))
		for _, c := range t.cases {
			cases = append(cases, domain.RawCase{Name: c.name, Tests: c.tests})
		}
		targets = append(targets, domain.RawTarget{Name: t.name, Cases: cases})
	}
	return domain.RawRun{Succeeded: succeeded, Targets: targets}
}
