package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/casewright/casewright/internal/model"
)

// Generator defines the interface for generating a single proposal
type Generator interface {
	Generate(ctx context.Context, company, industry string) (*model.Proposal, error)
}

// Target identifies one proposal to generate
type Target struct {
	Company  string
	Industry string
}

// ProposalJob generates a proposal for one target
type ProposalJob struct {
	Target    Target
	Generator Generator
}

// Execute runs the proposal generation
func (j *ProposalJob) Execute(ctx context.Context) Result {
	proposal, err := j.Generator.Generate(ctx, j.Target.Company, j.Target.Industry)
	return &ProposalResult{
		Target:   j.Target,
		Proposal: proposal,
		Error:    err,
	}
}

// ProposalResult represents the outcome of a proposal job
type ProposalResult struct {
	Target   Target
	Proposal *model.Proposal
	Error    error
}

// GetError returns the error from the proposal result
func (r *ProposalResult) GetError() error {
	return r.Error
}

// BatchProcessor generates multiple proposals concurrently
type BatchProcessor struct {
	generator   Generator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(generator Generator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
	}
}

// ProcessTargets generates proposals for all targets concurrently
func (b *BatchProcessor) ProcessTargets(ctx context.Context, targets []Target) []*ProposalResult {
	if len(targets) == 0 {
		return []*ProposalResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, target := range targets {
		pool.Submit(&ProposalJob{
			Target:    target,
			Generator: b.generator,
		})
	}

	results := pool.Wait()

	proposalResults := make([]*ProposalResult, len(results))
	for i, result := range results {
		proposalResults[i] = result.(*ProposalResult)
	}

	return proposalResults
}

// ProcessFile reads targets from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ProposalResult, error) {
	targets, err := ReadTargetsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}

	return b.ProcessTargets(ctx, targets), nil
}

// ReadTargetsFromFile reads targets from a file, one "Company, Industry" pair
// per line. Empty lines and comments are skipped, duplicates dropped.
func ReadTargetsFromFile(filePath string) ([]Target, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var targets []Target
	seen := make(map[Target]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		company, industry, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"Company, Industry\", got %q", lineNo, line)
		}

		target := Target{
			Company:  strings.TrimSpace(company),
			Industry: strings.TrimSpace(industry),
		}
		if !seen[target] {
			seen[target] = true
			targets = append(targets, target)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return targets, nil
}
