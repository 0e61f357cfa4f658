package detector

import "codetools/src/model"

// Runner evaluates detectors in registration order.
// It holds no mutable state and is safe for concurrent use.
type Runner struct {
	detectors []Detector
}

// NewRunner creates a runner for the given detectors
func NewRunner(detectors ...Detector) *Runner {
	return &Runner{detectors: detectors}
}

// NewDefaultRunner creates a runner with the built-in rules registered
func NewDefaultRunner() *Runner {
	return NewRunner(DefaultDetectors()...)
}

// RunAll executes every detector and returns the issues in rule order.
// The result is never nil.
func (r *Runner) RunAll(src Source) []model.Issue {
	issues := make([]model.Issue, 0, len(r.detectors))
	for _, d := range r.detectors {
		if issue, ok := d.Detect(src); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// GetDetector returns a detector by name
func (r *Runner) GetDetector(name string) Detector {
	for _, d := range r.detectors {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// ListDetectors returns the metadata of all registered detectors in order
func (r *Runner) ListDetectors() []RuleMeta {
	metas := make([]RuleMeta, len(r.detectors))
	for i, d := range r.detectors {
		metas[i] = d.Meta()
	}
	return metas
}
