package shelf

import "fmt"

// Step names the priority step that produced a Decision.
type Step int

const (
	// StepSkipped means the observation carried nothing usable.
	StepSkipped Step = iota

	// StepLocation means the file lives in a shelf folder.
	StepLocation

	// StepManualTag means the file carries a manual shelf tag.
	StepManualTag

	// StepVote means the tag shelf was counted as an ordinary vote.
	StepVote
)

// String returns the lowercase step name.
func (s Step) String() string {
	switch s {
	case StepLocation:
		return "location"
	case StepManualTag:
		return "manual-tag"
	case StepVote:
		return "vote"
	default:
		return "skipped"
	}
}

// Observation is what is known about one file.
type Observation struct {
	// AlbumID identifies the album the file belongs to.
	AlbumID string

	// Path is the file path, absolute or relative to the working directory.
	Path string

	// Tag is the current value of the file's shelf tag.
	Tag string
}

// Decision is the outcome of ResolveFile for one file.
type Decision struct {
	AlbumID    string
	Path       string
	Assignment Assignment
	Step       Step
}

// String returns a short human readable form.
func (d Decision) String() string {
	if d.Step == StepSkipped {
		return fmt.Sprintf("%s: skipped", d.Path)
	}
	return fmt.Sprintf("%s: %s (%s, %s)", d.Path, d.Assignment.Name, d.Assignment.Kind, d.Step)
}

// EngineConfig holds the values Engine reads from configuration.
type EngineConfig struct {
	// Root is the library root; its direct subdirectories are shelves.
	Root string

	// Rule is the workflow transition applied to voted shelves.
	Rule Rule

	// RestrictToKnown selects Rule.ApplyKnown instead of Rule.Apply.
	RestrictToKnown bool
}

// Engine applies the per-file priority order to observations and records
// the results in a Resolver:
//
//  1. a file inside a shelf folder is locked to that shelf;
//  2. a file with a manual shelf tag is locked to the tagged shelf;
//  3. otherwise the tagged shelf, after the workflow rule, is a vote.
type Engine struct {
	validator *Validator
	resolver  *Resolver
	cfg       EngineConfig
}

// NewEngine creates an Engine writing into resolver.
func NewEngine(validator *Validator, resolver *Resolver, cfg EngineConfig) *Engine {
	return &Engine{validator: validator, resolver: resolver, cfg: cfg}
}

// Resolver returns the resolver the engine writes into.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Transition applies the configured workflow rule to shelf.
func (e *Engine) Transition(shelf string, known Known) string {
	if e.cfg.RestrictToKnown {
		return e.cfg.Rule.ApplyKnown(shelf, known)
	}
	return e.cfg.Rule.Apply(shelf)
}

// ResolveFile applies one observation. Observations without an album id
// are skipped.
func (e *Engine) ResolveFile(obs Observation, known Known) Decision {
	d := Decision{AlbumID: obs.AlbumID, Path: obs.Path}
	if obs.AlbumID == "" {
		return d
	}

	if candidate, explicit := e.validator.ClassifyPath(obs.Path, e.cfg.Root, known); explicit {
		shelf, _ := e.resolver.SetAlbumShelfLocked(obs.AlbumID, candidate, SourceManual, true)
		d.Assignment = Assignment{Name: shelf, Kind: KindExplicit}
		d.Step = StepLocation
		return d
	}

	tag := ParseTag(obs.Tag)
	if tag.Explicit() {
		shelf, _ := e.resolver.SetAlbumShelfLocked(obs.AlbumID, tag.Name, SourceManual, true)
		d.Assignment = Assignment{Name: shelf, Kind: KindExplicit}
		d.Step = StepManualTag
		return d
	}

	if tag.IsZero() {
		return d
	}

	shelf := e.Transition(tag.Name, known)
	e.resolver.Vote(obs.AlbumID, shelf, 1, "tag "+obs.Path)
	d.Assignment = Assignment{Name: Normalize(shelf), Kind: KindInferred}
	d.Step = StepVote
	return d
}
