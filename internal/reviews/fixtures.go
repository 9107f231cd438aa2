package reviews

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// FixturesVersionConstraint is the fixture schema versions this build understands.
const FixturesVersionConstraint = "^1"

// ErrInvalidFixtures wraps every fixture validation failure.
var ErrInvalidFixtures = errors.New("invalid review fixtures")

// Fixture is one review entry in a fixtures file.
type Fixture struct {
	ID     ID            `yaml:"id"`
	Name   string        `yaml:"name"`
	Rating int           `yaml:"rating"`
	Delay  time.Duration `yaml:"delay,omitempty"`
}

// Fixtures is the YAML document that seeds a Stub.
type Fixtures struct {
	Version      string        `yaml:"version"`
	DefaultDelay time.Duration `yaml:"default_delay,omitempty"`
	// Fallback answers ids not listed in Reviews. Omit it to make unknown ids fail.
	Fallback *Review  `yaml:"fallback,omitempty"`
	Reviews  []Fixture `yaml:"reviews"`
}

// DefaultFixtures returns the built-in fixtures: the sample review for every id plus a few
// fixed entries with different latencies.
func DefaultFixtures() *Fixtures {
	sample := StubReview()
	return &Fixtures{
		Version:      "1.0.0",
		DefaultDelay: 300 * time.Millisecond,
		Fallback:     &sample,
		Reviews: []Fixture{
			{ID: 1, Name: "The Midnight Quartet", Rating: 4, Delay: time.Second},
			{ID: 2, Name: "Gravel & Honey", Rating: 2, Delay: 100 * time.Millisecond},
			{ID: 3, Name: "Lanterns Over Lisbon", Rating: 5},
			{ID: 123, Name: SampleName, Rating: SampleRating},
		},
	}
}

// LoadFixtures reads and validates a fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures %s: %w", path, err)
	}
	f, err := ParseFixtures(data)
	if err != nil {
		return nil, fmt.Errorf("loading fixtures %s: %w", path, err)
	}
	return f, nil
}

// ParseFixtures decodes and validates a fixtures document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate reports every problem in f at once.
func (f *Fixtures) Validate() error {
	var result *multierror.Error

	if err := checkVersion(f.Version); err != nil {
		result = multierror.Append(result, err)
	}
	if f.DefaultDelay < 0 {
		result = multierror.Append(result, fmt.Errorf("default_delay must be >= 0, got %s", f.DefaultDelay))
	}
	if f.Fallback != nil {
		if err := validateReview("fallback", *f.Fallback); err != nil {
			result = multierror.Append(result, err)
		}
	}

	seen := make(map[ID]bool, len(f.Reviews))
	for i, r := range f.Reviews {
		where := fmt.Sprintf("reviews[%d]", i)
		if seen[r.ID] {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate id %d", where, r.ID))
		}
		seen[r.ID] = true
		if err := validateReview(where, Review{Name: r.Name, Rating: r.Rating}); err != nil {
			result = multierror.Append(result, err)
		}
		if r.Delay < 0 {
			result = multierror.Append(result, fmt.Errorf("%s: delay must be >= 0, got %s", where, r.Delay))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFixtures, err)
	}
	return nil
}

// Stub builds a Stub serving f. Extra options are applied after the fixtures.
func (f *Fixtures) Stub(opts ...StubOption) *Stub {
	base := []StubOption{WithDefaultDelay(f.DefaultDelay)}
	if f.Fallback != nil {
		base = append(base, WithFallback(*f.Fallback))
	}
	for _, r := range f.Reviews {
		base = append(base, WithReview(r.ID, Review{Name: r.Name, Rating: r.Rating}))
		if r.Delay > 0 {
			base = append(base, WithDelay(r.ID, r.Delay))
		}
	}
	return NewStub(append(base, opts...)...)
}

// Marshal renders f as YAML.
func (f *Fixtures) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

func validateReview(where string, r Review) error {
	var result *multierror.Error
	if r.Name == "" {
		result = multierror.Append(result, fmt.Errorf("%s: name is required", where))
	}
	if r.Rating < 0 || r.Rating > MaxRating {
		result = multierror.Append(result, fmt.Errorf("%s: rating must be between 0 and %d, got %d",
			where, MaxRating, r.Rating))
	}
	return result.ErrorOrNil()
}

func checkVersion(v string) error {
	if v == "" {
		return errors.New("version is required")
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("version %q is not valid semver: %w", v, err)
	}
	constraint, err := semver.NewConstraint(FixturesVersionConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("version %s does not satisfy %s", v, FixturesVersionConstraint)
	}
	return nil
}
