// Package catalog loads the read-only set of job postings.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"jobmate/job-tracker/internal/model"
)

//go:embed jobs.yaml
var seed []byte

// Catalog is an immutable, ordered collection of postings.
type Catalog struct {
	jobs []model.Job
	byID map[int]int
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(seed)
}

// Load reads a YAML catalog from path, or the embedded one when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML list of postings. Every record must
// pass validation and ids must be unique.
func Parse(data []byte) (*Catalog, error) {
	var jobs []model.Job
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	validate := validator.New()
	byID := make(map[int]int, len(jobs))
	for i := range jobs {
		if err := validate.Struct(jobs[i]); err != nil {
			return nil, fmt.Errorf("catalog entry %d (id %d): %w", i, jobs[i].ID, err)
		}
		if _, dup := byID[jobs[i].ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %d", i, jobs[i].ID)
		}
		if jobs[i].Skills == nil {
			jobs[i].Skills = []string{}
		}
		byID[jobs[i].ID] = i
	}

	return &Catalog{jobs: jobs, byID: byID}, nil
}

// Jobs returns a copy of every posting in catalog order.
func (c *Catalog) Jobs() []model.Job {
	return slices.Clone(c.jobs)
}

// Get returns the posting with the given id.
func (c *Catalog) Get(id int) (model.Job, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Job{}, false
	}
	return c.jobs[i], true
}

// Len returns the number of postings.
func (c *Catalog) Len() int { return len(c.jobs) }
