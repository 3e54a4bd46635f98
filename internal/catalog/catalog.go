// Package catalog holds the static job role definitions an interview runs
// against: the role title, the required skill keywords, and the ordered
// question list. The catalog is injected configuration; the interview core
// never embeds role content.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownJob is returned when a requested role key is not in the catalog.
var ErrUnknownJob = errors.New("unknown job key")

// JobTemplate describes one interviewable role.
//
// Skills are lowercase keywords matched as substrings against answers; their
// order defines follow-up priority. Questions are asked in order.
type JobTemplate struct {
	Title     string   `yaml:"title"`
	Skills    []string `yaml:"skills"`
	Questions []string `yaml:"questions"`
}

// Catalog maps a role key to its template.
type Catalog struct {
	jobs map[string]*JobTemplate
}

// New builds a catalog from the given role map, normalizing and validating
// every template.
func New(jobs map[string]*JobTemplate) (*Catalog, error) {
	if len(jobs) == 0 {
		return nil, errors.New("catalog contains no job templates")
	}

	normalized := make(map[string]*JobTemplate, len(jobs))
	for key, tmpl := range jobs {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, errors.New("catalog contains a job template with an empty key")
		}

		if tmpl == nil {
			return nil, fmt.Errorf("job %q: template is empty", key)
		}

		clean, err := normalize(key, tmpl)
		if err != nil {
			return nil, err
		}

		normalized[key] = clean
	}

	return &Catalog{jobs: normalized}, nil
}

// Get returns the template for the given role key. A missing or blank key is
// a configuration error and aborts before any interview step is recorded.
func (c *Catalog) Get(key string) (*JobTemplate, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, fmt.Errorf("%w: job key is empty", ErrUnknownJob)
	}

	tmpl, ok := c.jobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known keys: %s)", ErrUnknownJob, key, strings.Join(c.Keys(), ", "))
	}

	return tmpl, nil
}

// Keys returns the sorted role keys.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.jobs))
	for key := range c.jobs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of roles in the catalog.
func (c *Catalog) Len() int {
	return len(c.jobs)
}

func normalize(key string, tmpl *JobTemplate) (*JobTemplate, error) {
	title := strings.TrimSpace(tmpl.Title)
	if title == "" {
		return nil, fmt.Errorf("job %q: title is required", key)
	}

	skills := make([]string, 0, len(tmpl.Skills))
	for _, skill := range tmpl.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("job %q: at least one skill is required", key)
	}

	questions := make([]string, 0, len(tmpl.Questions))
	for _, question := range tmpl.Questions {
		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		questions = append(questions, question)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("job %q: at least one question is required", key)
	}

	return &JobTemplate{Title: title, Skills: skills, Questions: questions}, nil
}
