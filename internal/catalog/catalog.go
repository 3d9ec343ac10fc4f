package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

// document is the on-disk catalog layout.
type document struct {
	SchemaVersion       string                 `yaml:"schema_version"`
	Name                string                 `yaml:"name"`
	Units               Units                  `yaml:"units"`
	ReferenceUsageCount int                    `yaml:"reference_usage_count"`
	Stakeholders        []string               `yaml:"stakeholders"`
	Stages              map[Stage]stageDocument `yaml:"stages"`
}

type stageDocument struct {
	Default string        `yaml:"default"`
	Options []StageOption `yaml:"options"`
}

// stageTable is the validated, indexed form of one stage.
type stageTable struct {
	defaultID string
	options   []StageOption
	index     map[string]int
}

// Catalog is the validated impact reference data. It has no mutation API
// and is safe for concurrent reads.
type Catalog struct {
	schemaVersion  string
	name           string
	referenceUsage int
	stakeholders   []string
	stages         map[Stage]*stageTable
}

// Parse decodes, validates and normalizes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	if err := checkSchemaVersion(doc.SchemaVersion); err != nil {
		return nil, err
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}

	return build(&doc)
}

// LoadFile reads and parses the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return cat, nil
}

// defaultCatalog parses the embedded catalog on first use.
//
//nolint:gochecknoglobals // Process-wide read-only reference data.
var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
})

// Default returns the embedded t-shirt catalog. It is parsed once per
// process and shared by all callers.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// DefaultYAML returns a copy of the embedded catalog source.
func DefaultYAML() []byte {
	return slices.Clone(defaultCatalogYAML)
}

func build(doc *document) (*Catalog, error) {
	norm, err := newNormalizer(doc.Units)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	ref := doc.ReferenceUsageCount
	if ref == 0 {
		ref = DefaultReferenceUsageCount
	}

	c := &Catalog{
		schemaVersion:  doc.SchemaVersion,
		name:           doc.Name,
		referenceUsage: ref,
		stakeholders:   slices.Clone(doc.Stakeholders),
		stages:         make(map[Stage]*stageTable, len(Stages())),
	}

	for _, st := range Stages() {
		sd := doc.Stages[st]
		t := &stageTable{
			defaultID: sd.Default,
			options:   make([]StageOption, 0, len(sd.Options)),
			index:     make(map[string]int, len(sd.Options)),
		}
		for _, opt := range sd.Options {
			opt = opt.clone()
			opt.Impact, err = norm.apply(opt.Impact)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidCatalog, st, opt.ID, err)
			}
			slices.Sort(opt.SDGs)
			t.index[opt.ID] = len(t.options)
			t.options = append(t.options, opt)
		}
		c.stages[st] = t
	}

	return c, nil
}

// SchemaVersion returns the catalog's declared schema version.
func (c *Catalog) SchemaVersion() string { return c.schemaVersion }

// Name returns the catalog's product name.
func (c *Catalog) Name() string { return c.name }

// Stakeholders returns the fixed stakeholder key set in declaration order.
func (c *Catalog) Stakeholders() []string {
	return slices.Clone(c.stakeholders)
}

// Lookup resolves an option id within a stage. It returns
// ErrUnknownOption if id is not a member of the stage's option set.
func (c *Catalog) Lookup(stage Stage, id string) (StageOption, error) {
	t, ok := c.stages[stage]
	if !ok {
		return StageOption{}, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	i, ok := t.index[id]
	if !ok {
		return StageOption{}, fmt.Errorf("%w: stage %s has no option %q", ErrUnknownOption, stage, id)
	}
	return t.options[i].clone(), nil
}

// Options returns a stage's options in catalog order.
func (c *Catalog) Options(stage Stage) []StageOption {
	t, ok := c.stages[stage]
	if !ok {
		return nil
	}
	out := make([]StageOption, len(t.options))
	for i, o := range t.options {
		out[i] = o.clone()
	}
	return out
}

// OptionIDs returns a stage's option identifiers in catalog order.
func (c *Catalog) OptionIDs(stage Stage) []string {
	t, ok := c.stages[stage]
	if !ok {
		return nil
	}
	ids := make([]string, len(t.options))
	for i, o := range t.options {
		ids[i] = o.ID
	}
	return ids
}

// DefaultOption returns the option id a fresh scenario selects for stage.
func (c *Catalog) DefaultOption(stage Stage) string {
	if t, ok := c.stages[stage]; ok {
		return t.defaultID
	}
	return ""
}

// ReferenceUsage returns the wash count that opt's stakeholder scores are
// expressed against.
func (c *Catalog) ReferenceUsage(opt StageOption) int {
	if opt.ReferenceUsage > 0 {
		return opt.ReferenceUsage
	}
	return c.referenceUsage
}

// ScenarioCount returns the number of distinct option combinations.
func (c *Catalog) ScenarioCount() int {
	n := 1
	for _, st := range Stages() {
		n *= len(c.stages[st].options)
	}
	return n
}
