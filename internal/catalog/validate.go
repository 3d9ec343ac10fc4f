package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var catalogSchemaJSON []byte

// schemaURL is the resource name the embedded schema is registered under.
const schemaURL = "https://garmentlca.local/schemas/catalog.schema.json"

// SupportedSchemaVersions is the semver constraint a catalog's
// schema_version must satisfy.
const SupportedSchemaVersions = ">= 1.0.0, < 2.0.0"

//nolint:gochecknoglobals // Compiled once, read-only afterwards.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(catalogSchemaJSON)); err != nil {
		return nil, fmt.Errorf("catalog schema load failed: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateSchema checks the structural shape of a YAML catalog against the
// embedded JSON Schema. YAML is re-encoded as JSON so the validator sees
// the same value types json.Unmarshal would produce.
func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var raw any
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parsing YAML: %w", ErrInvalidCatalog, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	var value any
	if err = json.Unmarshal(jsonBytes, &value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	if err = schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return nil
}

// checkSchemaVersion enforces SupportedSchemaVersions.
func checkSchemaVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchemaVersions)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, version, SupportedSchemaVersions)
	}
	return nil
}

// validateDocument performs the semantic checks the schema cannot express.
// Every problem is reported, joined into one error.
func validateDocument(doc *document) error {
	var errs []error

	stakeholders := make(map[string]bool, len(doc.Stakeholders))
	for _, s := range doc.Stakeholders {
		stakeholders[s] = true
	}

	if doc.ReferenceUsageCount < 0 {
		errs = append(errs, fmt.Errorf("reference_usage_count must be >= 1, got %d", doc.ReferenceUsageCount))
	}
	if !IsRecognizedWaterUnit(doc.Units.Water) {
		errs = append(errs, fmt.Errorf("%w: water unit %q", ErrInvalidUnit, doc.Units.Water))
	}
	if !IsRecognizedCarbonUnit(doc.Units.Carbon) {
		errs = append(errs, fmt.Errorf("%w: carbon unit %q", ErrInvalidUnit, doc.Units.Carbon))
	}

	for _, st := range Stages() {
		sd, ok := doc.Stages[st]
		if !ok {
			errs = append(errs, fmt.Errorf("stage %s is missing", st))
			continue
		}
		errs = append(errs, validateStage(st, sd, stakeholders)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}

func validateStage(st Stage, sd stageDocument, stakeholders map[string]bool) []error {
	var errs []error

	if len(sd.Options) == 0 {
		return []error{fmt.Errorf("stage %s has no options", st)}
	}

	seen := make(map[string]bool, len(sd.Options))
	for _, opt := range sd.Options {
		path := fmt.Sprintf("%s.%s", st, opt.ID)
		switch {
		case opt.ID == "":
			errs = append(errs, fmt.Errorf("stage %s has an option without an id", st))
		case seen[opt.ID]:
			errs = append(errs, fmt.Errorf("stage %s has duplicate option %q", st, opt.ID))
		}
		seen[opt.ID] = true

		if opt.Impact.Water < 0 || !isFinite(opt.Impact.Water) {
			errs = append(errs, fmt.Errorf("%s: water must be a finite value >= 0, got %v", path, opt.Impact.Water))
		}
		if !isFinite(opt.Impact.Carbon) {
			errs = append(errs, fmt.Errorf("%s: carbon must be finite, got %v", path, opt.Impact.Carbon))
		}
		for _, id := range opt.SDGs {
			if !IsKnownSDG(id) {
				errs = append(errs, fmt.Errorf("%s: unknown SDG %d", path, id))
			}
		}
		for name, score := range opt.Stakeholders {
			if !stakeholders[name] {
				errs = append(errs, fmt.Errorf("%s: undeclared stakeholder %q", path, name))
			}
			if score < MinStakeholderScore || score > MaxStakeholderScore {
				errs = append(errs, fmt.Errorf("%s: stakeholder %q score %d outside %d..%d",
					path, name, score, MinStakeholderScore, MaxStakeholderScore))
			}
		}
		if opt.ReferenceUsage != 0 && !st.Repeated() {
			errs = append(errs, fmt.Errorf("%s: reference_usage is only valid on repeated-impact stages", path))
		}
		if opt.ReferenceUsage < 0 {
			errs = append(errs, fmt.Errorf("%s: reference_usage must be >= 1, got %d", path, opt.ReferenceUsage))
		}
	}

	if !seen[sd.Default] {
		errs = append(errs, fmt.Errorf("stage %s default %q is not one of its options", st, sd.Default))
	}

	return errs
}
