package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/utils/logging"
)

// Catalog holds CLI flags for loading additional threat catalogs from TOML
// files. Loaded catalogs are registered on top of the built-in templates,
// replacing a built-in when the template ID collides.
type Catalog struct {
	paths []string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "catalog",
			Usage:       "Path to a TOML threat catalog file; adds a new template or replaces a built-in (repeatable)",
			Sources:     cli.EnvVars("AEGIS_CATALOG"),
			Destination: &c.paths,
		},
	}
}

// catalogFile mirrors the TOML layout of one catalog definition
type catalogFile struct {
	Template   string        `toml:"template"`
	Version    string        `toml:"version"`
	FourFactor bool          `toml:"four_factor"`
	Threats    []threatEntry `toml:"threat"`
	Sections   []sectionEntry `toml:"section"`
	Required   []string      `toml:"required"`
	Rules      []ruleEntry   `toml:"rule"`
}

type threatEntry struct {
	ID         string  `toml:"id"`
	Name       string  `toml:"name"`
	Category   string  `toml:"category"`
	BaseWeight float64 `toml:"base_weight"`
}

type sectionEntry struct {
	ID        string   `toml:"id"`
	Name      string   `toml:"name"`
	Questions []string `toml:"questions"`
}

type ruleEntry struct {
	Question   string   `toml:"question"`
	BadAnswers []string `toml:"bad_answers"`
	Signal     string   `toml:"signal"`
	Severity   string   `toml:"severity"`
	Category   string   `toml:"category"`
	Threats    []string `toml:"threats"`
}

func (f *catalogFile) toCatalog() *catalog.Catalog {
	divisor := catalog.DivisorThreeFactor
	if f.FourFactor {
		divisor = catalog.DivisorFourFactor
	}
	c := &catalog.Catalog{
		Template:   types.TemplateID(f.Template),
		Version:    f.Version,
		FourFactor: f.FourFactor,
		Divisor:    divisor,
	}

	for _, t := range f.Threats {
		c.Threats = append(c.Threats, catalog.ThreatDefinition{
			ID:         types.ThreatID(t.ID),
			Name:       t.Name,
			Category:   t.Category,
			BaseWeight: t.BaseWeight,
		})
	}

	for _, s := range f.Sections {
		section := catalog.Section{
			ID:   types.SectionID(s.ID),
			Name: s.Name,
		}
		for _, q := range s.Questions {
			section.Questions = append(section.Questions, types.QuestionID(q))
		}
		c.Sections = append(c.Sections, section)
	}

	for _, q := range f.Required {
		c.Required = append(c.Required, types.QuestionID(q))
	}

	for _, r := range f.Rules {
		rule := catalog.SignalRule{
			QuestionID: types.QuestionID(r.Question),
			BadAnswers: r.BadAnswers,
			Signal:     r.Signal,
			Severity:   types.SignalSeverity(r.Severity),
			Category:   types.SignalCategory(r.Category),
		}
		for _, id := range r.Threats {
			rule.AffectedThreats = append(rule.AffectedThreats, types.ThreatID(id))
		}
		c.Rules = append(c.Rules, rule)
	}

	return c
}

// LoadCatalogFile parses and validates one TOML catalog definition
func LoadCatalogFile(path string) (*catalog.Catalog, error) {
	// #nosec G304 - path is provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrCatalogNotFound, err.Error(), goerr.V(CatalogPathKey, path))
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog", goerr.V(CatalogPathKey, path))
	}

	c := file.toCatalog()
	if err := c.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidCatalog, err.Error(),
			goerr.V(CatalogPathKey, path),
			goerr.V(TemplateKey, file.Template),
		)
	}

	return c, nil
}

// Configure builds the template registry: built-in catalogs first, then
// any TOML catalogs layered over them.
func (c *Catalog) Configure() (*catalog.Registry, error) {
	registry := catalog.NewBuiltinRegistry()

	for _, path := range c.paths {
		loaded, err := LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		registry.Register(loaded)
		logging.Default().Info("Loaded catalog",
			"path", path,
			"template", loaded.Template,
			"version", loaded.Version,
			"threats", len(loaded.Threats),
		)
	}

	return registry, nil
}
