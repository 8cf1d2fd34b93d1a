package fixture

import (
	_ "embed"
	"fmt"

	"contactcenter_backend/internal/leads/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type weighted struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// Catalog holds the dimension values the generator draws from.
type Catalog struct {
	Bases         []domain.Base `yaml:"bases"`
	Channels      []weighted    `yaml:"channels"`
	Outcomes      []weighted    `yaml:"outcomes"`
	Programs      []string      `yaml:"programs"`
	Subcategories []string      `yaml:"subcategories"`
	Agents        []string      `yaml:"agents"`
	Names         []string      `yaml:"names"`
	EmailDomains  []string      `yaml:"email_domains"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse fixture catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) validate() error {
	switch {
	case len(c.Bases) == 0:
		return fmt.Errorf("fixture catalog: no bases")
	case len(c.Channels) == 0 || len(c.Outcomes) == 0:
		return fmt.Errorf("fixture catalog: channels and outcomes are required")
	case len(c.Programs) == 0 || len(c.Agents) == 0 || len(c.Names) == 0 || len(c.EmailDomains) == 0:
		return fmt.Errorf("fixture catalog: programs, agents, names and email domains are required")
	}
	for _, o := range c.Outcomes {
		if !domain.IsKnownOutcome(domain.Outcome(o.Name)) {
			return fmt.Errorf("fixture catalog: unknown outcome %q", o.Name)
		}
	}
	return nil
}
