package config

import (
	"fmt"
	"os"

	"github.com/go-yaml/yaml"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
)

type catalogFile struct {
	Departments []domain.Department `yaml:"departments"`
}

// LoadCatalog reads the department catalog from a YAML file. An empty path
// yields the built-in catalog.
func LoadCatalog(path string) (domain.Catalog, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("config: read departments file: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (domain.Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.Catalog{}, fmt.Errorf("config: parse departments file: %w", err)
	}
	if len(f.Departments) == 0 {
		return domain.Catalog{}, fmt.Errorf("config: departments file lists no departments")
	}

	catalog, err := domain.NewCatalog(f.Departments)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("config: %w", err)
	}
	return catalog, nil
}
