package repository

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/advocate-directory-api/internal/models"
)

//go:embed seed/advocates.yaml
var embeddedSeed []byte

type seedDocument struct {
	Advocates []models.Advocate `yaml:"advocates"`
}

// SeedRepository serves advocates parsed once from YAML seed data.
// The slice it returns is shared and must be treated as read-only.
type SeedRepository struct {
	advocates []models.Advocate
}

// NewSeedRepository loads seed data from path, or from the embedded data set when path is empty.
func NewSeedRepository(path string, validate *validator.Validate) (*SeedRepository, error) {
	advocates, err := LoadSeed(path, validate)
	if err != nil {
		return nil, err
	}
	assignSequentialIDs(advocates)
	return &SeedRepository{advocates: advocates}, nil
}

// assignSequentialIDs numbers advocates from 1 in file order, keeping ids the seed already carries.
func assignSequentialIDs(advocates []models.Advocate) {
	for i := range advocates {
		if advocates[i].ID == nil {
			id := int64(i + 1)
			advocates[i].ID = &id
		}
	}
}

// LoadSeed reads and validates seed advocates from path or the embedded data set.
func LoadSeed(path string, validate *validator.Validate) ([]models.Advocate, error) {
	advocates, err := DecodeSeed(path)
	if err != nil {
		return nil, err
	}
	return advocates, validateSeed(advocates, validate)
}

// DecodeSeed reads seed advocates from path or the embedded data set without validating them.
func DecodeSeed(path string) ([]models.Advocate, error) {
	data := embeddedSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = raw
	}
	return decodeSeed(data)
}

// ParseSeed decodes a YAML seed document and validates every advocate in it.
func ParseSeed(data []byte, validate *validator.Validate) ([]models.Advocate, error) {
	advocates, err := decodeSeed(data)
	if err != nil {
		return nil, err
	}
	return advocates, validateSeed(advocates, validate)
}

func decodeSeed(data []byte) ([]models.Advocate, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	if doc.Advocates == nil {
		doc.Advocates = []models.Advocate{}
	}
	return doc.Advocates, nil
}

func validateSeed(advocates []models.Advocate, validate *validator.Validate) error {
	if validate == nil {
		validate = models.NewValidator()
	}
	for i := range advocates {
		if err := validate.Struct(advocates[i]); err != nil {
			return fmt.Errorf("seed advocate %d (%s): %w", i, advocates[i].FullName(), err)
		}
	}
	return nil
}
