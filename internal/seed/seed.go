// Package seed loads reference data (categories and ingredients) into the
// database without duplicating rows that already exist.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
)

//go:embed default.yaml
var defaultDocument []byte

// Document is the YAML layout of a seed file.
type Document struct {
	Categories  []string     `yaml:"categories"`
	Ingredients []Ingredient `yaml:"ingredients"`
}

type Ingredient struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Result counts the rows a seed run inserted.
type Result struct {
	CategoriesCreated  int
	IngredientsCreated int
}

// Load parses a seed document. Unknown keys are rejected.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("failed to parse seed document: %w", err)
	}
	return &doc, nil
}

// LoadFile reads the seed document at path, or the built-in one when path is empty.
func LoadFile(path string) (*Document, error) {
	if path == "" {
		return Load(bytes.NewReader(defaultDocument))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Apply inserts the categories and ingredients of doc that are not present
// yet. Names are compared case-insensitively.
func Apply(ctx context.Context, db *gorm.DB, doc *Document) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, raw := range doc.Categories {
			name := service.NormalizeCategoryName(raw)
			if name == "" {
				continue
			}
			created, err := insertMissing(tx, &models.Category{Name: name}, name)
			if err != nil {
				return fmt.Errorf("category %q: %w", name, err)
			}
			if created {
				res.CategoriesCreated++
			}
		}

		for _, in := range doc.Ingredients {
			name := strings.TrimSpace(in.Name)
			if name == "" {
				continue
			}
			ingredient := &models.Ingredient{Name: name, Description: strings.TrimSpace(in.Description)}
			created, err := insertMissing(tx, ingredient, name)
			if err != nil {
				return fmt.Errorf("ingredient %q: %w", name, err)
			}
			if created {
				res.IngredientsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logging.Ctx(ctx).Info().
		Int("categories", res.CategoriesCreated).
		Int("ingredients", res.IngredientsCreated).
		Msg("seed applied")
	return res, nil
}

func insertMissing(tx *gorm.DB, row interface{}, name string) (bool, error) {
	var count int64
	if err := tx.Model(row).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := tx.Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}
