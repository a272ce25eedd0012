package services

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/models"
)

// LoadIngredients bulk-loads the ingredient catalog from a comma-delimited
// file of name,unit rows. The load is append-only with no dedup: re-running
// it duplicates rows.
func LoadIngredients(path string, repo *database.IngredientRepo) (int, error) {
	records, err := readCSV(path, 2)
	if err != nil {
		return 0, err
	}

	ingredients := make([]models.Ingredient, 0, len(records))
	for _, record := range records {
		ingredients = append(ingredients, models.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
	}
	if err := repo.AddBatch(ingredients); err != nil {
		return 0, fmt.Errorf("bulk-insert ingredients: %w", err)
	}
	return len(ingredients), nil
}

// LoadTags bulk-loads the tag catalog from a comma-delimited file of
// name,color,slug rows. Slugs are normalized on the way in; the unique
// constraints reject rows that collide with existing tags.
func LoadTags(path string, repo *database.TagRepo) (int, error) {
	records, err := readCSV(path, 3)
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, record := range records {
		tag := models.Tag{
			Name:  record[0],
			Color: record[1],
			Slug:  models.NormalizeSlug(record[2]),
		}
		if err := repo.Add(&tag); err != nil {
			return loaded, fmt.Errorf("insert tag %q: %w", tag.Name, err)
		}
		loaded++
	}
	return loaded, nil
}

func readCSV(path string, fields int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = fields
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return records, nil
}
