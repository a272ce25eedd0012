package database

import (
	"errors"

	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags ordered by name
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by its ID, or nil when absent
func (r *TagRepo) FindByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByIDs returns the tags matching the given ids
func (r *TagRepo) FindByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Find(&tags, ids).Error
	return tags, err
}

// SlugTaken reports whether a different tag already holds the slug.
func (r *TagRepo) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update updates an existing tag in the database
func (r *TagRepo) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}
