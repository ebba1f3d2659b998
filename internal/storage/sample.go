package storage

import (
	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/models"
)

func GetAllSamples(db *gormw.DB) ([]models.Sample, error) {
	var samples []models.Sample
	err := db.
		Preload("SampleType").
		Preload("Material").
		Preload("TestSpecimenType").
		Find(&samples).Error
	return samples, err
}

func GetSampleByID(db *gormw.DB, id uint) (*models.Sample, error) {
	sample := &models.Sample{}
	err := db.
		Preload("SampleType").
		Preload("Material").
		Preload("TestSpecimenType").
		Where("id = ?", id).
		First(&sample).Error
	if err != nil {
		return nil, err
	}
	return sample, nil
}

func CreateSample(db *gormw.DB, sample *models.Sample) error {
	return db.Create(sample).Error
}
