package storage

import (
	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/models"
)

func GetAllMaterials(db *gormw.DB) ([]models.Material, error) {
	var materials []models.Material
	err := db.Find(&materials).Error
	return materials, err
}

func GetMaterialByID(db *gormw.DB, id uint) (*models.Material, error) {
	material := &models.Material{}
	if err := db.Where("id = ?", id).First(&material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

func GetAllSampleTypes(db *gormw.DB) ([]models.SampleType, error) {
	var sampleTypes []models.SampleType
	err := db.Find(&sampleTypes).Error
	return sampleTypes, err
}

func GetSampleTypeByID(db *gormw.DB, id uint) (*models.SampleType, error) {
	sampleType := &models.SampleType{}
	if err := db.Where("id = ?", id).First(&sampleType).Error; err != nil {
		return nil, err
	}
	return sampleType, nil
}

func GetAllTestSpecimenTypes(db *gormw.DB) ([]models.TestSpecimenType, error) {
	var testSpecimenTypes []models.TestSpecimenType
	err := db.Find(&testSpecimenTypes).Error
	return testSpecimenTypes, err
}

func GetTestSpecimenTypeByID(db *gormw.DB, id uint) (*models.TestSpecimenType, error) {
	testSpecimenType := &models.TestSpecimenType{}
	if err := db.Where("id = ?", id).First(&testSpecimenType).Error; err != nil {
		return nil, err
	}
	return testSpecimenType, nil
}
