package models

import "time"

type Sample struct {
	ID                 uint              `gorm:"primarykey" json:"id"`
	SampleNumber       string            `gorm:"size:50;not null" json:"sample_number"`
	SampleTypeID       *uint             `json:"sample_type_id"`
	SampleType         *SampleType       `gorm:"foreignKey:SampleTypeID" json:"sample_type,omitempty"`
	MaterialID         *uint             `json:"material_id"`
	Material           *Material         `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Dimensions         string            `gorm:"size:100" json:"dimensions"`
	TestSpecimenTypeID *uint             `json:"test_specimen_type_id"`
	TestSpecimenType   *TestSpecimenType `gorm:"foreignKey:TestSpecimenTypeID" json:"test_specimen_type,omitempty"`
	Observations       string            `json:"observations"`
	DateReceived       time.Time         `gorm:"not null" json:"date_received"`
}
