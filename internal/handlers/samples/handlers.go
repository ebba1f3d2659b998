// Package samples serves the authorized reference-data and sample
// endpoints consumed by the mobile client.
package samples

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/models"
	"github.com/dcastane/labsamples/internal/storage"
)

var (
	logger = log.With().Str("component", "samples").Logger()
)

type Handler struct {
	db *gormw.DB
}

func NewHandler(db *gormw.DB) *Handler {
	return &Handler{db: db}
}

// RegisterHandlers wires the API routes. The caller is expected to attach
// the auth guard middleware to rg; every route here assumes an
// authenticated request.
func (h *Handler) RegisterHandlers(rg *gin.RouterGroup) {
	rg.GET("/materials", h.listMaterials)
	rg.GET("/materials/:id", h.getMaterial)

	rg.GET("/sample-types", h.listSampleTypes)
	rg.GET("/sample-types/:id", h.getSampleType)

	rg.GET("/test-specimen-types", h.listTestSpecimenTypes)
	rg.GET("/test-specimen-types/:id", h.getTestSpecimenType)

	rg.GET("/samples", h.listSamples)
	rg.GET("/samples/:id", h.getSample)
	rg.POST("/samples", h.createSample)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) listMaterials(c *gin.Context) {
	materials, err := storage.GetAllMaterials(h.db)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve materials")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving all materials.")
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (h *Handler) getMaterial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	material, err := storage.GetMaterialByID(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Material not found.")
			return
		}
		logger.Error().Err(err).Uint("id", id).Msg("Failed to retrieve material")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving the material.")
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *Handler) listSampleTypes(c *gin.Context) {
	sampleTypes, err := storage.GetAllSampleTypes(h.db)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve sample types")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving all sample types.")
		return
	}
	c.JSON(http.StatusOK, sampleTypes)
}

func (h *Handler) getSampleType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sampleType, err := storage.GetSampleTypeByID(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Sample type not found.")
			return
		}
		logger.Error().Err(err).Uint("id", id).Msg("Failed to retrieve sample type")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving the sample type.")
		return
	}
	c.JSON(http.StatusOK, sampleType)
}

func (h *Handler) listTestSpecimenTypes(c *gin.Context) {
	testSpecimenTypes, err := storage.GetAllTestSpecimenTypes(h.db)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve test specimen types")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving all test specimen types.")
		return
	}
	c.JSON(http.StatusOK, testSpecimenTypes)
}

func (h *Handler) getTestSpecimenType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	testSpecimenType, err := storage.GetTestSpecimenTypeByID(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Test specimen type not found.")
			return
		}
		logger.Error().Err(err).Uint("id", id).Msg("Failed to retrieve test specimen type")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving the test specimen type.")
		return
	}
	c.JSON(http.StatusOK, testSpecimenType)
}

func (h *Handler) listSamples(c *gin.Context) {
	samples, err := storage.GetAllSamples(h.db)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve samples")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving all samples.")
		return
	}
	c.JSON(http.StatusOK, samples)
}

func (h *Handler) getSample(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sample, err := storage.GetSampleByID(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Sample not found.")
			return
		}
		logger.Error().Err(err).Uint("id", id).Msg("Failed to retrieve sample")
		c.String(http.StatusInternalServerError, "An error occurred while retrieving the sample.")
		return
	}
	c.JSON(http.StatusOK, sample)
}

type createSampleParams struct {
	SampleNumber       string `json:"sample_number" binding:"required,max=50"`
	SampleTypeID       *uint  `json:"sample_type_id"`
	MaterialID         *uint  `json:"material_id"`
	Dimensions         string `json:"dimensions" binding:"max=100"`
	TestSpecimenTypeID *uint  `json:"test_specimen_type_id"`
	Observations       string `json:"observations"`
}

func (h *Handler) createSample(c *gin.Context) {
	params := &createSampleParams{}
	if err := c.ShouldBindJSON(params); err != nil {
		c.String(http.StatusBadRequest, "Missing required parameters: "+err.Error())
		return
	}

	if msg, err := h.checkSampleReferences(params); err != nil {
		logger.Error().Err(err).Msg("Failed to validate sample references")
		c.String(http.StatusInternalServerError, "An error occurred while creating the sample.")
		return
	} else if msg != "" {
		c.String(http.StatusBadRequest, msg)
		return
	}

	sample := &models.Sample{
		SampleNumber:       params.SampleNumber,
		SampleTypeID:       params.SampleTypeID,
		MaterialID:         params.MaterialID,
		Dimensions:         params.Dimensions,
		TestSpecimenTypeID: params.TestSpecimenTypeID,
		Observations:       params.Observations,
		DateReceived:       time.Now(),
	}

	if err := storage.CreateSample(h.db, sample); err != nil {
		logger.Error().Err(err).Msg("Failed to create sample")
		c.String(http.StatusInternalServerError, "An error occurred while creating the sample.")
		return
	}

	c.String(http.StatusOK, "Sample successfully created.")
}

// checkSampleReferences verifies the optional foreign ids point at existing
// rows. Returns a client-facing message for a bad reference, or an error
// for a storage failure.
func (h *Handler) checkSampleReferences(params *createSampleParams) (string, error) {
	if params.SampleTypeID != nil {
		if _, err := storage.GetSampleTypeByID(h.db, *params.SampleTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "The referenced sample type does not exist.", nil
			}
			return "", err
		}
	}
	if params.MaterialID != nil {
		if _, err := storage.GetMaterialByID(h.db, *params.MaterialID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "The referenced material does not exist.", nil
			}
			return "", err
		}
	}
	if params.TestSpecimenTypeID != nil {
		if _, err := storage.GetTestSpecimenTypeByID(h.db, *params.TestSpecimenTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "The referenced test specimen type does not exist.", nil
			}
			return "", err
		}
	}
	return "", nil
}
