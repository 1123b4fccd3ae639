package usecase

import (
	"strings"

	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

func validateLocation(field string, loc models.Location) error {
	if !utils.ValidCoordinates(loc.Latitude, loc.Longitude) {
		return tracking.InvalidInput("%s must have latitude in [-90, 90] and longitude in [-180, 180]", field)
	}
	return nil
}

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return tracking.InvalidInput("%s is required", field)
	}
	return nil
}
