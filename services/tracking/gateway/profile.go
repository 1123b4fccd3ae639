package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	httpclient "github.com/piresc/nebengjek-tracking/internal/pkg/http"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// ProfileGW resolves driver vehicle categories through the user service
type ProfileGW struct {
	apiClient *httpclient.APIKeyClient
}

// NewProfileGW creates the vehicle profile gateway
func NewProfileGW(apiClient *httpclient.APIKeyClient) tracking.VehicleProfileLookup {
	return &ProfileGW{apiClient: apiClient}
}

type driverProfile struct {
	VehicleType string `json:"vehicleType"`
}

// GetVehicleType returns the driver's vehicle category. A driver without a
// profile yields an empty type and no error.
func (g *ProfileGW) GetVehicleType(ctx context.Context, driverID string) (string, error) {
	endpoint := fmt.Sprintf("/internal/drivers/%s/profile", url.PathEscape(driverID))

	body, err := g.apiClient.GetBody(ctx, endpoint)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch driver profile: %w", err)
	}

	var profile driverProfile
	if err := utils.ParseJSONResponse(body, &profile); err != nil {
		return "", fmt.Errorf("failed to decode driver profile: %w", err)
	}
	return profile.VehicleType, nil
}
