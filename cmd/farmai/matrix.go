package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"farmai-backend/internal/crops"
	"farmai-backend/internal/openmeteo"
	"farmai-backend/internal/shared/config"
	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/upstream"
)

type matrixOutput struct {
	Forecast   *openmeteo.Forecast `json:"weather_forecast,omitempty"`
	Matrix     []crops.Candidate   `json:"crop_matrix"`
	Projection crops.Projection    `json:"economic_projections"`
}

type forecaster interface {
	Forecast(ctx context.Context, lat, lng float64) *openmeteo.Forecast
}

func matrixCmd() *cobra.Command {
	var (
		lat, lng, area float64
		offline        bool
	)

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Score crops and project revenue for a location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var source forecaster
			if !offline {
				cfg := config.Load()
				up := upstream.New(cfg.UpstreamTimeout, cfg.UserAgent, cache.Nop{}, 0)
				source = openmeteo.NewClient(up, cfg.OpenMeteoURL, cfg.OpenMeteoArchiveURL)
			}
			return runMatrix(cmd, source, lat, lng, area)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	cmd.Flags().Float64Var(&area, "area", 1, "field area in acres")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip the forecast fetch and use the neutral climate factor")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func runMatrix(cmd *cobra.Command, source forecaster, lat, lng, area float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("coordinates out of range: %v,%v", lat, lng)
	}
	if area < 0 {
		return errors.New("area must be non-negative")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var forecast *openmeteo.Forecast
	if source != nil {
		forecast = source.Forecast(ctx, lat, lng)
	}
	matrix := crops.GenerateMatrix(forecast)
	out := matrixOutput{
		Forecast:   forecast,
		Matrix:     matrix,
		Projection: crops.CalculateProjection(matrix, area),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
