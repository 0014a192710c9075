package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/blood_mobilization_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCodec_RoundTripKeepsEmptyDistinctFromMiss(t *testing.T) {
	raw, err := encodeCatalog(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	events, err := decodeCatalog(raw)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestCatalogCodec_PreservesEventFields(t *testing.T) {
	end := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	in := []*models.EmergencyEvent{{
		ID:                 "EMG-001",
		HospitalName:       "City Hospital",
		Location:           models.Location{Latitude: 28.61, Longitude: 77.2},
		BloodGroupRequired: models.BloodGroupABNeg,
		UnitsRequired:      2,
		UrgencyLevel:       models.UrgencyCritical,
		Status:             models.EventStatusActive,
		EstimatedEndTime:   end,
	}}

	raw, err := encodeCatalog(in)
	require.NoError(t, err)

	out, err := decodeCatalog(raw)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].Location, out[0].Location)
	assert.Equal(t, models.BloodGroupABNeg, out[0].BloodGroupRequired)
	assert.True(t, end.Equal(out[0].EstimatedEndTime))
}

func TestCatalogCodec_Corrupted(t *testing.T) {
	_, err := decodeCatalog([]byte("{not json"))
	assert.ErrorContains(t, err, "failed to unmarshal active catalog")
}

func TestNopCatalogCache_AlwaysMisses(t *testing.T) {
	cache := NopCatalogCache{}
	ctx := context.Background()

	require.NoError(t, cache.SetActiveEvents(ctx, []*models.EmergencyEvent{{ID: "EMG-1"}}))
	events, err := cache.GetActiveEvents(ctx)
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.NoError(t, cache.InvalidateActiveEvents(ctx))
}
