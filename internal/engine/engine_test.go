package engine

import (
	"testing"
	"time"

	"github.com/shenikar/blood_mobilization_system/internal/clock"
	"github.com/shenikar/blood_mobilization_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return New(clock.FixedClock{At: testNow})
}

func newEvent(id string, urgency models.UrgencyLevel, loc models.Location) *models.EmergencyEvent {
	return &models.EmergencyEvent{
		ID:                 id,
		HospitalName:       "Hospital " + id,
		Location:           loc,
		BloodGroupRequired: models.BloodGroupOPos,
		UnitsRequired:      3,
		UrgencyLevel:       urgency,
		Status:             models.EventStatusActive,
		CreatedAt:          testNow.Add(-time.Hour),
		EstimatedEndTime:   testNow.Add(6 * time.Hour),
	}
}

func ids(events []models.AnnotatedEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestDistance_Symmetric(t *testing.T) {
	points := []models.Location{
		{Latitude: 28.6139, Longitude: 77.2090},
		{Latitude: 19.0760, Longitude: 72.8777},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 0, Longitude: 0},
		{Latitude: 51.5074, Longitude: -0.1278},
	}

	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
		}
	}
}

func TestDistance_KnownValues(t *testing.T) {
	delhi := models.Location{Latitude: 28.6139, Longitude: 77.2090}
	mumbai := models.Location{Latitude: 19.0760, Longitude: 72.8777}

	assert.Equal(t, 0.0, Distance(delhi, delhi))
	// Дели - Мумбаи по большому кругу 1148.1 км
	assert.Equal(t, 1148.1, Distance(delhi, mumbai))

	// один градус долготы на экваторе: 6371 * pi / 180 = 111.19 км
	assert.Equal(t, 111.2, Distance(models.Location{}, models.Location{Longitude: 1}))
}

func TestListActiveEvents_EmptyCatalog(t *testing.T) {
	e := newTestEngine()

	result := e.ListActiveEvents(nil, &models.Location{Latitude: 1, Longitude: 1})
	require.NotNil(t, result)
	assert.Empty(t, result)

	result = e.ListActiveEvents([]*models.EmergencyEvent{}, nil)
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListActiveEvents_UrgencyDominatesDistance(t *testing.T) {
	e := newTestEngine()
	user := models.Location{Latitude: 0, Longitude: 0}

	// долгота 0.045 градуса ~ 5 км, 0.009 ~ 1 км, 0.018 ~ 2 км
	catalog := []*models.EmergencyEvent{
		newEvent("critical-5", models.UrgencyCritical, models.Location{Longitude: 0.045}),
		newEvent("high-1", models.UrgencyHigh, models.Location{Longitude: 0.009}),
		newEvent("critical-2", models.UrgencyCritical, models.Location{Longitude: 0.018}),
	}

	result := e.ListActiveEvents(catalog, &user)

	require.Len(t, result, 3)
	assert.Equal(t, []string{"critical-2", "critical-5", "high-1"}, ids(result))
	require.NotNil(t, result[0].Distance)
	assert.Equal(t, 2.0, *result[0].Distance)
	assert.Equal(t, 5.0, *result[1].Distance)
	assert.Equal(t, 1.0, *result[2].Distance)
}

func TestListActiveEvents_UnknownUrgencySortsLast(t *testing.T) {
	e := newTestEngine()
	user := models.Location{}

	catalog := []*models.EmergencyEvent{
		newEvent("unknown", models.UrgencyLevel("LOW"), models.Location{Longitude: 0.001}),
		newEvent("moderate", models.UrgencyModerate, models.Location{Longitude: 1}),
		newEvent("critical", models.UrgencyCritical, models.Location{Longitude: 2}),
	}

	result := e.ListActiveEvents(catalog, &user)
	assert.Equal(t, []string{"critical", "moderate", "unknown"}, ids(result))
}

func TestListActiveEvents_NoLocation(t *testing.T) {
	e := newTestEngine()

	catalog := []*models.EmergencyEvent{
		newEvent("high", models.UrgencyHigh, models.Location{Latitude: 10}),
		newEvent("critical", models.UrgencyCritical, models.Location{Latitude: 20}),
	}

	result := e.ListActiveEvents(catalog, nil)

	require.Len(t, result, 2)
	assert.Equal(t, []string{"critical", "high"}, ids(result))
	for _, ev := range result {
		assert.Nil(t, ev.Distance)
	}
}

func TestListActiveEvents_SkipsClosedAndExpired(t *testing.T) {
	e := newTestEngine()

	closed := newEvent("closed", models.UrgencyCritical, models.Location{})
	closed.Status = models.EventStatusClosed

	expired := newEvent("expired", models.UrgencyCritical, models.Location{})
	expired.EstimatedEndTime = testNow.Add(-time.Minute)

	endsNow := newEvent("ends-now", models.UrgencyCritical, models.Location{})
	endsNow.EstimatedEndTime = testNow

	active := newEvent("active", models.UrgencyModerate, models.Location{})
	active.EstimatedEndTime = testNow.Add(90 * time.Minute)

	result := e.ListActiveEvents([]*models.EmergencyEvent{closed, expired, endsNow, active, nil}, nil)

	require.Len(t, result, 1)
	assert.Equal(t, "active", result[0].ID)
	assert.InDelta(t, 1.5, result[0].HoursRemaining, 1e-9)
	assert.False(t, result[0].IsExpired)
}

func TestListActiveEvents_ExpiryFlipsOnce(t *testing.T) {
	end := testNow
	event := newEvent("evt", models.UrgencyHigh, models.Location{})
	event.EstimatedEndTime = end

	var flips int
	wasListed := true
	for offset := -3 * time.Hour; offset <= 3*time.Hour; offset += 15 * time.Minute {
		e := New(clock.FixedClock{At: end.Add(offset)})
		listed := len(e.ListActiveEvents([]*models.EmergencyEvent{event}, nil)) == 1

		if listed != wasListed {
			flips++
			assert.False(t, listed, "event must never come back after expiring")
		}
		wasListed = listed
	}

	assert.Equal(t, 1, flips)
}

func TestListActiveEvents_DoesNotMutateCatalog(t *testing.T) {
	e := newTestEngine()
	catalog := []*models.EmergencyEvent{
		newEvent("b", models.UrgencyModerate, models.Location{}),
		newEvent("a", models.UrgencyCritical, models.Location{}),
	}

	_ = e.ListActiveEvents(catalog, &models.Location{})

	assert.Equal(t, "b", catalog[0].ID)
	assert.Equal(t, "a", catalog[1].ID)
}

func TestCheckEligibility_DonationGapBoundary(t *testing.T) {
	e := newTestEngine()

	exactly90 := testNow.Add(-90 * 24 * time.Hour)
	verdict := e.CheckEligibility(models.BloodGroupAPos, models.UserProfile{
		BloodGroup:       models.BloodGroupAPos,
		LastDonationDate: &exactly90,
	})
	assert.True(t, verdict.DonationGapMet)
	assert.True(t, verdict.Eligible)
	assert.Equal(t, []string{"You are eligible to donate!"}, verdict.Reasons)

	days89 := testNow.Add(-89 * 24 * time.Hour)
	verdict = e.CheckEligibility(models.BloodGroupAPos, models.UserProfile{
		BloodGroup:       models.BloodGroupAPos,
		LastDonationDate: &days89,
	})
	assert.False(t, verdict.DonationGapMet)
	assert.False(t, verdict.Eligible)
	assert.Contains(t, verdict.Reasons, "Must wait 1 more days since last donation")
}

func TestCheckEligibility_FloorsElapsedDays(t *testing.T) {
	e := newTestEngine()

	// 10 дней и 23 часа - это ещё 10 полных дней
	last := testNow.Add(-(10*24 + 23) * time.Hour)
	verdict := e.CheckEligibility(models.BloodGroupAny, models.UserProfile{LastDonationDate: &last})

	assert.False(t, verdict.Eligible)
	assert.Equal(t, []string{"Must wait 80 more days since last donation"}, verdict.Reasons)
}

func TestCheckEligibility_Wildcard(t *testing.T) {
	e := newTestEngine()

	for _, group := range []models.BloodGroup{"", models.BloodGroupONeg, models.BloodGroupABPos} {
		verdict := e.CheckEligibility(models.BloodGroupAny, models.UserProfile{BloodGroup: group})
		assert.True(t, verdict.BloodGroupMatch, "group %q", group)
		assert.True(t, verdict.Eligible)
	}

	verdict := e.CheckEligibility("", models.UserProfile{BloodGroup: models.BloodGroupBNeg})
	assert.True(t, verdict.BloodGroupMatch)
}

func TestCheckEligibility_UserAnyIsNotWildcard(t *testing.T) {
	e := newTestEngine()

	verdict := e.CheckEligibility(models.BloodGroupOPos, models.UserProfile{BloodGroup: models.BloodGroupAny})
	assert.False(t, verdict.BloodGroupMatch)
}

func TestCheckEligibility_MissingDataIsPermissive(t *testing.T) {
	e := newTestEngine()

	verdict := e.CheckEligibility(models.BloodGroupONeg, models.UserProfile{})

	assert.True(t, verdict.BloodGroupMatch)
	assert.True(t, verdict.DonationGapMet)
	assert.True(t, verdict.Eligible)
	assert.Equal(t, []string{"You are eligible to donate!"}, verdict.Reasons)
}

func TestCheckEligibility_BothChecksFail(t *testing.T) {
	e := newTestEngine()
	last := testNow.Add(-30 * 24 * time.Hour)

	verdict := e.CheckEligibility(models.BloodGroupABNeg, models.UserProfile{
		BloodGroup:       models.BloodGroupOPos,
		LastDonationDate: &last,
	})

	assert.False(t, verdict.BloodGroupMatch)
	assert.False(t, verdict.DonationGapMet)
	assert.False(t, verdict.Eligible)
	assert.Equal(t, []string{
		"Blood group mismatch. Required: AB-",
		"Must wait 60 more days since last donation",
	}, verdict.Reasons)
}

func TestSubmitResponse_Success(t *testing.T) {
	e := newTestEngine()
	catalog := []*models.EmergencyEvent{newEvent("EMG-001", models.UrgencyCritical, models.Location{})}

	updated, created, err := e.SubmitResponse(catalog, nil, "user-1", "EMG-001", models.ResponseResponded)

	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Same(t, created, updated[0])
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "EMG-001", created.EventID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, testNow, created.ResponseTime)
	assert.Equal(t, models.DerivedPendingConfirmation, created.DerivedStatus())
}

func TestSubmitResponse_DerivedStatusRecorded(t *testing.T) {
	e := newTestEngine()
	catalog := []*models.EmergencyEvent{newEvent("EMG-001", models.UrgencyCritical, models.Location{})}

	for _, status := range []models.ResponseStatus{models.ResponseNotAvailable, models.ResponseRemindLater} {
		_, created, err := e.SubmitResponse(catalog, nil, "user-1", "EMG-001", status)
		require.NoError(t, err)
		assert.Equal(t, models.DerivedRecorded, created.DerivedStatus())
	}
}

func TestSubmitResponse_DuplicateRejected(t *testing.T) {
	e := newTestEngine()
	catalog := []*models.EmergencyEvent{newEvent("EMG-001", models.UrgencyCritical, models.Location{})}

	responses, _, err := e.SubmitResponse(catalog, nil, "user-1", "EMG-001", models.ResponseResponded)
	require.NoError(t, err)

	updated, created, err := e.SubmitResponse(catalog, responses, "user-1", "EMG-001", models.ResponseNotAvailable)

	require.ErrorIs(t, err, models.ErrDuplicateResponse)
	assert.Nil(t, updated)
	assert.Nil(t, created)
	assert.Len(t, responses, 1)
}

func TestSubmitResponse_OtherUserNotDuplicate(t *testing.T) {
	e := newTestEngine()
	catalog := []*models.EmergencyEvent{newEvent("EMG-001", models.UrgencyCritical, models.Location{})}
	existing := []*models.UserResponse{
		{ID: "r1", EventID: "EMG-001", UserID: "user-2", ResponseStatus: models.ResponseResponded},
	}

	updated, _, err := e.SubmitResponse(catalog, existing, "user-1", "EMG-001", models.ResponseRemindLater)

	require.NoError(t, err)
	assert.Len(t, updated, 2)
	assert.Len(t, existing, 1)
}

func TestSubmitResponse_EventNotFound(t *testing.T) {
	e := newTestEngine()
	catalog := []*models.EmergencyEvent{newEvent("EMG-001", models.UrgencyCritical, models.Location{})}

	_, _, err := e.SubmitResponse(catalog, nil, "user-1", "EMG-UNKNOWN", models.ResponseResponded)

	require.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestSubmitResponse_InvalidStatus(t *testing.T) {
	e := newTestEngine()
	catalog := []*models.EmergencyEvent{newEvent("EMG-001", models.UrgencyCritical, models.Location{})}

	_, _, err := e.SubmitResponse(catalog, nil, "user-1", "EMG-001", models.ResponseStatus("MAYBE"))

	require.ErrorIs(t, err, models.ErrInvalidResponseStatus)
}
