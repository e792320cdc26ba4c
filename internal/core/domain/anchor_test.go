package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAnchorQueryValidate(t *testing.T) {
	uni := uuid.New()
	campus := uuid.New()
	point := Point{Lon: 39.2, Lat: -6.8}

	assert.NoError(t, AnchorQuery{UniversityID: &uni, RadiusKm: 5}.Validate())
	assert.NoError(t, AnchorQuery{CampusID: &campus, RadiusKm: 1}.Validate())
	assert.NoError(t, AnchorQuery{Point: &point, RadiusKm: 2.5}.Validate())

	assert.Contains(t, fieldErrors(t, AnchorQuery{RadiusKm: 5}.Validate()), "university_id")
	assert.Contains(t, fieldErrors(t, AnchorQuery{UniversityID: &uni, CampusID: &campus, RadiusKm: 5}.Validate()), "university_id")
	assert.Contains(t, fieldErrors(t, AnchorQuery{UniversityID: &uni, RadiusKm: 0}.Validate()), "distance")

	bad := Point{Lon: 200, Lat: 0}
	assert.Contains(t, fieldErrors(t, AnchorQuery{Point: &bad, RadiusKm: 5}.Validate()), "location.lon")
}
