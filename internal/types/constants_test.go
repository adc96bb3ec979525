package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterpartRole(t *testing.T) {
	assert.Equal(t, RoleClient, CounterpartRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, CounterpartRole(RoleClient))
	assert.Equal(t, RoleAdmin, CounterpartRole(""))
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, IsValidInquiryStatus(InquiryStatusInDiscussion))
	assert.False(t, IsValidInquiryStatus("archived"))

	assert.True(t, IsValidProjectStatus(ProjectStatusOnHold))
	assert.False(t, IsValidProjectStatus("cancelled"))

	assert.True(t, IsValidMilestoneStatus(MilestoneStatusNotStarted))
	assert.False(t, IsValidMilestoneStatus("almost_done"))

	assert.True(t, IsValidFileCategory(FileCategoryDeliverable))
	assert.False(t, IsValidFileCategory("misc"))
}

func TestMergeAllowedOrigins(t *testing.T) {
	merged := MergeAllowedOrigins(" https://app.example.com , https://www.example.com ")

	assert.Contains(t, merged, "http://localhost:3000")
	assert.Contains(t, merged, "https://app.example.com")
	assert.Contains(t, merged, "https://www.example.com")

	assert.Equal(t, defaultOrigins, MergeAllowedOrigins(""))
}
