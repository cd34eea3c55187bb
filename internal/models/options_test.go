package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOperationalAreaOffered(t *testing.T) {
	assert.True(t, IsOperationalAreaOffered(Known("dental"), "patient_records"))
	assert.False(t, IsOperationalAreaOffered(Known("technology"), "patient_records"))
	assert.True(t, IsOperationalAreaOffered(Other("Beekeeping"), "strategy"))
	assert.False(t, IsOperationalAreaOffered(Other("Beekeeping"), "pharmacy"))
	assert.False(t, IsOperationalAreaOffered(Known("mining"), "production"))
	assert.True(t, IsKnownOperationalArea("pharmacy"))
}
