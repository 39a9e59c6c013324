package domain_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

// The validate tag cannot reference the constant, so guard against drift.
func TestNewTrip_MaxInviteesMatchesTag(t *testing.T) {
	field, ok := reflect.TypeOf(domain.NewTrip{}).FieldByName("EmailsToInvite")
	require.True(t, ok)

	assert.Contains(t, field.Tag.Get("validate"), fmt.Sprintf("max=%d,", domain.MaxInvitees))
}
