package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trimsync/barbershop-api/internal/validators"
)

// Only shapes that fail before any DNS lookup are asserted here; resolving
// real domains would make the test depend on the network.
func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	assert.False(t, validators.IsEmailDomainValid(""))
	assert.False(t, validators.IsEmailDomainValid("no-at-sign"))
	assert.False(t, validators.IsEmailDomainValid("trailing@"))
	assert.False(t, validators.IsEmailDomainValid("@no-local-part.com"))
	assert.False(t, validators.IsEmailDomainValid("user@bad domain.com"))
}
