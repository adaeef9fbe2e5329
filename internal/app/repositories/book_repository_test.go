package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePattern(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLikePattern("100%"))
	assert.Equal(t, `snake\_case`, escapeLikePattern("snake_case"))
	assert.Equal(t, `back\\slash`, escapeLikePattern(`back\slash`))
	assert.Equal(t, "The Dispossessed", escapeLikePattern("The Dispossessed"))
	assert.Equal(t, `\%\_\\`, escapeLikePattern(`%_\`))
}
