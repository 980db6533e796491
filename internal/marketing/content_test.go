package marketing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanding(t *testing.T) {
	p := Landing()

	assert.NotEmpty(t, p.Hero.Title)
	assert.Len(t, p.Features, 4)
	assert.Equal(t, "/login", p.CTA.ButtonHref)
	require.NotEmpty(t, p.Stats)

	for _, s := range p.Stats {
		var frames []int
		require.NoError(t, json.Unmarshal([]byte(s.Frames), &frames), s.Label)
		require.NotEmpty(t, frames)
		assert.Equal(t, s.Target, frames[len(frames)-1], s.Label)
		for _, v := range frames {
			assert.LessOrEqual(t, v, s.Target)
		}
	}
}
