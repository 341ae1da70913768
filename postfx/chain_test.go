package postfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfall/nocturne/render"
	"github.com/duskfall/nocturne/shader"
)

// A zero-sized chain allocates no GPU storage, so the lookup surface
// can be exercised without a GL context.
func TestChainEffectLookup(t *testing.T) {
	mgr := shader.NewManager(t.TempDir(), shader.WithHotReload(false))
	defer mgr.Close()

	c := NewChain(mgr, render.Pt(0, 0), 1)
	defer c.Destroy()

	require.NotNil(t, c.Framebuffer())
	assert.Nil(t, c.Effect("vignette"))

	c.effects = append(c.effects, &Effect{Name: "fade", Intensity: 1, Enabled: true})
	e := c.Effect("fade")
	require.NotNil(t, e)
	assert.Equal(t, "fade", e.Name)
	c.effects = nil
}

func TestChainAddMissingEffect(t *testing.T) {
	mgr := shader.NewManager(t.TempDir(), shader.WithHotReload(false))
	defer mgr.Close()

	c := NewChain(mgr, render.Pt(0, 0), 1)
	defer c.Destroy()

	_, err := c.Add("nope")
	var nf *shader.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Nil(t, c.Effect("nope"))
}
