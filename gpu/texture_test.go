package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AdoptTexture and Release are the ownership-transfer protocol for
// handles crossing the package boundary: an asset loader handing a
// GL-created handle in, or a detached framebuffer texture handing one
// out. Neither touches GL state.
func TestTextureOwnershipTransfer(t *testing.T) {
	tex := AdoptTexture(9, 64, 32)
	assert.Equal(t, uint32(9), tex.ID())
	assert.Equal(t, 64, tex.Width())
	assert.Equal(t, 32, tex.Height())

	id := tex.Release()
	assert.Equal(t, uint32(9), id)
	assert.Equal(t, uint32(0), tex.ID(), "released texture stops tracking the handle")

	// With no handle left, Destroy must be a no-op.
	tex.Destroy()
	assert.Equal(t, uint32(0), tex.ID())

	// The adopting side owns it from here.
	again := AdoptTexture(id, 64, 32)
	assert.Equal(t, uint32(9), again.ID())
	assert.Equal(t, uint32(0), AdoptTexture(0, 0, 0).Release())
}
