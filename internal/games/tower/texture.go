package tower

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tower/internal/games/tower/level"
)

// textureBucket is the width granularity of texture keys in world units.
const textureBucket = 24

// BucketWidth rounds a platform width up to the next texture bucket.
func BucketWidth(width float64) int {
	b := int(math.Ceil(width/textureBucket)) * textureBucket
	if b < textureBucket {
		return textureBucket
	}
	return b
}

type textureKey struct {
	typ    level.PlatformType
	bucket int
	height int
}

// TextureKeyCache memoizes the visual key of a platform so platforms of
// similar size share one pre-built glyph run.
type TextureKeyCache struct {
	keys map[textureKey]string
}

// NewTextureKeyCache creates an empty cache.
func NewTextureKeyCache() *TextureKeyCache {
	return &TextureKeyCache{keys: make(map[textureKey]string)}
}

// Key returns "<type>-<bucket>x<height>" for a platform of the given size.
func (c *TextureKeyCache) Key(t level.PlatformType, width, height float64) string {
	k := textureKey{typ: t, bucket: BucketWidth(width), height: int(math.Round(height))}
	if key, ok := c.keys[k]; ok {
		return key
	}
	key := fmt.Sprintf("%s-%dx%d", t, k.bucket, k.height)
	c.keys[k] = key
	return key
}

// Len returns the number of distinct keys issued.
func (c *TextureKeyCache) Len() int {
	return len(c.keys)
}
