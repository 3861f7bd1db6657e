package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"a/rock.fbx", KindMesh},
		{"a/rock.OBJ", KindMesh},
		{"a/House.prefab", KindTemplate},
		{"a/Brick.mat", KindMaterial},
		{"a/brick.png", KindTexture},
		{"a/brick.KTX2", KindTexture},
		{"a/anim.gif", KindOther},
		{"a/Main.scene", KindScene},
		{"a/Main.unity", KindScene},
		{"a/Arial.ttf", KindIgnored},
		{"a/font.fnt", KindIgnored},
		{"a/shader.shader", KindOther},
		{"a/noext", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromPath(tt.path))
		})
	}
}

func TestExtractRefs(t *testing.T) {
	doc := []byte(`
name: Brick
textures:
  _MainTex: {fileID: 2800000, guid: aaa, type: 3}
  _BumpMap: {fileID: 2800000, guid: bbb, type: 3}
  _Again: {guid: aaa}
nested:
  - list:
      - {guid: ccc}
  - guid: ""
`)
	refs, err := extractRefs(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, refs)

	_, err = extractRefs([]byte("a: [unterminated"))
	assert.Error(t, err)
}

func TestParseMeta(t *testing.T) {
	id, err := parseMeta([]byte("fileFormatVersion: 2\nguid: 0123abc\n"))
	require.NoError(t, err)
	assert.Equal(t, "0123abc", id)

	_, err = parseMeta([]byte("fileFormatVersion: 2\n"))
	assert.ErrorIs(t, err, errNoGUID)

	b, err := encodeMeta("xyz")
	require.NoError(t, err)
	id, err = parseMeta(b)
	require.NoError(t, err)
	assert.Equal(t, "xyz", id)
}

func TestNewIDIsUnique(t *testing.T) {
	a, b := newID(), newID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 26)
}
