package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/assetsort/internal/content"
	"github.com/backmassage/assetsort/internal/content/contenttest"
)

type nopLog struct{}

func (nopLog) Warn(string, ...interface{})        {}
func (nopLog) Debug(bool, string, ...interface{}) {}

func TestNewLayout(t *testing.T) {
	l := NewLayout("Assets/Game/", "Level: 1", DefaultNames())

	assert.Equal(t, "Assets/Game", l.Root)
	assert.Equal(t, "Level_ 1", l.Scene)
	assert.Equal(t, "Assets/Game/_3D/COMMON/Objects", l.CommonObjects)
	assert.Equal(t, "Assets/Game/_3D/COMMON/Materials", l.CommonMaterials)
	assert.Equal(t, "Assets/Game/_3D/COMMON/Textures", l.CommonTextures)
	assert.Equal(t, "Assets/Game/_3D/Level_ 1", l.Scene3D)
	assert.Equal(t, "Assets/Game/_Prefabs/Level_ 1", l.ScenePrefabs)
	assert.Equal(t, "Assets/Game/_Prefabs/COMMON", l.CommonPrefabs)
	assert.Len(t, l.Protected(), 10)
}

func TestNewLayout_CustomNames(t *testing.T) {
	n := Names{Base3D: "Modelos", BasePrefabs: "Prefabs", Common: "COMUN", Objects: "Objetos", Materials: "Materiales", Textures: "Texturas"}
	l := NewLayout("Root", "Town", n)
	assert.Equal(t, "Root/Modelos/COMUN/Objetos", l.CommonObjects)
	assert.Equal(t, "Root/Prefabs/Town", l.ScenePrefabs)
}

func TestLayoutTarget(t *testing.T) {
	l := NewLayout("R", "Town", DefaultNames())
	tests := []struct {
		name   string
		kind   content.Kind
		common bool
		owner  string
		want   string
	}{
		{"common mesh", content.KindMesh, true, "rock", "R/_3D/COMMON/Objects"},
		{"local mesh", content.KindMesh, false, "rock?", "R/_3D/Town/rock_"},
		{"common template", content.KindTemplate, true, "House", "R/_Prefabs/COMMON"},
		{"local template", content.KindTemplate, false, "House", "R/_Prefabs/Town"},
		{"common material", content.KindMaterial, true, "Brick", "R/_3D/COMMON/Materials/Brick"},
		{"local material", content.KindMaterial, false, "Brick", ""},
		{"shared texture", content.KindTexture, true, "", "R/_3D/COMMON/Textures"},
		{"other", content.KindOther, true, "x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Target(tt.kind, tt.common, tt.owner))
		})
	}
	assert.Equal(t, "R/_3D/Town/rock/Brick", l.MaterialDir("R/_3D/Town/rock", "Brick"))
}

func TestEnsure_CreatesParentsFirst(t *testing.T) {
	p := contenttest.New(t)
	p.Folder("R")
	s := p.Open(content.Options{})
	pl := New(s, NewLayout("R", "Town", DefaultNames()), nopLog{}, false)

	require.NoError(t, pl.Ensure("R/_3D/COMMON/Materials/Brick"))
	for _, d := range []string{"R/_3D", "R/_3D/COMMON", "R/_3D/COMMON/Materials", "R/_3D/COMMON/Materials/Brick"} {
		assert.True(t, s.FolderExists(d), d)
		assert.True(t, p.OnDisk(d), d)
	}
	assert.Equal(t, 4, pl.Created())

	require.NoError(t, pl.Ensure("R/_3D/COMMON/Materials/Brick"))
	assert.Equal(t, 4, pl.Created(), "existing folders are left alone")
}

func TestEnsure_BlockedByFile(t *testing.T) {
	p := contenttest.New(t)
	p.Binary("R/_3D", "file-in-the-way")
	s := p.Open(content.Options{})
	pl := New(s, NewLayout("R", "Town", DefaultNames()), nopLog{}, false)

	err := pl.Ensure("R/_3D/Town")
	require.Error(t, err)
	assert.ErrorIs(t, err, content.ErrExists)
}

func TestReclaim(t *testing.T) {
	p := contenttest.New(t)
	p.Folder("R/_3D/COMMON/Objects")
	p.Folder("R/_3D/COMMON/Textures")
	p.Folder("R/Old/Deep/Deeper")
	p.Folder("R/Old/Empty")
	p.Binary("R/Keep/rock.fbx", "rock")
	p.Folder("Outside/Empty")
	s := p.Open(content.Options{})
	pl := New(s, NewLayout("R", "Town", DefaultNames()), nopLog{}, false)

	st := pl.Reclaim(0)
	assert.Equal(t, 4, st.Deleted)
	assert.False(t, st.HitCeiling)
	assert.Equal(t, 2, st.Passes, "second pass confirms the fixed point")

	for _, gone := range []string{"R/Old", "R/Old/Deep", "R/Old/Deep/Deeper", "R/Old/Empty"} {
		assert.False(t, s.FolderExists(gone), gone)
	}
	for _, kept := range []string{"R", "R/_3D", "R/_3D/COMMON", "R/_3D/COMMON/Objects", "R/_3D/COMMON/Textures", "R/Keep", "Outside/Empty"} {
		assert.True(t, s.FolderExists(kept), kept)
	}

	again := pl.Reclaim(0)
	assert.Zero(t, again.Deleted)
}

func TestReclaim_KeepsEmptyRoot(t *testing.T) {
	p := contenttest.New(t)
	p.Folder("Game/Old/Deep")
	s := p.Open(content.Options{})
	pl := New(s, NewLayout("game", "Town", DefaultNames()), nopLog{}, false)

	st := pl.Reclaim(0)
	assert.Equal(t, 2, st.Deleted)
	assert.True(t, s.FolderExists("Game"), "the root is never reclaimed, whatever its spelling")
	assert.Equal(t, []string{"Game"}, s.ListFolders("Game"))
}

func TestReclaim_Ceiling(t *testing.T) {
	p := contenttest.New(t)
	p.Folder("R/A/B/C")
	s := p.Open(content.Options{})
	pl := New(s, NewLayout("R", "Town", DefaultNames()), nopLog{}, false)

	st := pl.Reclaim(1)
	assert.True(t, st.HitCeiling)
	assert.Equal(t, 1, st.Passes)
	assert.Equal(t, 3, st.Deleted, "deepest-first clears a chain in one pass")
}
