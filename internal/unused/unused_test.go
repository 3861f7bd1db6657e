package unused

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/assetsort/internal/content"
	"github.com/backmassage/assetsort/internal/content/contenttest"
)

func scanProject(t *testing.T) (*contenttest.Project, *content.Store) {
	p := contenttest.New(t)
	p.Binary("Game/Models/rock.fbx", "mesh-rock")
	p.Binary("Game/Models/old.fbx", "mesh-old")
	p.Binary("Game/Other/old.fbx", "mesh-old2")
	p.Binary("Game/Models/crate.obj", "mesh-crate")
	p.Binary("Game/Textures/t.png", "tex-t")
	p.Binary("Game/Textures/old.tga", "tex-old")
	p.Binary("Game/Textures/ui.gif", "gif-ui")
	p.Binary("Game/Fonts/title.ttf", "font-title")
	p.Material("Game/Materials/rock.mat", "mat-rock", "tex-t")
	p.Material("Game/Materials/crate.mat", "mat-crate")
	p.Material("Game/Materials/old.mat", "mat-old", "tex-t")
	p.Scene("Game/Scenes/A.unity", "scene-a", contenttest.MeshNode("Rock", "mesh-rock", "mat-rock"))
	p.Scene("Game/Prefabs/crate.prefab", "tpl-crate", contenttest.MeshNode("Crate", "mesh-crate", "mat-crate"))
	p.Binary("Outside/far.fbx", "mesh-far")
	return p, p.Open(content.Options{})
}

func TestScan(t *testing.T) {
	_, s := scanProject(t)
	r, err := Scan(s, "Game")
	require.NoError(t, err)

	assert.Equal(t, []string{"Game/Scenes/A.unity"}, r.Scenes)
	assert.Equal(t, []string{"Game/Models/old.fbx", "Game/Other/old.fbx"}, r.Models)
	assert.Equal(t, []string{"Game/Textures/old.tga"}, r.Textures, "t.png is used through rock.mat")
	assert.Equal(t, []string{"Game/Materials/old.mat"}, r.Materials)
	assert.Equal(t, 4, r.Total())
	assert.Equal(t, []string{
		"Game/Models/old.fbx", "Game/Other/old.fbx", "Game/Textures/old.tga", "Game/Materials/old.mat",
	}, r.All())

	_, err = Scan(s, "Missing")
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestScan_EveryResolvedDependencyIsUsed(t *testing.T) {
	p := contenttest.New(t)
	p.Binary("Game/Models/door.dae", "mesh-door")
	p.Binary("Game/Models/spare.glb", "mesh-spare")
	p.Binary("Game/Textures/photo.jpeg", "tex-photo")
	p.Binary("Game/Textures/bc.dds", "tex-bc")
	p.Binary("Game/Textures/spare.ktx2", "tex-spare")
	p.Material("Game/Materials/Wall.mat", "mat-wall", "tex-photo", "tex-bc")
	p.Scene("Game/Scenes/A.unity", "scene-a", contenttest.MeshNode("Door", "mesh-door", "mat-wall"))
	s := p.Open(content.Options{})

	r, err := Scan(s, "Game")
	require.NoError(t, err)
	assert.Equal(t, []string{"Game/Models/spare.glb"}, r.Models)
	assert.Equal(t, []string{"Game/Textures/spare.ktx2"}, r.Textures)
	assert.Empty(t, r.Materials)

	_, err = Quarantine(s, r.All(), "Game/_Unused")
	require.NoError(t, err)
	for _, live := range []string{"Game/Models/door.dae", "Game/Textures/photo.jpeg", "Game/Textures/bc.dds"} {
		assert.True(t, p.OnDisk(live), "%s stays in place", live)
	}
}

func TestIsIgnored(t *testing.T) {
	for p, want := range map[string]bool{
		"a/Title.TTF":        true,
		"a/x.shadergraph":    true,
		"a/rt.renderTexture": true,
		"a/data.asset":       true,
		"a/rock.fbx":         false,
		"a/rock.mat":         false,
	} {
		assert.Equal(t, want, IsIgnored(p), p)
	}
}

func TestExport(t *testing.T) {
	r := Report{
		Models:    []string{"Game/a.fbx"},
		Materials: []string{"Game/m1.mat", "Game/m2.mat"},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Export(&buf))
	assert.Equal(t,
		"=== Unused models ===\nGame/a.fbx\n\n"+
			"=== Unused textures ===\n\n"+
			"=== Unused materials ===\nGame/m1.mat\nGame/m2.mat\n",
		buf.String())
}

func TestExportFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "unused.txt")
	r := Report{Textures: []string{"Game/t.png"}}
	require.NoError(t, r.ExportFile(name))

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(b), "=== Unused textures ===\nGame/t.png\n")

	assert.Error(t, r.ExportFile(filepath.Join(t.TempDir(), "missing", "unused.txt")))
}

func TestQuarantine(t *testing.T) {
	p, s := scanProject(t)
	r, err := Scan(s, "Game")
	require.NoError(t, err)

	moved, err := Quarantine(s, r.All(), "Game/_QUARANTINE")
	require.NoError(t, err)
	assert.Equal(t, 4, moved)

	assert.Equal(t, []string{
		"Game/_QUARANTINE/old - dup1.fbx",
		"Game/_QUARANTINE/old.fbx",
		"Game/_QUARANTINE/old.mat",
		"Game/_QUARANTINE/old.tga",
	}, s.ItemsIn("Game/_QUARANTINE"))
	assert.Equal(t, "Game/_QUARANTINE/old.fbx", s.IDToPath("mesh-old"))
	assert.True(t, p.OnDisk("Game/_QUARANTINE/old - dup1.fbx.meta"))
	assert.Equal(t, "Game/Textures/t.png", s.IDToPath("tex-t"))

	// Quarantined assets are still unused; a second pass leaves them alone.
	r, err = Scan(s, "Game")
	require.NoError(t, err)
	moved, err = Quarantine(s, r.All(), "Game/_QUARANTINE")
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestQuarantine_Failures(t *testing.T) {
	_, s := scanProject(t)

	moved, err := Quarantine(s, []string{"Game/Models/gone.fbx", "Game/Models/old.fbx"}, "Game/_QUARANTINE")
	assert.Equal(t, 1, moved)
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrNotFound))

	_, err = Quarantine(s, []string{"Game/Models/old.fbx"}, "Nope/_QUARANTINE")
	assert.ErrorIs(t, err, content.ErrFolderNotFound)
}
