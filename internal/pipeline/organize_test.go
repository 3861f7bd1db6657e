package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/assetsort/internal/check"
	"github.com/backmassage/assetsort/internal/content"
	"github.com/backmassage/assetsort/internal/content/contenttest"
)

type recLogger struct {
	success []string
	warn    []string
}

func (l *recLogger) Info(string, ...interface{}) {}
func (l *recLogger) Success(f string, a ...interface{}) {
	l.success = append(l.success, fmt.Sprintf(f, a...))
}
func (l *recLogger) Warn(f string, a ...interface{}) {
	l.warn = append(l.warn, fmt.Sprintf(f, a...))
}
func (l *recLogger) Error(string, ...interface{})       {}
func (l *recLogger) Debug(bool, string, ...interface{}) {}

// twoSceneProject is edited in scenes A and B while C and D stay closed.
// The rock mesh is drawn by A and by C only; both materials are drawn by C
// and D; texture t is used by both materials.
func twoSceneProject(t *testing.T) *contenttest.Project {
	p := contenttest.New(t)
	p.Binary("Game/Models/rock.fbx", "mesh-m")
	p.Binary("Game/Models/tree.fbx", "mesh-n")
	p.Binary("Game/Models/bush.fbx", "mesh-x")
	p.Binary("Game/Textures/t.png", "tex-t")
	p.Binary("Game/Textures/bark.png", "tex-bark")
	p.Material("Game/Materials/rock.mat", "mat-m", "tex-t")
	p.Material("Game/Materials/tree.mat", "mat-n", "tex-t", "tex-bark")
	p.Scene("Game/Scenes/A.unity", "scene-a", contenttest.MeshNode("Rock", "mesh-m", "mat-m"))
	p.Scene("Game/Scenes/B.unity", "scene-b", contenttest.MeshNode("Tree", "mesh-n", "mat-n"))
	p.Scene("Game/Scenes/C.unity", "scene-c",
		contenttest.MeshNode("Rock", "mesh-m", "mat-m"),
		contenttest.MeshNode("Hedge", "mesh-x", "mat-n"))
	p.Scene("Game/Scenes/D.unity", "scene-d",
		contenttest.MeshNode("Bush", "mesh-x", "mat-m", "mat-n"))
	return p
}

func organizeOpts(log Logger) OrganizeOptions {
	return OrganizeOptions{
		Root:   "game/",
		Scenes: []string{"Game/Scenes/A.unity", "game/scenes/b.UNITY", "Game/Scenes/A.unity"},
		Log:    log,
	}
}

func TestOrganize_TwoActiveScenes(t *testing.T) {
	p := twoSceneProject(t)
	s := p.Open(content.Options{})

	res, err := Organize(context.Background(), s, organizeOpts(nil))
	require.NoError(t, err)

	want := map[string]string{
		"mesh-m":   "Game/_3D/A/rock/rock.fbx",
		"mesh-n":   "Game/_3D/A/tree/tree.fbx",
		"mat-m":    "Game/_3D/COMMON/Materials/rock.mat",
		"mat-n":    "Game/_3D/COMMON/Materials/tree/tree.mat",
		"tex-bark": "Game/_3D/COMMON/Materials/tree/bark.png",
		"tex-t":    "Game/_3D/COMMON/Textures/t.png",
		"mesh-x":   "Game/Models/bush.fbx",
	}
	for id, path := range want {
		assert.Equal(t, path, s.IDToPath(id), id)
		assert.True(t, p.OnDisk(path), path)
		assert.True(t, p.OnDisk(path+content.MetaSuffix), path)
	}

	assert.Equal(t, "Game", res.Root)
	assert.Equal(t, "A", res.Scene)
	assert.Equal(t, 2, res.Scenes)
	assert.Equal(t, 2, res.Meshes)
	assert.Equal(t, 2, res.Materials)
	assert.Equal(t, 6, res.Moved)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 2, res.LocalMeshes)
	assert.Equal(t, 2, res.CommonMaterials)
	assert.Positive(t, res.BytesMoved)

	assert.Equal(t, 2, res.Reclaim.Deleted)
	assert.False(t, s.FolderExists("Game/Materials"))
	assert.False(t, s.FolderExists("Game/Textures"))
	assert.True(t, s.FolderExists("Game/Models"))
	assert.True(t, s.FolderExists("Game/Scenes"))
}

func TestOrganize_Idempotent(t *testing.T) {
	p := twoSceneProject(t)
	_, err := Organize(context.Background(), p.Open(content.Options{}), organizeOpts(nil))
	require.NoError(t, err)

	// A fresh store sees only what reached the disk.
	log := &recLogger{}
	res, err := Organize(context.Background(), p.Open(content.Options{}), organizeOpts(log))
	require.NoError(t, err)
	assert.Zero(t, res.Moves())
	assert.Zero(t, res.Failed)
	assert.Zero(t, res.Reclaim.Deleted)
	assert.Zero(t, res.FoldersCreated)
	assert.Equal(t, []string{"Already organized"}, log.success)
}

func TestOrganize_DryRunLeavesDiskUntouched(t *testing.T) {
	p := twoSceneProject(t)
	s := p.Open(content.Options{DryRun: true})

	opts := organizeOpts(nil)
	opts.DryRun = true
	res, err := Organize(context.Background(), s, opts)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Moved)
	assert.Equal(t, "Game/_3D/A/rock/rock.fbx", s.IDToPath("mesh-m"))
	assert.True(t, p.OnDisk("Game/Models/rock.fbx"))
	assert.True(t, p.OnDisk("Game/Materials/tree.mat"))
	assert.False(t, p.OnDisk("Game/_3D"))
	assert.True(t, p.OnDisk("Game/Textures"))
}

func TestOrganize_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts OrganizeOptions
		want error
	}{
		{"missing root", OrganizeOptions{Root: "Nope", Scenes: []string{"Game/Scenes/A.unity"}}, check.ErrRootNotFound},
		{"no scenes", OrganizeOptions{Root: "Game"}, check.ErrNoScenes},
		{"missing scene", OrganizeOptions{Root: "Game", Scenes: []string{"Game/Scenes/Z.unity"}}, check.ErrSceneNotFound},
		{"material as scene", OrganizeOptions{Root: "Game", Scenes: []string{"Game/Materials/rock.mat"}}, check.ErrNotAScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := twoSceneProject(t)
			s := p.Open(content.Options{})
			_, err := Organize(context.Background(), s, tt.opts)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, "Game/Models/rock.fbx", s.IDToPath("mesh-m"))
			assert.False(t, s.FolderExists("Game/_3D"))
		})
	}
}

func TestOrganize_CancelledBeforeStart(t *testing.T) {
	p := twoSceneProject(t)
	s := p.Open(content.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Organize(ctx, s, organizeOpts(nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "Game/Models/rock.fbx", s.IDToPath("mesh-m"))
}

func TestResolveTargets(t *testing.T) {
	s := twoSceneProject(t).Open(content.Options{})
	root, scenes := resolveTargets(s, "GAME", []string{"game/scenes/b.unity", "Game/Scenes/Missing.unity", "Game/Scenes/B.unity"})
	assert.Equal(t, "Game", root)
	assert.Equal(t, []string{"Game/Scenes/B.unity", "Game/Scenes/Missing.unity"}, scenes)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, distinct([]string{"c", "a"}, []string{"b", "a"}))
	assert.Empty(t, distinct())
}
