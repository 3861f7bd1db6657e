// Package content is the content graph reader: an index over a project
// directory whose assets carry YAML ".meta" sidecars holding stable
// identifiers. It answers identifier/path/kind/dependency queries and performs
// the folder and move mutations the organizer needs.
//
// Layout on disk:
//
//	Assets/Game/rock.fbx          the asset
//	Assets/Game/rock.fbx.meta     guid: 01HZX...
//
// Text documents (scenes, templates, materials) reference other assets with
// YAML mappings carrying a "guid" key. Every query is served from the index
// built by [Open], so a dry-run store can simulate moves without touching disk.
package content
