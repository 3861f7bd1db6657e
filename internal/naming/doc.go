// Package naming provides the name helpers shared by the organizer and the
// unused-resource scanner.
//
// Functions:
//   - UniquePath(requested, taken) → string
//     Collision-safe destination: appends " - dupN" before the extension
//     until the candidate is free. Never overwrites.
//   - TrimDup(stem) → string
//     Inverse of the UniquePath suffix, for deriving stable folder names.
//   - SafeName(name) → string
//     Folder name derived from an asset name (NFC, invalid chars → '_').
//   - Stem(path) → string
//     File name without directory or extension.
package naming
