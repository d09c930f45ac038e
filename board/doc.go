// Package board places component solids on a uniform grid and composes them
// into one scene.
//
// # Reading Guide
//
// Start with these files:
//   - builder.go: the Builder contract every component kind satisfies
//   - placer.go: the placement transform (rotate, mirror, re-anchor, translate)
//   - scene.go: ordered placements composed into one solid
//
// # Architecture
//
// The board package defines the contract and the placement algorithm; the
// implementations live in sub-packages:
//   - board/components/: the closed set of component builders
//   - board/cache/: the cached BuildManager with its on-disk store and manifest
//   - board/trace/: placement trace recording
//
// # Key Interfaces
//
//   - Builder: builds a canonical-frame solid, names it with a cache key, and
//     reports the anchor offset for a side and rotation
//   - BuildManager: turns a Builder into a solid the caller owns
package board
