// Package layout positions a hierarchy inside a bounded rectangle.
//
// [Tidy] implements the Reingold-Tilford tidy tree drawing in the linear-time
// formulation by Buchheim, Jünger and Leipert. The drawing satisfies:
//
//   - Depth maps to the [hierarchy.Node.Tier] axis, evenly spaced from 0 at the
//     root to Size.Tier at the deepest visible level.
//   - Siblings keep their input order along the [hierarchy.Node.Breadth] axis
//     and never overlap; siblings are one unit apart, cousins two.
//   - A parent is centred over its children.
//   - The drawing is scaled to fill [0, Size.Breadth], leaving half a
//     separation unit of padding beyond the outermost nodes.
//
// Note the axis swap relative to the usual Cartesian convention: trees grow
// left to right, so breadth is vertical on screen and tier is horizontal.
//
// Tidy is deterministic. Laying out the same hierarchy with the same size
// always yields bit-identical positions, and positions from a previous pass
// are overwritten, never accumulated.
package layout
