// Package plan defines the 2D floor-plan model: wall segments, their
// endpoints, named shapes and the enclosure check that decides whether a
// shape gets a floor. Everything here is pure data and pure functions;
// meshes are produced by package tessellate.
package plan
