package physics

// Snapshot is the read-only display-sink view published at every step
// boundary (spec.md §6). It is copy-on-publish: the slices are owned by
// the snapshot, not aliased into the live ParticleStore, so a renderer can
// hold one indefinitely without observing a half-updated field.
type Snapshot struct {
	N          int
	Positions  []Vec2
	Velocities []Vec2
	Densities  []float64
	Pressures  []float64

	Mode      Mode
	State     State
	ColorMode int
	Zoom      float64
}
