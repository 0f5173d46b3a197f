// Package nodes provides the built-in Sequencer node catalog.
//
// Each node type is an exported [compiler.Descriptor] value grouped by
// concern: flow utilities, chain roots, placement, timing, visuals, audio,
// text and code. [All] lists every descriptor and [NewRegistry] returns a
// registry pre-loaded with them:
//
//	reg := nodes.NewRegistry()
//	out := compiler.New(reg).Compile(doc)
//	fmt.Println(out)
//
// Extensions may register additional descriptors (or replace built-in ones
// under the same type id) on the returned registry before compiling.
//
// # Families
//
// Roots anchor one of six families ([FamilyEffect], [FamilySound],
// [FamilyAnimation], [FamilyScrollingText], [FamilyCanvasPan],
// [FamilyCrosshair]). A child lists the families it may attach to; the
// compiler skips children attached under any other root.
//
// # Output conventions
//
// Descriptors read their config with per-field fallbacks inline and never
// consult Field defaults at compile time. Optional keyword arguments are
// tested in a fixed order and rendered as a trailing `{ key: value }` bag
// only when at least one applies. Numeric options are emitted only when
// they differ from their neutral value, except for the "presence means
// override" fields (opacity, duration, volume, moveSpeed, rotate, zIndex,
// scale, playbackRate, elevation) which are emitted whenever set to a
// finite number, zero included.
package nodes
