// Package vim is the keystroke interpretation and action-composition
// engine: the registry of action descriptors, the incremental key
// matcher, the motion/operator/count/register composition algebra, and
// the per-session modal state machine.
//
// One Engine exists per buffer view. Keys arrive one at a time through
// HandleKey; each key either completes an action, extends a pending
// sequence, or discards an impossible one. Actions come in three kinds:
// Movements reposition the cursor (and supply operator ranges),
// Commands complete immediately, and Operators consume a range produced
// by a following motion, a doubled trigger, or the visual selection.
package vim
