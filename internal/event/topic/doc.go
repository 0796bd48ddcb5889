// Package topic names the events published on the drag engine's bus.
//
// Topics are dot-separated:
//
//	drag.started
//	traverse.committed
//	config.reloaded
//
// Subscriptions may use wildcards. "*" matches exactly one segment and "**"
// matches any number of segments, including none:
//
//	drag.*      matches drag.started and drag.ended
//	**.ended    matches drag.ended and traverse.ended
//	**          matches everything
package topic
