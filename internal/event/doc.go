// Package event provides a small topic-based publish/subscribe bus.
//
// The bus carries state-change notifications from the capture, recording
// and playback components to the presentation layer: display text for
// the key overlay, recording and playback state flips, and countdown
// ticks. Publishing never blocks; a subscriber that falls behind loses
// the oldest undelivered message rather than stalling the publisher,
// which may be the hook callback.
package event
