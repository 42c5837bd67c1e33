// Package companion implements the link between the emulated watch and a
// companion ("phone") app.
//
// The watch considers itself connected while at least one companion session
// is open. Companions also feed the health store with step counts, standing
// in for the device's accelerometer.
//
// # Transport
//
// Sessions are WebSocket connections to the /companion endpoint carrying
// JSON text messages. The server pings every pingPeriod and drops sessions
// that miss a pong for pongWait.
//
// # Messages
//
// Companion to watch:
//
//	{"type":"hello","name":"pixel-7"}
//	{"type":"steps","count":120}                          // add 120 steps now
//	{"type":"steps","count":40,"at":"2024-03-03T09:05:00Z"}
//	{"type":"steps_total","count":5400}                   // replace today's total
//	{"type":"bye"}
//
// Watch to companion:
//
//	{"type":"ack","steps_today":5520}
//	{"type":"error","error":"unknown message type \"foo\""}
//
// # Discovery
//
// The server advertises itself over mDNS as _simplr._tcp in local. and the
// Scanner browses for it, so companions find the watch without configuration.
package companion
