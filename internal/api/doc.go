// Package api handles incoming HTTP requests for cards: it decodes and
// validates input, calls the card store, and writes response envelopes.
// Failures go through ClassifyError so clients only ever see fixed messages
// and validation issues.
package api
