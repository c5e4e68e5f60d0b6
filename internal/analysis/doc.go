// Package analysis decides whether a previously generated comparison
// document still matches a requested franchise id-set, and drives document
// generation when it does not.
//
// Generating a comparison document is expensive, so every visit to the
// comparison view runs through the Reconciler: it reads the cached analysis
// for the bound lead (if any), compares canonical keys, and either returns
// the cached document untouched or invokes the Generator with the requested
// ids and an optional lead profile.
//
// The Reconciler never writes the cache back after generating; cache
// population is the caller's explicit decision (see the compare command's
// --save flag).
package analysis
