// Package processor contains the main translation workflow logic,
// coordinating between the CLI flags, the translation provider, the
// usage tracker, the history log and the local cache.
package processor
