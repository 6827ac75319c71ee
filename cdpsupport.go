// Package cdpsupport provides a support-chat service for Customer Data
// Platforms. It crawls the documentation sites of the supported platforms,
// caches the extracted page text, and answers questions by forwarding them,
// optionally with retrieved page excerpts, to a hosted language model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package cdpsupport
