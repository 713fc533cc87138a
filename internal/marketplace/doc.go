// Package marketplace models a plugin marketplace tree and keeps each
// plugin's persisted version locations in agreement.
//
// A plugin's version is recorded in three places: its plugin.json manifest
// (the canonical read path), the metadata.version field in each skill's
// SKILL.md front matter, and its record in the shared
// .claude-plugin/marketplace.json registry. The Synchronizer writes a new
// version to all of them and then verifies, by re-reading, that they hold
// byte-identical version strings. There is no cross-file transaction: a
// post-write mismatch is surfaced as a fatal ConsistencyError rather than
// rolled back.
package marketplace
