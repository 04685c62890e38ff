// Package core defines the domain model shared by the Enterprise Search plugin.
//
// # Overview
//
// The core package provides:
//   - Plugin descriptors for the three applications (overview, App Search,
//     Workplace Search) and the catalogue metadata that goes with them
//   - ExternalURL, the helper that builds links into the Enterprise Search
//     deployment
//   - ApplicationData, the single state holder shared by every mounted view
//
// # Shared State
//
// ApplicationData is created once and handed to views by reference. It is
// only mutated through its methods so the invariants hold:
//  1. The external URL is always set; it is replaced, never merged
//  2. Remote fields are merged key by key, later values win
//  3. The error flag only records that a fetch failed
package core
