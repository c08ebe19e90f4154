// Package document loads YAML documents as value graphs.
//
// Anchors and aliases carry identity: every alias of an anchored collection
// yields the same node, so the exporter sees it as shared. A mapping with a
// local tag such as !geo.Point becomes a record of that type; its shape comes
// from the registry when the type is registered there, and is inferred from
// the keys seen in the document otherwise.
//
// Example input:
//
//	origin: &o !geo.Point {X: 0, Y: 0}
//	path: [*o, !geo.Point {X: 1, Y: 2}, *o]
package document
