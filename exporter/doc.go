// Package exporter converts value graphs into compact programs that rebuild
// them.
//
// A program is a list of statements followed by one result expression:
//
//	h=hydrator();o1=h.restore("geo.Point",{"X":1,"Y":2});[o1,o1,h.restore("geo.Point",{"X":3,"Y":4})]
//
// Export approach:
//   - Scalars are written as literals
//   - A node reached once is written inline where it is used
//   - A node reached several times is bound to a name once and referenced
//   - A node on a cycle is bound to an empty placeholder first and populated
//     by later statements
//   - Records go through one shared restoration helper that writes their
//     fields directly instead of running any constructor
//
// Names come from package naming, so output only depends on the graph and
// its traversal order. Optimize then drops dead bindings and inlines
// single-use ones.
package exporter
