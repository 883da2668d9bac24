// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

/*
Package orderedmap is a string-keyed map that remembers first-insertion
order: a real Go map for lookup, plus a parallel key slice for iteration
order, unlike a native Go map's unspecified iteration order.

Tuple entries use this ordering to keep key traversal ("Keys()"/"Items()")
deterministic and matching first-appearance order. Insertion order is
preserved across Set calls; overwriting an existing key updates its value
in place without moving it.
*/
package orderedmap
