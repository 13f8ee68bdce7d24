// Package trie provides the dictionary index used by the boggle solver.
//
// A Trie stores every dictionary word as a chain of edges labelled by one
// rune each, starting at a single root node that represents the empty
// prefix. Nodes live in an arena and are addressed by NodeID, so a built
// trie is a flat slice that can be shared read-only across goroutines.
//
// Usage:
//
//	t, err := trie.FromWords([]string{"a", "an", "ant"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	n, ok := t.Child(t.Root(), 'a')
//	if ok {
//		word, terminal := t.Terminal(n) // "a", true
//	}
//
// Invariants:
//
// A path from the root spelling an inserted word ends at a terminal node.
// Interior nodes are terminal only when they spell another inserted word,
// so "a" and "an" coexist: the marker for "a" lives on an interior node of
// the path for "an". Nodes are never removed.
package trie
