package trie

import (
	"errors"
	"sort"
)

var (
	ErrEmptyWord = errors.New("empty word")
)

// NodeID addresses a node in the trie's arena.
type NodeID int32

// Root is the ID of the node representing the empty prefix.
const Root NodeID = 0

type node struct {
	children map[rune]NodeID
	terminal bool
	word     string
}

// Trie is a prefix tree over runes. The zero value is not usable; use New.
type Trie struct {
	nodes []node
	words int
}

// New creates a trie holding only the root node
func New() *Trie {
	return &Trie{nodes: []node{{}}}
}

// FromWords builds a trie from a word list. Duplicates collapse.
func FromWords(words []string) (*Trie, error) {
	t := New()
	for _, w := range words {
		if err := t.Insert(w); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Insert adds word to the trie. Inserting the same word twice is a no-op.
func (t *Trie) Insert(word string) error {
	if word == "" {
		return ErrEmptyWord
	}

	cur := Root
	for _, r := range word {
		next, ok := t.nodes[cur].children[r]
		if !ok {
			next = NodeID(len(t.nodes))
			t.nodes = append(t.nodes, node{})
			if t.nodes[cur].children == nil {
				t.nodes[cur].children = make(map[rune]NodeID, 1)
			}
			t.nodes[cur].children[r] = next
		}
		cur = next
	}

	if !t.nodes[cur].terminal {
		t.nodes[cur].terminal = true
		t.nodes[cur].word = word
		t.words++
	}
	return nil
}

// Root returns the root node ID
func (t *Trie) Root() NodeID {
	return Root
}

// Child returns the child of n along the edge labelled r, if one exists.
func (t *Trie) Child(n NodeID, r rune) (NodeID, bool) {
	next, ok := t.nodes[n].children[r]
	return next, ok
}

// Terminal reports whether n ends an inserted word, and which one.
func (t *Trie) Terminal(n NodeID) (string, bool) {
	nd := &t.nodes[n]
	return nd.word, nd.terminal
}

// HasChildren reports whether any edge leaves n.
func (t *Trie) HasChildren(n NodeID) bool {
	return len(t.nodes[n].children) > 0
}

// Contains reports whether word was inserted.
func (t *Trie) Contains(word string) bool {
	n, ok := t.walk(word)
	if !ok {
		return false
	}
	return t.nodes[n].terminal
}

// HasPrefix reports whether some inserted word starts with prefix.
// The empty prefix matches any non-empty trie.
func (t *Trie) HasPrefix(prefix string) bool {
	n, ok := t.walk(prefix)
	if !ok {
		return false
	}
	return n != Root || t.words > 0
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.words
}

// NodeCount returns the number of nodes including the root.
func (t *Trie) NodeCount() int {
	return len(t.nodes)
}

// Words returns every inserted word in sorted order.
func (t *Trie) Words() []string {
	out := make([]string, 0, t.words)
	for _, nd := range t.nodes {
		if nd.terminal {
			out = append(out, nd.word)
		}
	}
	sort.Strings(out)
	return out
}

func (t *Trie) walk(s string) (NodeID, bool) {
	cur := Root
	for _, r := range s {
		next, ok := t.nodes[cur].children[r]
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}
