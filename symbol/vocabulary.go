// SPDX-License-Identifier: MIT
//
// File: vocabulary.go
// Role: string interning for symbol IDs.
// Concurrency:
//   - All methods are safe for concurrent use (single sync.RWMutex).
//   - Readers (Lookup/String/Size) take the read lock; Add takes the write lock
//     only when the token is new.
// Determinism:
//   - IDs are assigned in first-Add order starting from FirstUser.

package symbol

import (
	"fmt"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Vocabulary interns token strings into IDs. Tokens are normalized to
// Unicode NFC first, so visually identical spellings share one ID.
type Vocabulary struct {
	mu     sync.RWMutex
	ids    map[string]ID
	tokens []string // tokens[id] for id >= 0
}

// NewVocabulary returns a vocabulary pre-populated with the reserved symbols.
// Complexity: O(1).
func NewVocabulary() *Vocabulary {
	v := &Vocabulary{
		ids:    make(map[string]ID, 64),
		tokens: make([]string, 0, 64),
	}
	for _, s := range []string{EpsilonString, RhoString, PhiString, SigmaString} {
		v.ids[s] = ID(len(v.tokens))
		v.tokens = append(v.tokens, s)
	}

	return v
}

// Add interns token and returns its ID. Adding an existing token is a no-op
// returning the existing ID.
// Complexity: O(len(token)) amortized.
func (v *Vocabulary) Add(token string) ID {
	key := norm.NFC.String(token)

	// Fast path under the read lock.
	v.mu.RLock()
	id, ok := v.ids[key]
	v.mu.RUnlock()
	if ok {
		return id
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// Re-check: another writer may have interned it meanwhile.
	if id, ok = v.ids[key]; ok {
		return id
	}
	id = ID(len(v.tokens))
	v.ids[key] = id
	v.tokens = append(v.tokens, key)

	return id
}

// Lookup returns the ID of token without interning it.
func (v *Vocabulary) Lookup(token string) (ID, bool) {
	key := norm.NFC.String(token)
	v.mu.RLock()
	defer v.mu.RUnlock()
	id, ok := v.ids[key]

	return id, ok
}

// String returns the token for id. Unknown ids render as "#<id>".
func (v *Vocabulary) String(id ID) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if id >= 0 && int(id) < len(v.tokens) {
		return v.tokens[id]
	}

	return fmt.Sprintf("#%d", id)
}

// Size returns the number of interned tokens including the reserved ones.
func (v *Vocabulary) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.tokens)
}
