package tokenizer

import "sync"

// tokenPool recycles *Token scratch values the same way attrMapPool recycles
// attribute-index maps: a handful of tag-builder call sites fill in a pooled
// Token's fields, copy the value out for emission, then return the pointer
// so the next tag reuses the allocation instead of growing a fresh one.
var tokenPool = sync.Pool{
	New: func() interface{} {
		return &Token{}
	},
}

// getToken retrieves a zeroed Token from the pool.
func getToken() *Token {
	return tokenPool.Get().(*Token)
}

// putToken clears tok and returns it to the pool. Safe to call with nil.
func putToken(tok *Token) {
	if tok == nil {
		return
	}
	*tok = Token{}
	tokenPool.Put(tok)
}
