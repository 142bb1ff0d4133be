package compiler

// symbolTable maps a logical output identity to the generated identifier
// (or expression) that represents it in emitted code. Keys are either a
// plain node id or a node-id-plus-suffix for nodes producing multiple
// named values, e.g. "<id>_entity_a" for one side of a collision pair.
//
// Bindings are added as nodes compile; an input resolves only if its
// producer compiled earlier in the chosen order.
type symbolTable struct {
	syms map[string]string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{syms: make(map[string]string)}
}

// bind associates a logical output key with a generated symbol.
func (t *symbolTable) bind(key, symbol string) {
	t.syms[key] = symbol
}

// lookup returns the symbol bound to the given key.
func (t *symbolTable) lookup(key string) (string, bool) {
	s, ok := t.syms[key]
	return s, ok
}

// sanitizeIdent converts a raw node id into a language-safe identifier
// fragment: every character outside [A-Za-z0-9_] becomes '_'. The same
// input always yields the same output, so every reference to one node id
// within a compile agrees on the identifier.
func sanitizeIdent(id string) string {
	out := make([]byte, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			out[i] = c
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
