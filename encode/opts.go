package encode

type EncodeOption func(*EncState)

// Depth limits how many levels below the encoded node are written; 0
// means no limit.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}

// EncodeSpans adds the source span of every node.
func EncodeSpans(v bool) EncodeOption {
	return func(es *EncState) { es.spans = v }
}

// EncodeDiagnostics appends the tree's diagnostics as system messages
// when the document root is encoded.
func EncodeDiagnostics(v bool) EncodeOption {
	return func(es *EncState) { es.diagnostics = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
