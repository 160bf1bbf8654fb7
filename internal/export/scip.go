package export

import (
	"fmt"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

// MarshalSCIP encodes the snapshot as a SCIP index: one document per file,
// one symbol per extracted class, struct, function, and global variable.
// Include dependencies become reference relationships from the including
// document's file symbol to the included file's symbol.
func (s *Snapshot) MarshalSCIP() ([]byte, error) {
	index := &scippb.Index{
		Metadata: &scippb.Metadata{
			Version: scippb.ProtocolVersion_UnspecifiedProtocolVersion,
			ToolInfo: &scippb.ToolInfo{
				Name:    s.Metadata.Tool,
				Version: s.Metadata.Version,
			},
			ProjectRoot:          "file://" + s.Metadata.Root,
			TextDocumentEncoding: scippb.TextEncoding_UTF8,
		},
	}

	// Include relationships keyed by source node.
	includes := make(map[string][]*scippb.Relationship)
	for _, e := range s.Edges {
		includes[e.Source] = append(includes[e.Source], &scippb.Relationship{
			Symbol:      fileSymbol(e.Target),
			IsReference: true,
		})
	}

	for _, n := range s.Nodes {
		doc := &scippb.Document{
			Language:     "cpp",
			RelativePath: n.Path,
		}

		doc.Symbols = append(doc.Symbols, &scippb.SymbolInformation{
			Symbol:        fileSymbol(n.ID),
			DisplayName:   n.Name,
			Kind:          scippb.SymbolInformation_File,
			Relationships: includes[n.ID],
		})

		for _, name := range n.Classes {
			doc.Symbols = append(doc.Symbols, symbolInfo(n.Path, name, "#", scippb.SymbolInformation_Class))
		}
		for _, name := range n.Structs {
			doc.Symbols = append(doc.Symbols, symbolInfo(n.Path, name, "#", scippb.SymbolInformation_Struct))
		}
		for _, name := range n.Functions {
			doc.Symbols = append(doc.Symbols, symbolInfo(n.Path, name, "().", scippb.SymbolInformation_Function))
		}
		for _, name := range n.GlobalVars {
			doc.Symbols = append(doc.Symbols, symbolInfo(n.Path, name, ".", scippb.SymbolInformation_Variable))
		}

		index.Documents = append(index.Documents, doc)
	}

	data, err := proto.Marshal(index)
	if err != nil {
		return nil, fmt.Errorf("marshal scip index: %w", err)
	}
	return data, nil
}

// fileSymbol is the SCIP symbol for a file node itself.
func fileSymbol(id string) string {
	return fmt.Sprintf("cpp . . . `%s`/", id)
}

// symbolInfo builds symbol information for one extracted declaration. suffix
// follows SCIP descriptor conventions: "#" for types, "()." for functions,
// "." for terms.
func symbolInfo(path, name, suffix string, kind scippb.SymbolInformation_Kind) *scippb.SymbolInformation {
	return &scippb.SymbolInformation{
		Symbol:      fmt.Sprintf("cpp . . . `%s`/%s%s", path, name, suffix),
		DisplayName: name,
		Kind:        kind,
	}
}
