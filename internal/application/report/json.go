package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/diillson/client-insights-go/internal/domain/entity"
)

const jsonIndent = "    "

// ExportJSON serializes the report as an indented JSON document whose keys keep
// their insertion order. Timestamps are rendered as RFC3339 strings.
func ExportJSON(r *entity.Report) ([]byte, error) {
	return EncodeDocument(ToDocument(r))
}

// ToDocument converts a report to its document form, the shape ParseJSON returns.
func ToDocument(r *entity.Report) *entity.Document {
	if r == nil {
		return entity.NewReport().Document()
	}
	return r.Document()
}

// EncodeDocument escreve um documento com a mesma indentação de ExportJSON, de modo que
// ParseJSON seguido de EncodeDocument reproduz o texto original byte a byte.
func EncodeDocument(doc *entity.Document) ([]byte, error) {
	compact, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("error encoding report document: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", jsonIndent); err != nil {
		return nil, fmt.Errorf("error indenting report document: %w", err)
	}
	return out.Bytes(), nil
}

// ParseJSON reads an exported document back, preserving key order and number literals.
func ParseJSON(data []byte) (*entity.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid report document")
	}
	return nodeFromResult(gjson.ParseBytes(data)), nil
}

func nodeFromResult(res gjson.Result) *entity.Node {
	switch res.Type {
	case gjson.True, gjson.False:
		return &entity.Node{Kind: entity.NodeBool, Raw: res.Raw}
	case gjson.Number:
		return &entity.Node{Kind: entity.NodeNumber, Raw: res.Raw}
	case gjson.String:
		return &entity.Node{Kind: entity.NodeString, Raw: res.Str}
	case gjson.JSON:
		if res.IsArray() {
			n := &entity.Node{Kind: entity.NodeArray, Items: []*entity.Node{}}
			res.ForEach(func(_, value gjson.Result) bool {
				n.Items = append(n.Items, nodeFromResult(value))
				return true
			})
			return n
		}
		n := &entity.Node{Kind: entity.NodeObject, Members: []entity.Member{}}
		res.ForEach(func(key, value gjson.Result) bool {
			n.Members = append(n.Members, entity.Member{Key: key.Str, Value: nodeFromResult(value)})
			return true
		})
		return n
	}
	return &entity.Node{Kind: entity.NodeNull}
}
