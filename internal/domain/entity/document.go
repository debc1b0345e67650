package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeKind identifica o tipo de um nó do documento JSON.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeBool
	NodeNumber
	NodeString
	NodeArray
	NodeObject
)

// Member is one key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is an order-preserving JSON value. Numbers keep their literal text so that a
// parsed document re-encodes byte for byte.
type Node struct {
	Kind    NodeKind
	Raw     string // número literal, texto da string ou "true"/"false"
	Items   []*Node
	Members []Member
}

// Document is the serializable form of a Report.
type Document = Node

// Field returns the member value under key for object nodes.
func (n *Node) Field(key string) (*Node, bool) {
	if n == nil || n.Kind != NodeObject {
		return nil, false
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON escreve o nó de forma compacta, preservando a ordem das chaves.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case NodeNull:
		buf.WriteString("null")
	case NodeBool, NodeNumber:
		buf.WriteString(n.Raw)
	case NodeString:
		b, err := json.Marshal(n.Raw)
		if err != nil {
			return err
		}
		buf.Write(b)
	case NodeArray:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case NodeObject:
		buf.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown node kind %d", n.Kind)
	}
	return nil
}

func objectNode() *Node { return &Node{Kind: NodeObject, Members: []Member{}} }

func (n *Node) add(key string, v *Node) {
	n.Members = append(n.Members, Member{Key: key, Value: v})
}

// ValueNode converte um escalar em nó. Datas usam a forma canônica RFC3339.
func ValueNode(v Value) *Node {
	switch v.Kind() {
	case KindString, KindTime:
		return &Node{Kind: NodeString, Raw: v.Text()}
	case KindNumber:
		n, _ := v.AsNumber()
		return numberNode(n)
	}
	return &Node{Kind: NodeNull}
}

func numberNode(f float64) *Node {
	b, err := json.Marshal(f)
	if err != nil {
		// NaN/Inf não têm representação JSON
		return &Node{Kind: NodeNull}
	}
	return &Node{Kind: NodeNumber, Raw: string(b)}
}

func intNode(i int) *Node {
	return &Node{Kind: NodeNumber, Raw: fmt.Sprint(i)}
}

// Document converts the report into its ordered JSON document.
func (r *Report) Document() *Document {
	doc := objectNode()
	for _, k := range r.keys {
		doc.add(k, SectionNode(r.sections[k]))
	}
	return doc
}

// SectionNode converts any report section to a document node.
func SectionNode(s Section) *Node {
	switch sec := s.(type) {
	case Value:
		return ValueNode(sec)
	case *Counts:
		if sec == nil {
			return &Node{Kind: NodeNull}
		}
		obj := objectNode()
		for _, k := range sec.keys {
			obj.add(k, intNode(sec.counts[k]))
		}
		return obj
	case *Summary:
		if sec == nil {
			return &Node{Kind: NodeNull}
		}
		obj := objectNode()
		obj.add("count", intNode(sec.Count))
		obj.add("mean", numberNode(sec.Mean))
		if sec.Std != nil {
			obj.add("std", numberNode(*sec.Std))
		}
		obj.add("min", numberNode(sec.Min))
		obj.add("p25", numberNode(sec.P25))
		obj.add("p50", numberNode(sec.P50))
		obj.add("p75", numberNode(sec.P75))
		obj.add("max", numberNode(sec.Max))
		return obj
	case *RecordList:
		arr := &Node{Kind: NodeArray, Items: []*Node{}}
		if sec == nil {
			return arr
		}
		for _, row := range sec.Rows {
			obj := objectNode()
			for _, col := range sec.Columns {
				v, _ := row.Field(col)
				obj.add(col, ValueNode(v))
			}
			arr.Items = append(arr.Items, obj)
		}
		return arr
	case *Report:
		if sec == nil {
			return &Node{Kind: NodeNull}
		}
		return sec.Document()
	}
	return &Node{Kind: NodeNull}
}

// MarshalJSON encodes the counts in their current order.
func (c *Counts) MarshalJSON() ([]byte, error) {
	return SectionNode(c).MarshalJSON()
}
