package parse

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

const indentInc = 2

// PPrintAST pretty-prints a syntax tree to a Writer, one node per line with
// children indented under their parent. Only fields of the node types are
// shown; source ranges are omitted.
func PPrintAST(n Node, w io.Writer) {
	pprintRec(n, w, 0, "")
}

var (
	nodeType = reflect.TypeOf((*Node)(nil)).Elem()
	kindType = reflect.TypeOf(TokenKind(0))
)

func pprintRec(n Node, w io.Writer, indent int, leading string) {
	nv := reflect.ValueOf(n).Elem()
	nt := nv.Type()

	type child struct {
		name string
		node Node
	}
	var props []string
	var children []child

	for i := 0; i < nt.NumField(); i++ {
		f := nt.Field(i)
		if f.Anonymous {
			// embedded node struct, skip
			continue
		}
		fv := nv.Field(i)
		switch {
		case f.Type.Kind() == reflect.Slice && f.Type.Elem().Implements(nodeType):
			for j := 0; j < fv.Len(); j++ {
				children = append(children,
					child{fmt.Sprintf("%s[%d]", f.Name, j), fv.Index(j).Interface().(Node)})
			}
		case f.Type.Implements(nodeType) || f.Type == nodeType:
			if !fv.IsNil() {
				children = append(children, child{f.Name, fv.Interface().(Node)})
			}
		case f.Type == kindType:
			props = append(props, fmt.Sprintf("%s=%s", f.Name, fv.Interface().(TokenKind).Symbol()))
		case f.Type.Kind() == reflect.String:
			props = append(props, fmt.Sprintf("%s=%s", f.Name, Quote(fv.String())))
		default:
			props = append(props, fmt.Sprintf("%s=%v", f.Name, fv.Interface()))
		}
	}

	fmt.Fprintf(w, "%s%s%s", strings.Repeat(" ", indent), leading, nt.Name())
	for _, prop := range props {
		fmt.Fprintf(w, " %s", prop)
	}
	fmt.Fprintln(w)
	for _, c := range children {
		pprintRec(c.node, w, indent+indentInc, c.name+": ")
	}
}
