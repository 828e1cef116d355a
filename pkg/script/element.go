package script

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"mondrian/pkg/dom"
	"mondrian/pkg/markup"
)

// domContext caches one proxy per node so scripts can compare elements
// with ===.
type domContext struct {
	vm    *goja.Runtime
	cache map[*dom.Node]goja.Value
}

// registerDocument installs the document global: lookups resolve
// against doc's tree, created nodes are free until attached.
func registerDocument(vm *goja.Runtime, doc *markup.Document) *domContext {
	ctx := &domContext{vm: vm, cache: make(map[*dom.Node]goja.Value)}

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		id := call.Arguments[0].String()
		if id == "" {
			return goja.Null()
		}
		node := doc.Root.FindByID(id)
		if node == nil {
			return goja.Null()
		}
		return ctx.proxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.array(nil)
		}
		tag := strings.ToLower(call.Arguments[0].String())
		return ctx.array(doc.Root.FindByTag(tag))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("createElement needs a tag name"))
		}
		tag := strings.ToLower(call.Arguments[0].String())
		return ctx.proxy(dom.NewElement(tag))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.proxy(dom.NewText(text))
	})
	docObj.Set("root", ctx.proxy(doc.Root))

	vm.Set("document", docObj)
	return ctx
}

func (ctx *domContext) proxy(node *dom.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

func (ctx *domContext) array(nodes []*dom.Node) goja.Value {
	values := make([]interface{}, len(nodes))
	for i, n := range nodes {
		values[i] = ctx.proxy(n)
	}
	return ctx.vm.ToValue(values)
}

// unwrap recovers the dom node behind a proxy value, or nil for
// anything that is not one of ours.
func (ctx *domContext) unwrap(val goja.Value) *dom.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

// elementAccessor exposes a dom node to scripts as a dynamic object.
type elementAccessor struct {
	ctx  *domContext
	node *dom.Node
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm

	switch key {
	case "nodeType":
		if e.node.Type == dom.TextNode {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "nodeName":
		if e.node.Type == dom.TextNode {
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(e.node.Tag))
	case "tagName":
		if e.node.Type == dom.TextNode {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(e.node.Tag))
	case "id":
		return vm.ToValue(e.node.ID)
	case "nodeValue":
		if e.node.Type == dom.TextNode {
			return vm.ToValue(e.node.Text)
		}
		return goja.Null()
	case "textContent":
		return vm.ToValue(textContent(e.node))
	case "innerMarkup":
		return vm.ToValue(e.node.Serialize())
	case "outerMarkup":
		return vm.ToValue(e.node.SerializeOuter())
	case "style":
		return vm.NewDynamicObject(&styleAccessor{vm: vm, node: e.node})

	case "children":
		var elements []*dom.Node
		for _, child := range e.node.Children {
			if child.Type == dom.ElementNode {
				elements = append(elements, child)
			}
		}
		return e.ctx.array(elements)
	case "childNodes":
		return e.ctx.array(e.node.Children)
	case "childElementCount":
		count := 0
		for _, child := range e.node.Children {
			if child.Type == dom.ElementNode {
				count++
			}
		}
		return vm.ToValue(count)
	case "parentElement":
		if e.node.Parent != nil {
			return e.ctx.proxy(e.node.Parent)
		}
		return goja.Null()
	case "firstChild":
		if len(e.node.Children) > 0 {
			return e.ctx.proxy(e.node.Children[0])
		}
		return goja.Null()
	case "lastChild":
		if n := len(e.node.Children); n > 0 {
			return e.ctx.proxy(e.node.Children[n-1])
		}
		return goja.Null()
	case "nextSibling":
		return e.sibling(1)
	case "previousSibling":
		return e.sibling(-1)

	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.argNode(call, 0, "appendChild")
			e.node.InsertBefore(child, nil)
			return e.ctx.proxy(child)
		})
	case "removeChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.argNode(call, 0, "removeChild")
			if e.node.RemoveChild(child) == nil {
				panic(vm.NewTypeError("removeChild: node is not a child of this element"))
			}
			return e.ctx.proxy(child)
		})
	case "insertBefore":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			newChild := e.argNode(call, 0, "insertBefore")
			var ref *dom.Node
			if len(call.Arguments) > 1 {
				ref = e.ctx.unwrap(call.Arguments[1])
			}
			e.node.InsertBefore(newChild, ref)
			return e.ctx.proxy(newChild)
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if e.node.Parent != nil {
				e.node.Parent.RemoveChild(e.node)
			}
			return goja.Undefined()
		})
	case "append":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			for _, arg := range call.Arguments {
				if node := e.ctx.unwrap(arg); node != nil {
					e.node.InsertBefore(node, nil)
				} else {
					e.node.AppendText(arg.String())
				}
			}
			return goja.Undefined()
		})

	case "cloneNode":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			deep := false
			if len(call.Arguments) > 0 {
				deep = call.Arguments[0].ToBoolean()
			}
			return e.ctx.proxy(e.node.CloneNode(deep))
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			other := e.ctx.unwrap(call.Arguments[0])
			return vm.ToValue(other != nil && e.node.Contains(other))
		})
	case "hasChildNodes":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(len(e.node.Children) > 0)
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "id":
		e.node.ID = val.String()
		return true
	case "textContent":
		setTextContent(e.node, val.String())
		return true
	case "nodeValue":
		if e.node.Type == dom.TextNode {
			e.node.Text = val.String()
		}
		return true
	case "innerMarkup":
		e.setInnerMarkup(val.String())
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range accessorKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(string) bool { return false }

func (e *elementAccessor) Keys() []string { return accessorKeys }

var accessorKeys = []string{
	"nodeType", "nodeName", "tagName", "id", "nodeValue", "textContent",
	"innerMarkup", "outerMarkup", "style",
	"children", "childNodes", "childElementCount", "parentElement",
	"firstChild", "lastChild", "nextSibling", "previousSibling",
	"appendChild", "removeChild", "insertBefore", "remove", "append",
	"cloneNode", "contains", "hasChildNodes",
}

// argNode unwraps a required node argument, raising a TypeError the way
// a browser would on a bad call.
func (e *elementAccessor) argNode(call goja.FunctionCall, i int, method string) *dom.Node {
	if len(call.Arguments) <= i {
		panic(e.ctx.vm.NewTypeError("%s: argument %d required", method, i+1))
	}
	node := e.ctx.unwrap(call.Arguments[i])
	if node == nil {
		panic(e.ctx.vm.NewTypeError("%s: argument is not a node", method))
	}
	return node
}

func (e *elementAccessor) sibling(offset int) goja.Value {
	idx := e.node.IndexInParent()
	if idx < 0 {
		return goja.Null()
	}
	siblings := e.node.Parent.Children
	if j := idx + offset; j >= 0 && j < len(siblings) {
		return e.ctx.proxy(siblings[j])
	}
	return goja.Null()
}

func (e *elementAccessor) setInnerMarkup(src string) {
	detachChildren(e.node)
	if src == "" {
		return
	}
	nodes, err := markup.ParseFragment(src)
	if err != nil {
		panic(e.ctx.vm.NewTypeError("innerMarkup: %s", err.Error()))
	}
	for _, n := range nodes {
		e.node.AddChild(n)
	}
}

func textContent(node *dom.Node) string {
	if node.Type == dom.TextNode {
		return node.Text
	}
	var sb strings.Builder
	for _, child := range node.Children {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}

func setTextContent(node *dom.Node, text string) {
	if node.Type == dom.TextNode {
		node.Text = text
		return
	}
	detachChildren(node)
	node.AppendText(text)
}

func detachChildren(node *dom.Node) {
	for _, c := range node.Children {
		c.Parent = nil
	}
	node.Children = nil
}

// styleAccessor maps script-side camelCase style properties onto the
// node's declaration string, so "el.style.fontSize = '24px'" edits the
// same attribute the style resolver reads.
type styleAccessor struct {
	vm   *goja.Runtime
	node *dom.Node
}

func (s *styleAccessor) Get(key string) goja.Value {
	decls := parseDecls(s.node.StyleAttr)
	return s.vm.ToValue(decls[camelToKebab(key)])
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	decls := parseDecls(s.node.StyleAttr)
	decls[camelToKebab(key)] = val.String()
	s.node.StyleAttr = serializeDecls(decls)
	return true
}

func (s *styleAccessor) Has(string) bool { return true }

func (s *styleAccessor) Delete(key string) bool {
	decls := parseDecls(s.node.StyleAttr)
	delete(decls, camelToKebab(key))
	s.node.StyleAttr = serializeDecls(decls)
	return true
}

func (s *styleAccessor) Keys() []string {
	decls := parseDecls(s.node.StyleAttr)
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseDecls(attr string) map[string]string {
	decls := make(map[string]string)
	for _, d := range strings.Split(attr, ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		idx := strings.IndexByte(d, ':')
		if idx < 0 {
			continue
		}
		decls[strings.TrimSpace(d[:idx])] = strings.TrimSpace(d[idx+1:])
	}
	return decls
}

// serializeDecls writes declarations back sorted by property, so script
// edits produce stable attribute strings.
func serializeDecls(decls map[string]string) string {
	if len(decls) == 0 {
		return ""
	}
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + decls[k]
	}
	return strings.Join(parts, "; ")
}

func camelToKebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
