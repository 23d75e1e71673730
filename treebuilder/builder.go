package treebuilder

import (
	"github.com/arnovandermerwe/html5kit/dom"
	htmlerrors "github.com/arnovandermerwe/html5kit/errors"
	"github.com/arnovandermerwe/html5kit/internal/constants"
	"github.com/arnovandermerwe/html5kit/stream"
	"github.com/arnovandermerwe/html5kit/tokenizer"
)

// TreeBuilder implements a (work-in-progress) HTML5 tree construction stage.
//
// This is a direct porting target of the Python reference implementation and is
// intended to be driven by the tokenizer token stream.
type TreeBuilder struct {
	document *dom.Document

	openElements []*dom.Element

	mode         InsertionMode
	originalMode InsertionMode

	headElement *dom.Element

	activeFormatting []formattingEntry

	// Template insertion modes stack.
	templateModes []InsertionMode

	// Table parsing support.
	pendingTableText      []string
	tableTextOriginalMode *InsertionMode
	framesetOK            bool
	fosterParenting       bool

	fragmentContext *FragmentContext
	fragmentRoot    *dom.Element
	fragmentElement *dom.Element

	tokenizer *tokenizer.Tokenizer

	// forceHTMLMode is set by processForeignContent when it encounters a token
	// that should be reprocessed using normal HTML insertion mode rules rather
	// than foreign content rules. This prevents infinite loops when foreign
	// content contains tokens that trigger breakout to HTML mode.
	forceHTMLMode bool

	iframeSrcdoc bool

	// logger, when set via SetErrorLogger, receives parse errors the tree
	// constructor itself detects (as opposed to ones the tokenizer raises).
	logger *htmlerrors.Logger

	// currentPos is the position of the token currently being processed,
	// used to attribute tree-construction errors raised via raiseError.
	currentPos stream.Position
}

// New creates a new tree builder for full document parsing.
func New(tok *tokenizer.Tokenizer) *TreeBuilder {
	return &TreeBuilder{
		document:     dom.NewDocument(),
		mode:         Initial,
		originalMode: Initial,
		framesetOK:   true,
		tokenizer:    tok,
	}
}

// NewFragment creates a new tree builder for fragment parsing.
func NewFragment(tok *tokenizer.Tokenizer, ctx *FragmentContext) *TreeBuilder {
	tb := &TreeBuilder{
		document:        dom.NewDocument(),
		mode:            Initial,
		originalMode:    Initial,
		framesetOK:      false,
		fragmentContext: ctx,
		tokenizer:       tok,
	}

	// Minimal fragment setup: create an <html> root and a context element.
	html := dom.NewElement("html")
	tb.document.AppendChild(html)
	tb.openElements = append(tb.openElements, html)
	tb.fragmentRoot = html

	if ctx != nil && ctx.TagName != "" {
		contextEl := dom.NewElement(ctx.TagName)
		switch ctx.Namespace {
		case "svg":
			contextEl = dom.NewElementNS(ctx.TagName, dom.NamespaceSVG)
		case "mathml":
			contextEl = dom.NewElementNS(ctx.TagName, dom.NamespaceMathML)
		}
		html.AppendChild(contextEl)
		tb.openElements = append(tb.openElements, contextEl)
		tb.fragmentElement = contextEl

		// Set the initial insertion mode based on the context element, per HTML5 fragment parsing.
		tag := contextEl.TagName
		if ctx.Namespace != "" && ctx.Namespace != "html" {
			tb.mode = InBody
		} else {
			switch tag {
			case "html":
				tb.mode = BeforeHead
			case "tbody", "thead", "tfoot":
				tb.mode = InTableBody
			case "tr":
				tb.mode = InRow
			case "td", "th":
				tb.mode = InCell
			case "caption":
				tb.mode = InCaption
			case "colgroup":
				tb.mode = InColumnGroup
			case "table":
				tb.mode = InTable
			case "select":
				tb.mode = InSelect
			default:
				tb.mode = InBody
			}
		}
		tb.originalMode = tb.mode

		// Adjust tokenizer state based on the fragment context element, per HTML5 fragment parsing.
		// This is necessary because the fragment setup does not emit the context start tag token.
		if ctx.Namespace == "" || ctx.Namespace == "html" {
			switch tag {
			case "title", "textarea":
				tb.tokenizer.SetLastStartTag(tag)
				tb.tokenizer.SetState(tokenizer.RCDATAState)
			case "style", "xmp", "iframe", "noembed", "noframes":
				tb.tokenizer.SetLastStartTag(tag)
				tb.tokenizer.SetState(tokenizer.RAWTEXTState)
			case "script":
				tb.tokenizer.SetLastStartTag(tag)
				tb.tokenizer.SetState(tokenizer.ScriptDataState)
			case "plaintext":
				tb.tokenizer.SetLastStartTag(tag)
				tb.tokenizer.SetState(tokenizer.PLAINTEXTState)
			}
		}
	}

	return tb
}

// SetIframeSrcdoc toggles iframe srcdoc parsing behavior (affects quirks mode decisions).
func (tb *TreeBuilder) SetIframeSrcdoc(enabled bool) {
	tb.iframeSrcdoc = enabled
}

// SetErrorLogger routes parse errors raised during tree construction into
// logger, typically the same Logger the driving tokenizer reports into so a
// parse produces one position-ordered, deduplicated error log.
func (tb *TreeBuilder) SetErrorLogger(logger *htmlerrors.Logger) {
	tb.logger = logger
}

// raiseError records a tree-construction parse error at the current token's
// position. It is a no-op when no logger has been attached.
func (tb *TreeBuilder) raiseError(code string) {
	if tb.logger == nil {
		return
	}
	tb.logger.Add(code, htmlerrors.Position{
		Offset: tb.currentPos.Offset,
		Line:   tb.currentPos.Line,
		Column: tb.currentPos.Column,
	})
}

// Document returns the constructed document.
func (tb *TreeBuilder) Document() *dom.Document {
	return tb.document
}

// FragmentNodes returns the fragment's top-level element children.
func (tb *TreeBuilder) FragmentNodes() []*dom.Element {
	root := tb.fragmentElement
	if root == nil {
		root = tb.fragmentRoot
	}
	if root == nil {
		return nil
	}
	var out []*dom.Element
	for _, child := range root.Children() {
		if el, ok := child.(*dom.Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// modeHandlers dispatches an insertion mode to its processing method,
// indexed by InsertionMode. Modes without an entry fall back to processInBody,
// mirroring the HTML5 spec's "anything else" rule for unhandled token/mode
// combinations.
var modeHandlers = buildModeHandlers()

func buildModeHandlers() []func(*TreeBuilder, tokenizer.Token) bool {
	h := make([]func(*TreeBuilder, tokenizer.Token) bool, AfterAfterFrameset+1)
	h[Initial] = (*TreeBuilder).processInitial
	h[BeforeHTML] = (*TreeBuilder).processBeforeHTML
	h[BeforeHead] = (*TreeBuilder).processBeforeHead
	h[InHead] = (*TreeBuilder).processInHead
	h[InHeadNoscript] = (*TreeBuilder).processInHeadNoscript
	h[AfterHead] = (*TreeBuilder).processAfterHead
	h[Text] = (*TreeBuilder).processText
	h[InBody] = (*TreeBuilder).processInBody
	h[InTable] = (*TreeBuilder).processInTable
	h[InTableText] = (*TreeBuilder).processInTableText
	h[InCaption] = (*TreeBuilder).processInCaption
	h[InColumnGroup] = (*TreeBuilder).processInColumnGroup
	h[InTableBody] = (*TreeBuilder).processInTableBody
	h[InRow] = (*TreeBuilder).processInRow
	h[InCell] = (*TreeBuilder).processInCell
	h[InSelect] = (*TreeBuilder).processInSelect
	h[InSelectInTable] = (*TreeBuilder).processInSelectInTable
	h[InTemplate] = (*TreeBuilder).processInTemplate
	h[AfterBody] = (*TreeBuilder).processAfterBody
	h[InFrameset] = (*TreeBuilder).processInFrameset
	h[AfterFrameset] = (*TreeBuilder).processAfterFrameset
	h[AfterAfterBody] = (*TreeBuilder).processAfterAfterBody
	h[AfterAfterFrameset] = (*TreeBuilder).processAfterAfterFrameset
	return h
}

// ProcessToken consumes a tokenizer token and updates the DOM tree.
func (tb *TreeBuilder) ProcessToken(tok tokenizer.Token) {
	tb.currentPos = tok.Pos
	// The full HTML5 algorithm is implemented incrementally; keep the current
	// behavior non-panicking and deterministic.
	for {
		// Check if we should use foreign content rules.
		// forceHTMLMode bypasses this check when reprocessing a token that
		// triggered breakout from foreign content.
		if !tb.forceHTMLMode && tb.shouldUseForeignContent(tok) {
			reprocess := tb.processForeignContent(tok)
			if !reprocess {
				return
			}
			continue
		}
		tb.forceHTMLMode = false

		handler := (*TreeBuilder).processInBody // fallback for an unhandled mode
		if int(tb.mode) >= 0 && int(tb.mode) < len(modeHandlers) && modeHandlers[tb.mode] != nil {
			handler = modeHandlers[tb.mode]
		}
		if !handler(tb, tok) {
			return
		}
	}
}

func (tb *TreeBuilder) currentNode() dom.Node {
	if len(tb.openElements) == 0 {
		return tb.document
	}
	return tb.openElements[len(tb.openElements)-1]
}

func (tb *TreeBuilder) currentElement() *dom.Element {
	if len(tb.openElements) == 0 {
		return nil
	}
	return tb.openElements[len(tb.openElements)-1]
}

// AllowCDATA reports whether the current element is a foreign (non-HTML)
// element, the only context in which the tokenizer accepts CDATA sections.
func (tb *TreeBuilder) AllowCDATA() bool {
	current := tb.currentElement()
	return current != nil && current.Namespace != dom.NamespaceHTML
}

func (tb *TreeBuilder) insertComment(data string) {
	tb.insertNode(dom.NewComment(data), nil)
}

func (tb *TreeBuilder) insertText(data string) {
	if data == "" {
		return
	}
	parent, before := tb.appropriateInsertionLocation()
	tb.insertNode(dom.NewText(data), &insertionLocation{parent: parent, before: before})
}

// insertFosterText handles a non-whitespace character run flushed from the
// pending table text list: it is a parse error (non-ASCII-whitespace text
// cannot live directly inside a table), and the text node itself is foster
// parented out in front of the enclosing table.
func (tb *TreeBuilder) insertFosterText(data string) {
	if data == "" {
		return
	}
	tb.raiseError(htmlerrors.NonSpaceCharacterInTableText)
	tb.raiseError(htmlerrors.FosterParentedCharacter)
	tb.insertFosterNode(dom.NewText(data))
}

func (tb *TreeBuilder) insertElement(name string, attrs []tokenizer.Attr) *dom.Element {
	el := dom.NewElement(name)
	if el.TagName == "template" && el.Namespace == dom.NamespaceHTML && el.TemplateContent == nil {
		el.TemplateContent = dom.NewDocumentFragment()
	}
	for _, a := range attrs {
		if a.Namespace != "" {
			// HTML namespace attributes are handled later (foreign content).
			el.Attributes.SetNS(a.Namespace, a.Name, a.Value)
			continue
		}
		el.SetAttr(a.Name, a.Value)
	}
	tb.insertNode(el, nil)
	tb.openElements = append(tb.openElements, el)
	return el
}

// insertVoidElement inserts name and immediately pops it back off the stack
// of open elements, for void elements that never get children (base, br,
// meta, ...) but still go through normal element insertion for attribute
// handling and foster-parenting location rules.
func (tb *TreeBuilder) insertVoidElement(name string, attrs []tokenizer.Attr) *dom.Element {
	el := tb.insertElement(name, attrs)
	tb.popCurrent()
	return el
}

// switchToTextMode inserts a raw-text/RCDATA element and switches both the
// tree builder and the tokenizer into text mode for it, per the repeated
// "insert the element, remember the mode to return to, tell the tokenizer to
// start consuming raw text" step used for title/textarea/script/style/etc.
// across the in-head and in-body insertion modes.
func (tb *TreeBuilder) switchToTextMode(name string, attrs []tokenizer.Attr, state tokenizer.State) {
	tb.insertElement(name, attrs)
	tb.originalMode = tb.mode
	tb.mode = Text
	tb.tokenizer.SetLastStartTag(name)
	tb.tokenizer.SetState(state)
}

func (tb *TreeBuilder) addMissingAttributes(el *dom.Element, attrs []tokenizer.Attr) {
	if el == nil {
		return
	}
	if len(tb.templateModes) > 0 {
		return
	}
	for _, a := range attrs {
		if a.Namespace != "" {
			if !el.Attributes.HasNS(a.Namespace, a.Name) {
				el.Attributes.SetNS(a.Namespace, a.Name, a.Value)
			}
			continue
		}
		if !el.HasAttr(a.Name) {
			el.SetAttr(a.Name, a.Value)
		}
	}
}

func (tb *TreeBuilder) popCurrent() *dom.Element {
	if len(tb.openElements) == 0 {
		return nil
	}
	el := tb.openElements[len(tb.openElements)-1]
	tb.openElements = tb.openElements[:len(tb.openElements)-1]
	return el
}

// popCurrentIfNamed pops the current element only if its tag name matches,
// used by the option/optgroup nesting rules in the select insertion modes.
func (tb *TreeBuilder) popCurrentIfNamed(name string) {
	if tb.currentElement() != nil && tb.currentElement().TagName == name {
		tb.popCurrent()
	}
}

func (tb *TreeBuilder) popUntil(name string) {
	for len(tb.openElements) > 0 {
		el := tb.openElements[len(tb.openElements)-1]
		tb.openElements = tb.openElements[:len(tb.openElements)-1]
		if el.TagName == name {
			return
		}
	}
}

func (tb *TreeBuilder) elementInStack(name string) bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.openElements[i].TagName == name {
			return true
		}
	}
	return false
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
			continue
		default:
			return false
		}
	}
	return true
}

func ptrToString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type insertionLocation struct {
	parent dom.Node
	before dom.Node
}

func (tb *TreeBuilder) withFosterParenting(fn func() bool) bool {
	prev := tb.fosterParenting
	tb.fosterParenting = true
	defer func() { tb.fosterParenting = prev }()
	return fn()
}

func (tb *TreeBuilder) appropriateInsertionLocation() (dom.Node, dom.Node) {
	if current := tb.currentElement(); current != nil && current.Namespace == dom.NamespaceHTML && current.TagName == "template" {
		if current.TemplateContent == nil {
			current.TemplateContent = dom.NewDocumentFragment()
		}
		return current.TemplateContent, nil
	}
	if !tb.fosterParenting || !shouldFosterForNode(tb.currentElement()) {
		return tb.currentNode(), nil
	}
	return tb.fosterInsertionLocation()
}

func shouldFosterForNode(el *dom.Element) bool {
	if el == nil || el.Namespace != dom.NamespaceHTML {
		return false
	}
	return constants.TableFosterTargets[el.TagName]
}

func (tb *TreeBuilder) shouldFosterParenting(target *dom.Element, forTag string, isText bool) bool {
	if !tb.fosterParenting {
		return false
	}
	if target == nil || target.Namespace != dom.NamespaceHTML {
		return false
	}
	if !constants.TableFosterTargets[target.TagName] {
		return false
	}
	if isText {
		return true
	}
	if forTag != "" && constants.TableAllowedChildren[forTag] {
		return false
	}
	return true
}

func (tb *TreeBuilder) fosterInsertionLocation() (dom.Node, dom.Node) {
	tableEl, tableIndex := tb.lastTableElement()
	templateEl, templateIndex := tb.lastTemplateElement()
	if templateEl != nil && (tableEl == nil || templateIndex > tableIndex) {
		if templateEl.TemplateContent == nil {
			templateEl.TemplateContent = dom.NewDocumentFragment()
		}
		return templateEl.TemplateContent, nil
	}
	if tableEl == nil {
		return tb.currentNode(), nil
	}
	if p := tableEl.Parent(); p != nil {
		return p, tableEl
	}

	// If the table element has no parent, insert into the element immediately above it in the stack.
	if tableIndex > 0 {
		return tb.openElements[tableIndex-1], nil
	}
	return tb.document, nil
}

func (tb *TreeBuilder) lastOpenElementNamed(name string) (*dom.Element, int) {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		el := tb.openElements[i]
		if el != nil && el.Namespace == dom.NamespaceHTML && el.TagName == name {
			return el, i
		}
	}
	return nil, -1
}

func (tb *TreeBuilder) lastTableElement() (*dom.Element, int) {
	return tb.lastOpenElementNamed("table")
}

func (tb *TreeBuilder) lastTemplateElement() (*dom.Element, int) {
	return tb.lastOpenElementNamed("template")
}

func (tb *TreeBuilder) insertNode(node dom.Node, loc *insertionLocation) {
	var parent dom.Node
	var before dom.Node
	if loc != nil && loc.parent != nil {
		parent = loc.parent
		before = loc.before
	} else {
		parent, before = tb.appropriateInsertionLocation()
	}

	if before == nil {
		// Append with text-node coalescing.
		children := parent.Children()
		if txt, ok := node.(*dom.Text); ok && len(children) > 0 {
			if last, ok := children[len(children)-1].(*dom.Text); ok {
				last.Data += txt.Data
				return
			}
		}
		parent.AppendChild(node)
		return
	}

	// InsertBefore with basic text-node coalescing around the insertion point.
	if txt, ok := node.(*dom.Text); ok {
		if mergeTarget := siblingTextBefore(parent, before); mergeTarget != nil {
			mergeTarget.Data += txt.Data
			return
		}
		if beforeText, ok := before.(*dom.Text); ok {
			beforeText.Data = txt.Data + beforeText.Data
			return
		}
	}
	parent.InsertBefore(node, before)
}

func siblingTextBefore(parent dom.Node, ref dom.Node) *dom.Text {
	children := parent.Children()
	for i := range children {
		if children[i] == ref {
			if i > 0 {
				if t, ok := children[i-1].(*dom.Text); ok {
					return t
				}
			}
			return nil
		}
	}
	return nil
}
