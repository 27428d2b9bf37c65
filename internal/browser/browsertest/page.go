// Package browsertest provides an in-memory page that satisfies
// browser.Session, for exercising page objects without a real browser.
package browsertest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/travelqa/staysuite/internal/browser"
)

// ErrNotInteractable is returned when a hidden or disabled node is clicked or typed into
var ErrNotInteractable = errors.New("element not interactable")

// Node is one element of the fake DOM
type Node struct {
	Tag      string
	ID       string
	Classes  []string
	Text     string
	Value    string
	Hidden   bool
	Disabled bool
	Children []*Node

	// OnClick runs with the page lock held; it may mutate the tree but must
	// not call back into Page or Element methods.
	OnClick func(p *Page, n *Node)
	// OnKeys runs after SendKeys updated Value, under the same rules as OnClick.
	OnKeys func(p *Page, n *Node)

	Clicks int
}

// E builds a node with the given tag, attribute shorthand and children.
// attrs is a space separated list of "#id" and ".class" tokens.
func E(tag string, attrs string, children ...*Node) *Node {
	n := &Node{Tag: tag, Children: children}
	for _, tok := range strings.Fields(attrs) {
		switch {
		case strings.HasPrefix(tok, "#"):
			n.ID = tok[1:]
		case strings.HasPrefix(tok, "."):
			n.Classes = append(n.Classes, tok[1:])
		}
	}
	return n
}

// T builds a leaf node carrying text
func T(tag, text string) *Node {
	return &Node{Tag: tag, Text: text}
}

func (n *Node) hasClass(c string) bool {
	for _, cls := range n.Classes {
		if cls == c {
			return true
		}
	}
	return false
}

// Page is a fake browser session over a tree of nodes
type Page struct {
	mu     sync.Mutex
	root   *Node
	paths  map[string]*Node
	closed bool

	Navigations []string
	Queries     int
}

// NewPage wraps root. Structural (xpath or css) locators only resolve
// when registered with Register.
func NewPage(root *Node) *Page {
	return &Page{root: root, paths: map[string]*Node{}}
}

// Register binds a structural locator value to a node
func (p *Page) Register(path string, n *Node) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths[path] = n
}

// RegisterLocked is Register for use inside OnClick and OnKeys callbacks
func (p *Page) RegisterLocked(path string, n *Node) {
	p.paths[path] = n
}

// Do runs fn with the page lock held, for mutating the tree while other
// goroutines may be polling it.
func (p *Page) Do(fn func(root *Node)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.root)
}

// Replace swaps the whole tree, as a navigation would. Elements obtained
// before the swap become stale.
func (p *Page) Replace(root *Node) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.root = root
}

// SetRootLocked swaps the tree from inside an OnClick or OnKeys callback
func (p *Page) SetRootLocked(root *Node) {
	p.root = root
}

// Closed reports whether Close was called
func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Page) Navigate(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return browser.ErrSessionClosed
	}
	p.Navigations = append(p.Navigations, url)
	return nil
}

func (p *Page) FindElement(by browser.By) (browser.Element, error) {
	els, err := p.FindElements(by)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, by)
	}
	return els[0], nil
}

func (p *Page) FindElements(by browser.By) ([]browser.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, browser.ErrSessionClosed
	}
	return p.query(p.root, by, true)
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// query must be called with the lock held
func (p *Page) query(scope *Node, by browser.By, includeScope bool) ([]browser.Element, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	p.Queries++

	if by.Kind == browser.KindXPath || by.Kind == browser.KindCSS {
		n, ok := p.paths[by.Value]
		if !ok || !p.within(scope, n) {
			return nil, nil
		}
		return []browser.Element{&element{page: p, node: n}}, nil
	}

	var out []browser.Element
	var walk func(n *Node)
	walk = func(n *Node) {
		if matches(n, by) {
			out = append(out, &element{page: p, node: n})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if includeScope {
		walk(scope)
	} else {
		for _, c := range scope.Children {
			walk(c)
		}
	}
	return out, nil
}

func matches(n *Node, by browser.By) bool {
	switch by.Kind {
	case browser.KindID:
		return n.ID == by.Value
	case browser.KindClass:
		return n.hasClass(by.Value)
	case browser.KindTag:
		return strings.EqualFold(n.Tag, by.Value)
	}
	return false
}

// within reports whether n sits in scope's subtree
func (p *Page) within(scope, n *Node) bool {
	if scope == n {
		return true
	}
	for _, c := range scope.Children {
		if p.within(c, n) {
			return true
		}
	}
	return false
}

// ancestry returns the chain from root to n, or nil if n is detached
func (p *Page) ancestry(n *Node) []*Node {
	var chain []*Node
	var walk func(cur *Node) bool
	walk = func(cur *Node) bool {
		chain = append(chain, cur)
		if cur == n {
			return true
		}
		for _, c := range cur.Children {
			if walk(c) {
				return true
			}
		}
		chain = chain[:len(chain)-1]
		return false
	}
	if walk(p.root) {
		return chain
	}
	return nil
}

type element struct {
	page *Page
	node *Node
}

// attached must be called with the lock held
func (e *element) attached() ([]*Node, error) {
	if e.page.closed {
		return nil, browser.ErrSessionClosed
	}
	chain := e.page.ancestry(e.node)
	if chain == nil {
		return nil, fmt.Errorf("%w: <%s>", browser.ErrStaleElement, e.node.Tag)
	}
	return chain, nil
}

func visible(chain []*Node) bool {
	for _, n := range chain {
		if n.Hidden {
			return false
		}
	}
	return true
}

// renderedText mirrors WebDriver's getText: hidden subtrees contribute
// nothing and each element's own text comes before its children's.
func renderedText(n *Node) string {
	if n.Hidden {
		return ""
	}
	var parts []string
	if t := strings.TrimSpace(n.Text); t != "" {
		parts = append(parts, t)
	}
	for _, c := range n.Children {
		if t := renderedText(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func (e *element) Text() (string, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	chain, err := e.attached()
	if err != nil {
		return "", err
	}
	if !visible(chain) {
		return "", nil
	}
	return renderedText(e.node), nil
}

func (e *element) Click() error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	chain, err := e.attached()
	if err != nil {
		return err
	}
	if !visible(chain) {
		return fmt.Errorf("%w: <%s> is hidden", ErrNotInteractable, e.node.Tag)
	}
	e.node.Clicks++
	if e.node.OnClick != nil {
		e.node.OnClick(e.page, e.node)
	}
	return nil
}

func (e *element) Clear() error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if _, err := e.attached(); err != nil {
		return err
	}
	e.node.Value = ""
	return nil
}

func (e *element) SendKeys(text string) error {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	chain, err := e.attached()
	if err != nil {
		return err
	}
	if !visible(chain) || e.node.Disabled {
		return fmt.Errorf("%w: <%s>", ErrNotInteractable, e.node.Tag)
	}
	e.node.Value += text
	if e.node.OnKeys != nil {
		e.node.OnKeys(e.page, e.node)
	}
	return nil
}

func (e *element) IsDisplayed() (bool, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	chain, err := e.attached()
	if err != nil {
		return false, err
	}
	return visible(chain), nil
}

func (e *element) IsEnabled() (bool, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if _, err := e.attached(); err != nil {
		return false, err
	}
	return !e.node.Disabled, nil
}

func (e *element) FindElement(by browser.By) (browser.Element, error) {
	els, err := e.FindElements(by)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrNoSuchElement, by)
	}
	return els[0], nil
}

func (e *element) FindElements(by browser.By) ([]browser.Element, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	if _, err := e.attached(); err != nil {
		return nil, err
	}
	return e.page.query(e.node, by, false)
}
