package browser

import (
	"fmt"
	"strings"
)

// Kind identifies how a locator's value is interpreted
type Kind string

// Locator kinds
const (
	KindID    Kind = "id"
	KindClass Kind = "class"
	KindTag   Kind = "tag"
	KindXPath Kind = "xpath"
	KindCSS   Kind = "css"
)

// By is a query that resolves to zero or more elements in the current page.
// It carries no state; every lookup re-queries the live page.
type By struct {
	Kind  Kind
	Value string
}

// ID selects elements by id attribute
func ID(id string) By { return By{Kind: KindID, Value: id} }

// Class selects elements carrying a single class name
func Class(name string) By { return By{Kind: KindClass, Value: name} }

// Tag selects elements by tag name
func Tag(name string) By { return By{Kind: KindTag, Value: name} }

// XPath selects elements by a structural path
func XPath(path string) By { return By{Kind: KindXPath, Value: path} }

// CSS selects elements by a CSS selector
func CSS(selector string) By { return By{Kind: KindCSS, Value: selector} }

func (b By) String() string {
	return fmt.Sprintf("%s=%s", b.Kind, b.Value)
}

// Validate reports whether the locator can be resolved by a backend
func (b By) Validate() error {
	switch b.Kind {
	case KindID, KindClass, KindTag, KindXPath, KindCSS:
	default:
		return fmt.Errorf("%w: unknown locator kind %q", ErrInvalidLocator, b.Kind)
	}
	if strings.TrimSpace(b.Value) == "" {
		return fmt.Errorf("%w: empty %s locator", ErrInvalidLocator, b.Kind)
	}
	return nil
}

// selector renders the locator in Playwright's selector syntax
func (b By) selector() string {
	switch b.Kind {
	case KindID:
		return "id=" + b.Value
	case KindClass:
		return "." + cssIdent(b.Value)
	case KindTag:
		return b.Value
	case KindXPath:
		return "xpath=" + b.Value
	default:
		return b.Value
	}
}

// cssIdent escapes the characters a class name may legally contain but a
// CSS selector may not.
func cssIdent(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case ':', '.', '[', ']', '(', ')', '/', '#', '%', '+', '~', '>', ',', '!', '@', '$', '&', '=', '*', '\'', '"':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
