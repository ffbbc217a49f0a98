package htmlutil

import (
	"strings"

	"golang.org/x/net/html/atom"
)

func setOf(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

// standard HTML5 elements
var elements = setOf(
	"a", "abbr", "address", "area", "article", "aside", "audio", "b", "base",
	"bdi", "bdo", "blockquote", "body", "br", "button", "canvas", "caption",
	"cite", "code", "col", "colgroup", "data", "datalist", "dd", "del",
	"details", "dfn", "dialog", "div", "dl", "dt", "em", "embed", "fieldset",
	"figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5",
	"h6", "head", "header", "hgroup", "hr", "html", "i", "iframe", "img",
	"input", "ins", "kbd", "label", "legend", "li", "link", "main", "map",
	"mark", "menu", "meta", "meter", "nav", "noscript", "object", "ol",
	"optgroup", "option", "output", "p", "param", "picture", "pre",
	"progress", "q", "rp", "rt", "ruby", "s", "samp", "script", "section",
	"select", "slot", "small", "source", "span", "strong", "style", "sub",
	"summary", "sup", "table", "tbody", "td", "template", "textarea", "tfoot",
	"th", "thead", "time", "title", "tr", "track", "u", "ul", "var", "video",
	"wbr",
)

var globalAttributes = setOf(
	"accesskey", "class", "contenteditable", "dir", "draggable", "hidden",
	"id", "lang", "spellcheck", "style", "tabindex", "title", "translate",
)

var elementAttributes = setOf(
	"accept", "accept-charset", "action", "alt", "async", "autocomplete",
	"autofocus", "autoplay", "charset", "checked", "cite", "colspan",
	"content", "controls", "coords", "datetime", "default", "defer",
	"disabled", "download", "enctype", "for", "form", "formaction", "headers",
	"height", "href", "hreflang", "http-equiv", "integrity", "kind", "label",
	"list", "loop", "max", "maxlength", "media", "method", "min", "minlength",
	"multiple", "muted", "name", "novalidate", "open", "optimum", "pattern",
	"placeholder", "poster", "preload", "readonly", "rel", "required",
	"reversed", "rows", "rowspan", "sandbox", "scope", "selected", "shape",
	"size", "sizes", "span", "src", "srcdoc", "srclang", "srcset", "start",
	"step", "target", "type", "usemap", "value", "width", "wrap",
)

var ariaAttributes = setOf(
	"role", "aria-activedescendant", "aria-atomic", "aria-autocomplete",
	"aria-busy", "aria-checked", "aria-colcount", "aria-colindex",
	"aria-colspan", "aria-controls", "aria-current", "aria-describedby",
	"aria-details", "aria-disabled", "aria-dropeffect", "aria-errormessage",
	"aria-expanded", "aria-flowto", "aria-grabbed", "aria-haspopup",
	"aria-hidden", "aria-invalid", "aria-keyshortcuts", "aria-label",
	"aria-labelledby", "aria-level", "aria-live", "aria-modal",
	"aria-multiline", "aria-multiselectable", "aria-orientation", "aria-owns",
	"aria-placeholder", "aria-posinset", "aria-pressed", "aria-readonly",
	"aria-relevant", "aria-required", "aria-roledescription", "aria-rowcount",
	"aria-rowindex", "aria-rowspan", "aria-selected", "aria-setsize",
	"aria-sort", "aria-valuemax", "aria-valuemin", "aria-valuenow",
	"aria-valuetext",
)

// IsToken reports whether token names an HTML element, an HTML attribute or
// an ARIA attribute. Matching is case-insensitive. Anything under the aria-
// prefix counts, so custom ARIA extensions are covered too. Event handler
// attributes the html parser knows (onclick, onload) are tokens as well.
func IsToken(token string) bool {
	token = strings.ToLower(token)
	if token == "" {
		return false
	}
	if strings.HasPrefix(token, "on") && atom.Lookup([]byte(token)) != 0 {
		return true
	}
	for _, set := range []map[string]struct{}{
		elements,
		globalAttributes,
		elementAttributes,
		ariaAttributes,
	} {
		if _, ok := set[token]; ok {
			return true
		}
	}
	return strings.HasPrefix(token, "aria-")
}
