package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoOptions is returned for non-blank markup that holds no <option>.
var ErrNoOptions = errors.New("markup contains no <option> elements")

// ParseOptions parses <option> and <optgroup> markup into groups.
//
// Consecutive top-level options share one unlabeled group. An option with
// no value attribute uses its text as value, as browsers do. Blank markup
// yields no groups; any other markup without an option is rejected.
func ParseOptions(markup string) ([]Group, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<select>" + markup + "</select>"))
	if err != nil {
		return nil, fmt.Errorf("parsing option markup: %w", err)
	}
	if doc.Find("select option").Length() == 0 {
		return nil, fmt.Errorf("parsing option markup: %w", ErrNoOptions)
	}

	var groups []Group
	appendTop := func(o Option) {
		if n := len(groups); n > 0 && !groups[n-1].Grouped() {
			groups[n-1].Options = append(groups[n-1].Options, o)
			return
		}
		groups = append(groups, Options(o))
	}

	doc.Find("select").First().Children().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "option":
			appendTop(parseOption(s))
		case "optgroup":
			label, _ := s.Attr("label")
			g := Group{Label: label}
			s.ChildrenFiltered("option").Each(func(_ int, o *goquery.Selection) {
				g.Options = append(g.Options, parseOption(o))
			})
			groups = append(groups, g)
		}
	})
	return groups, nil
}

func parseOption(s *goquery.Selection) Option {
	text := strings.TrimSpace(s.Text())
	value, ok := s.Attr("value")
	if !ok {
		value = text
	}
	_, selected := s.Attr("selected")
	_, disabled := s.Attr("disabled")
	return Option{Value: value, Text: text, Selected: selected, Disabled: disabled}
}
