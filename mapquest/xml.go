package mapquest

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/parkdir"
)

// DecodeXML converts an outFormat=xml response body into the same JSON
// payload shape as the JSON format, so cached payloads do not depend on
// the wire format. Only the elements parkdir reads are carried over.
// Returns EUNAVAILABLE when the service reports a non-zero status code.
func DecodeXML(body string) (json.RawMessage, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, parkdir.Errorf(parkdir.EINVALID, "search response is not valid XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, parkdir.Errorf(parkdir.EINVALID, "empty search response XML")
	}

	out := map[string]any{}

	if el := root.SelectElement("info"); el != nil {
		i := info{StatusCode: flexNumber(number(childText(el, "statusCode", "statuscode")))}
		if msgs := el.SelectElement("messages"); msgs != nil {
			for _, m := range msgs.ChildElements() {
				i.Messages = append(i.Messages, optString(strings.TrimSpace(m.Text())))
			}
		}
		if err := checkStatus(&i); err != nil {
			return nil, err
		}
		out["info"] = map[string]any{"statuscode": int(i.StatusCode), "messages": i.Messages}
	}

	if text := childText(root, "resultsCount"); text != "" {
		out["resultsCount"] = number(text)
	}

	if el := root.SelectElement("options"); el != nil {
		opts := map[string]any{}
		for _, child := range el.ChildElements() {
			text := strings.TrimSpace(child.Text())
			if n, err := strconv.ParseFloat(text, 64); err == nil {
				opts[child.Tag] = n
			} else {
				opts[child.Tag] = text
			}
		}
		out["options"] = opts
	}

	results := []any{}
	if el := root.SelectElement("searchResults"); el != nil {
		for _, r := range el.ChildElements() {
			results = append(results, resultFromXML(r))
		}
	}
	out["searchResults"] = results

	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// resultFromXML carries over the name and the fields element, leaving
// missing fields absent.
func resultFromXML(el *etree.Element) map[string]any {
	r := map[string]any{}
	if name := el.SelectElement("name"); name != nil {
		r["name"] = strings.TrimSpace(name.Text())
	}
	if f := el.SelectElement("fields"); f != nil {
		fields := map[string]any{}
		for _, child := range f.ChildElements() {
			fields[child.Tag] = strings.TrimSpace(child.Text())
		}
		r["fields"] = fields
	}
	return r
}

// childText returns the trimmed text of the first child with one of the
// given tags, or "".
func childText(el *etree.Element, tags ...string) string {
	for _, tag := range tags {
		if child := el.SelectElement(tag); child != nil {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}

func number(text string) float64 {
	n, _ := strconv.ParseFloat(text, 64)
	return n
}
