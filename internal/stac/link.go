package stac

// Link relation roles used by catalog trees.
const (
	RelSelf   = "self"
	RelRoot   = "root"
	RelParent = "parent"
	RelChild  = "child"
	RelItem   = "item"

	// RelCollection points from an item back at its owning collection.
	RelCollection = "collection"
)

// MediaTypeJSON is the media type recorded on structural links.
const MediaTypeJSON = "application/json"

// Link is one directed edge in the catalog tree. Href is either absolute
// (URL or rooted path) or relative to the owning document's location.
type Link struct {
	Rel   string
	Href  string
	Type  string
	Title string
}

func linkFromMap(m map[string]any) Link {
	l := Link{}
	l.Rel, _ = m["rel"].(string)
	l.Href, _ = m["href"].(string)
	l.Type, _ = m["type"].(string)
	l.Title, _ = m["title"].(string)
	return l
}

func (l Link) toMap() map[string]any {
	m := map[string]any{
		"rel":  l.Rel,
		"href": l.Href,
	}
	if l.Type != "" {
		m["type"] = l.Type
	}
	if l.Title != "" {
		m["title"] = l.Title
	}
	return m
}

// Links returns every well-formed entry of the document's links array.
func (d *Document) Links() []Link {
	arr, _ := d.fields["links"].([]any)
	out := make([]Link, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, linkFromMap(m))
		}
	}
	return out
}

// LinksByRel returns the links carrying the given relation role, in order.
func (d *Document) LinksByRel(rel string) []Link {
	var out []Link
	for _, l := range d.Links() {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// AddLink appends a link to the document's links array.
func (d *Document) AddLink(l Link) {
	arr, _ := d.fields["links"].([]any)
	d.fields["links"] = append(arr, any(l.toMap()))
}

// SetLink replaces every link with the same relation role by the given one.
// The replacement takes the position of the first replaced link, so unrelated
// links keep their order; if no link with that role exists it is appended.
func (d *Document) SetLink(l Link) {
	arr, _ := d.fields["links"].([]any)
	out := make([]any, 0, len(arr)+1)
	placed := false
	for _, e := range arr {
		m, ok := e.(map[string]any)
		if ok && m["rel"] == l.Rel {
			if !placed {
				out = append(out, any(l.toMap()))
				placed = true
			}
			continue
		}
		out = append(out, e)
	}
	if !placed {
		out = append(out, any(l.toMap()))
	}
	d.fields["links"] = out
}

// RemoveLinks drops every link with the given relation role.
func (d *Document) RemoveLinks(rel string) {
	arr, _ := d.fields["links"].([]any)
	out := make([]any, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok && m["rel"] == rel {
			continue
		}
		out = append(out, e)
	}
	d.fields["links"] = out
}

// SelfHref returns the href of the document's self link, or "" if none.
func (d *Document) SelfHref() string {
	for _, l := range d.LinksByRel(RelSelf) {
		return l.Href
	}
	return ""
}

// SetSelfHref overwrites (or inserts) the document's self link.
func (d *Document) SetSelfHref(href string) {
	d.SetLink(Link{Rel: RelSelf, Href: href, Type: MediaTypeJSON})
}
