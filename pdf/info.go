package pdf

import (
	"fmt"
	"sort"
	"strings"
)

// Info is the page count and document information of a PDF.
// Metadata only holds the keys the file actually sets.
type Info struct {
	PageCount int               `json:"page_count"`
	Metadata  map[string]string `json:"metadata"`
}

// Describe reads the page count and information dictionary of doc.
func Describe(doc *Document) Info {
	info := Info{
		PageCount: doc.PageCount(),
		Metadata:  map[string]string{},
	}
	if doc.ctx == nil {
		return info
	}

	ctx := doc.ctx
	for key, value := range map[string]string{
		"Title":        ctx.Title,
		"Author":       ctx.Author,
		"Subject":      ctx.Subject,
		"Keywords":     ctx.Keywords,
		"Creator":      ctx.Creator,
		"Producer":     ctx.Producer,
		"CreationDate": ctx.XRefTable.CreationDate,
		"ModDate":      ctx.XRefTable.ModDate,
	} {
		if value != "" {
			info.Metadata[key] = value
		}
	}

	// custom entries of the info dictionary
	for key, value := range ctx.Properties {
		if value != "" {
			info.Metadata[key] = value
		}
	}

	return info
}

// String renders the info the way the pdfinfo tool prints it.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pages: %d", i.PageCount)

	keys := make([]string, 0, len(i.Metadata))
	for k := range i.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(&b, "\n%s = %s", k, i.Metadata[k])
	}
	return b.String()
}
