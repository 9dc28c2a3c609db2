package render

import (
	"bytes"
	"html/template"
	"io"
	"slices"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"jobview-engine/internal/domain"
)

// Raw HTML is never passed through; scraped fields stay text.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// MarkdownToHTML converts markdown with the page's renderer.
func MarkdownToHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Page is everything the listing page shows.
type Page struct {
	Title     string
	Intro     string
	Criteria  domain.FilterCriteria
	Companies []string
	Cities    []string
	Scope     string
	Jobs      *domain.Collection
	Total     int
}

type pageView struct {
	Page
	Listings  template.HTML
	Companies []option
	Cities    []option
	Modes     []option
	Scopes    []option
	MinSalary string
	CSVURL    string
	ReportURL string
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

func options(all, selected []string) []option {
	out := make([]option, 0, len(all))
	for _, v := range all {
		out = append(out, option{Value: v, Label: v, Selected: slices.Contains(selected, v)})
	}
	return out
}

// HTML writes the full listing page.
func HTML(w io.Writer, p Page, query string) error {
	listings, err := MarkdownToHTML(Markdown(p.Jobs))
	if err != nil {
		return err
	}

	crit := p.Criteria.Normalized()
	v := pageView{
		Page:      p,
		Listings:  listings,
		Companies: options(p.Companies, crit.Companies),
		Cities:    options(p.Cities, crit.Cities),
		Modes: []option{
			{Value: string(domain.SalaryAll), Label: "All", Selected: crit.SalaryMode == domain.SalaryAll},
			{Value: string(domain.SalaryConfidential), Label: "Confidential only", Selected: crit.SalaryMode == domain.SalaryConfidential},
			{Value: string(domain.SalaryKnown), Label: "Known only", Selected: crit.SalaryMode == domain.SalaryKnown},
		},
		Scopes: []option{
			{Value: "all", Label: "All listings", Selected: p.Scope != "filtered"},
			{Value: "filtered", Label: "Filtered listings", Selected: p.Scope == "filtered"},
		},
		CSVURL:    withQuery("/jobs.csv", query),
		ReportURL: withQuery("/report.pdf", query),
	}
	if crit.MinSalary > 0 {
		v.MinSalary = strconv.FormatFloat(crit.MinSalary, 'f', -1, 64)
	}
	return pageTmpl.Execute(w, v)
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;display:flex}
aside{width:18rem;padding:1rem;background:#f4f5f7;min-height:100vh}
main{flex:1;padding:1rem 2rem;max-width:60rem}
label{display:block;margin-top:.75rem;font-weight:600}
input,select{width:100%;box-sizing:border-box}
select[multiple]{height:8rem}
hr{border:0;border-top:1px solid #ddd}
</style>
</head>
<body>
<aside>
<form method="get" action="/">
<label for="keyword">Search job title or description</label>
<input id="keyword" name="keyword" value="{{.Criteria.Keyword}}">
<label for="company">Company</label>
<select id="company" name="company" multiple>{{range .Companies}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<label for="city">City</label>
<select id="city" name="city" multiple>{{range .Cities}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<label for="min_salary">Minimum salary (€)</label>
<input id="min_salary" name="min_salary" type="number" min="0" step="1000" value="{{.MinSalary}}">
<label for="salary">Salary</label>
<select id="salary" name="salary">{{range .Modes}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<label for="scope">Charts cover</label>
<select id="scope" name="scope">{{range .Scopes}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<p><button type="submit">Apply</button></p>
</form>
<p><a href="{{.CSVURL}}">Download CSV</a> · <a href="{{.ReportURL}}">Chart report</a></p>
</aside>
<main>
<h1>{{.Title}}</h1>
<p>{{.Intro}}</p>
<p>{{.Jobs.Len}} of {{.Total}} listings match.</p>
{{.Listings}}
</main>
</body>
</html>
`))
